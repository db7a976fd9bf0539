package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/mappers"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/models"
	"github.com/garagehq/repairshop/internal/shared/db"
	apperrors "github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/mapper"
	"github.com/garagehq/repairshop/internal/shared/utils/setutil"
)

// allowedServiceTicketOrderByFields is the ORDER BY whitelist for List.
var allowedServiceTicketOrderByFields = map[string]bool{
	"id":         true,
	"vin":        true,
	"status":     true,
	"cost":       true,
	"created_at": true,
	"closed_at":  true,
}

type ServiceTicketRepository struct {
	db     *gorm.DB
	mapper mappers.ServiceTicketMapper
}

func NewServiceTicketRepository(db *gorm.DB) *ServiceTicketRepository {
	return &ServiceTicketRepository{
		db:     db,
		mapper: mappers.NewServiceTicketMapper(),
	}
}

func (r *ServiceTicketRepository) Create(ctx context.Context, t *ticket.ServiceTicket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create service ticket: %w", err)
	}
	if err := t.SetID(model.ID); err != nil {
		return err
	}

	mechanics, services, parts := r.mapper.LinkModels(t)
	if len(mechanics) > 0 {
		if err := tx.Create(&mechanics).Error; err != nil {
			return fmt.Errorf("failed to link mechanics: %w", err)
		}
	}
	if len(services) > 0 {
		if err := tx.Create(&services).Error; err != nil {
			return fmt.Errorf("failed to link services: %w", err)
		}
	}
	for i := range parts {
		if err := r.insertPartLink(tx, &parts[i]); err != nil {
			return err
		}
	}
	return nil
}

// Update writes the ticket row guarded by its version, then brings the
// link tables in line with the aggregate.
func (r *ServiceTicketRepository) Update(ctx context.Context, t *ticket.ServiceTicket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ServiceTicketModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version).
		Updates(map[string]any{
			"vin":          model.VIN,
			"work_summary": model.WorkSummary,
			"status":       model.Status,
			"cost":         model.Cost,
			"is_deleted":   model.IsDeleted,
			"closed_at":    model.ClosedAt,
			"version":      gorm.Expr("version + 1"),
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update service ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ticket.ErrConcurrentModification
	}
	t.SetVersion(model.Version + 1)

	return r.syncLinks(tx, t)
}

func (r *ServiceTicketRepository) syncLinks(tx *gorm.DB, t *ticket.ServiceTicket) error {
	mechanics, services, parts := r.mapper.LinkModels(t)

	if err := tx.Where("ticket_id = ?", t.ID()).Delete(&models.TicketMechanicModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear mechanic links: %w", err)
	}
	if len(mechanics) > 0 {
		if err := tx.Create(&mechanics).Error; err != nil {
			return fmt.Errorf("failed to link mechanics: %w", err)
		}
	}

	if err := tx.Where("ticket_id = ?", t.ID()).Delete(&models.TicketServiceModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear service links: %w", err)
	}
	if len(services) > 0 {
		if err := tx.Create(&services).Error; err != nil {
			return fmt.Errorf("failed to link services: %w", err)
		}
	}

	// Part links carry their consumed flag and attach time, so they are
	// diffed rather than rewritten.
	var existing []uint
	if err := tx.Model(&models.TicketPartModel{}).
		Where("ticket_id = ?", t.ID()).
		Pluck("part_id", &existing).Error; err != nil {
		return fmt.Errorf("failed to load part links: %w", err)
	}

	wanted := make([]uint, 0, len(parts))
	for _, p := range parts {
		wanted = append(wanted, p.PartID)
	}
	if removed := setutil.NewUintSet(existing...).Missing(wanted); len(removed) > 0 {
		if err := tx.Where("ticket_id = ? AND part_id IN ?", t.ID(), removed).
			Delete(&models.TicketPartModel{}).Error; err != nil {
			return fmt.Errorf("failed to unlink parts: %w", err)
		}
	}

	current := setutil.NewUintSet(existing...)
	for i := range parts {
		link := &parts[i]
		if !current.Has(link.PartID) {
			if err := r.insertPartLink(tx, link); err != nil {
				return err
			}
			continue
		}
		if err := tx.Model(&models.TicketPartModel{}).
			Where("part_id = ? AND ticket_id = ?", link.PartID, link.TicketID).
			Update("consumed", link.Consumed).Error; err != nil {
			return fmt.Errorf("failed to update part link: %w", err)
		}
	}
	return nil
}

func (r *ServiceTicketRepository) insertPartLink(tx *gorm.DB, link *models.TicketPartModel) error {
	if err := tx.Create(link).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return ticket.ErrPartAlreadyLinked
		}
		return fmt.Errorf("failed to link part %d: %w", link.PartID, err)
	}
	return nil
}

func (r *ServiceTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.ServiceTicket, error) {
	return r.get(ctx, id, false)
}

func (r *ServiceTicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.ServiceTicket, error) {
	return r.get(ctx, id, true)
}

func (r *ServiceTicketRepository) get(ctx context.Context, id uint, lock bool) (*ticket.ServiceTicket, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Scopes(db.NotDeleted()).Where("id = ?", id)
	if lock {
		query = query.Scopes(db.ForUpdate())
	}

	var model models.ServiceTicketModel
	if err := query.First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, ticket.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get service ticket: %w", err)
	}

	tickets, err := r.hydrate(tx, []models.ServiceTicketModel{model})
	if err != nil {
		return nil, err
	}
	return tickets[0], nil
}

func (r *ServiceTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.ServiceTicket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.ServiceTicketModel{}).Scopes(db.NotDeleted())
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.MechanicID != nil {
		assigned := tx.Model(&models.TicketMechanicModel{}).
			Select("ticket_id").
			Where("employee_id = ?", *filter.MechanicID)
		query = query.Where("id IN (?)", assigned)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count service tickets: %w", err)
	}

	orderBy := "created_at"
	if allowedServiceTicketOrderByFields[filter.SortBy] {
		orderBy = filter.SortBy
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	var rows []models.ServiceTicketModel
	if err := query.
		Order(fmt.Sprintf("%s %s, id %s", orderBy, direction, direction)).
		Scopes(db.Paginate(filter.Page, filter.Limit)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list service tickets: %w", err)
	}

	tickets, err := r.hydrate(tx, rows)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

func (r *ServiceTicketRepository) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ServiceTicketModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customer tickets: %w", err)
	}
	return count, nil
}

type mechanicLinkRow struct {
	TicketID uint
	ID       uint
	Name     string
	Role     string
}

type serviceLinkRow struct {
	TicketID    uint
	ServiceID   uint
	ServiceType string
	BasePrice   decimal.Decimal
}

type partLinkRow struct {
	TicketID      uint
	Consumed      bool
	PartID        uint
	SerialNumber  string
	Status        string
	InventoryID   uint
	InventoryName string
	UnitPrice     decimal.Decimal
}

type customerRefRow struct {
	ID    uint
	Name  string
	Email string
}

// hydrate rebuilds tickets from their rows, loading customers and links
// with one query per table for the whole batch.
func (r *ServiceTicketRepository) hydrate(tx *gorm.DB, rows []models.ServiceTicketModel) ([]*ticket.ServiceTicket, error) {
	if len(rows) == 0 {
		return []*ticket.ServiceTicket{}, nil
	}

	ticketIDs := make([]uint, 0, len(rows))
	customerIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		ticketIDs = append(ticketIDs, row.ID)
		customerIDs = append(customerIDs, row.CustomerID)
	}

	var customers []customerRefRow
	if err := tx.Table("customers").
		Select("id, name, email").
		Where("id IN ?", setutil.Dedupe(customerIDs)).
		Scan(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket customers: %w", err)
	}
	customerByID := mapper.KeyBy(customers,
		func(c customerRefRow) uint { return c.ID },
		func(c customerRefRow) ticket.CustomerRef {
			return ticket.CustomerRef{ID: c.ID, Name: c.Name, Email: c.Email}
		})

	var mechanicRows []mechanicLinkRow
	if err := tx.Table("ticket_mechanics AS tm").
		Select("tm.ticket_id, e.id, e.name, e.role").
		Joins("JOIN employees AS e ON e.id = tm.employee_id").
		Where("tm.ticket_id IN ?", ticketIDs).
		Order("e.id ASC").
		Scan(&mechanicRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket mechanics: %w", err)
	}

	var serviceRows []serviceLinkRow
	if err := tx.Table("ticket_services AS ts").
		Select("ts.ticket_id, s.id AS service_id, s.service_type, s.base_price").
		Joins("JOIN services AS s ON s.id = ts.service_id").
		Where("ts.ticket_id IN ?", ticketIDs).
		Order("s.id ASC").
		Scan(&serviceRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket services: %w", err)
	}

	var partRows []partLinkRow
	if err := tx.Table("ticket_parts AS tp").
		Select("tp.ticket_id, tp.consumed, sp.id AS part_id, sp.serial_number, sp.status, sp.inventory_id, "+
			"inv.name AS inventory_name, inv.price AS unit_price").
		Joins("JOIN serialized_parts AS sp ON sp.id = tp.part_id").
		Joins("JOIN inventories AS inv ON inv.id = sp.inventory_id").
		Where("tp.ticket_id IN ?", ticketIDs).
		Order("sp.id ASC").
		Scan(&partRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket parts: %w", err)
	}

	mechanicsByTicket := mapper.GroupBy(mechanicRows,
		func(m mechanicLinkRow) uint { return m.TicketID },
		func(m mechanicLinkRow) ticket.MechanicRef {
			return ticket.MechanicRef{ID: m.ID, Name: m.Name, Role: m.Role}
		})
	servicesByTicket := mapper.GroupBy(serviceRows,
		func(s serviceLinkRow) uint { return s.TicketID },
		func(s serviceLinkRow) ticket.ServiceLine {
			return ticket.ServiceLine{ServiceID: s.ServiceID, ServiceType: s.ServiceType, BasePrice: s.BasePrice}
		})
	partsByTicket := mapper.GroupBy(partRows,
		func(p partLinkRow) uint { return p.TicketID },
		func(p partLinkRow) ticket.PartLine {
			return ticket.PartLine{
				PartID:        p.PartID,
				SerialNumber:  p.SerialNumber,
				Status:        inventory.PartStatus(p.Status),
				InventoryID:   p.InventoryID,
				InventoryName: p.InventoryName,
				UnitPrice:     p.UnitPrice,
				Consumed:      p.Consumed,
			}
		})

	tickets := make([]*ticket.ServiceTicket, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		ref, ok := customerByID[row.CustomerID]
		if !ok {
			ref = ticket.CustomerRef{ID: row.CustomerID}
		}
		t, err := r.mapper.ToDomain(row, ref)
		if err != nil {
			return nil, err
		}
		t.RestoreLinks(mechanicsByTicket[row.ID], servicesByTicket[row.ID], partsByTicket[row.ID])
		tickets = append(tickets, t)
	}
	return tickets, nil
}

type mechanicWorkloadRow struct {
	ID          uint
	Name        string
	Role        string
	TicketCount int64
}

// RankMechanicsByTicketCount counts live tickets per assigned mechanic. Ties
// are broken by employee id so the ranking is stable between calls.
func (r *ServiceTicketRepository) RankMechanicsByTicketCount(ctx context.Context) ([]ticket.MechanicWorkload, error) {
	var rows []mechanicWorkloadRow
	if err := db.GetTxFromContext(ctx, r.db).
		Table("ticket_mechanics AS tm").
		Select("e.id, e.name, e.role, COUNT(tm.ticket_id) AS ticket_count").
		Joins("JOIN employees AS e ON e.id = tm.employee_id").
		Joins("JOIN service_tickets AS st ON st.id = tm.ticket_id").
		Scopes(db.NotDeletedWithAlias("st")).
		Group("e.id, e.name, e.role").
		Order("ticket_count DESC, e.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to rank mechanics: %w", err)
	}

	return mapper.MapSlice(rows, func(row mechanicWorkloadRow) ticket.MechanicWorkload {
		return ticket.MechanicWorkload{
			Mechanic:    ticket.MechanicRef{ID: row.ID, Name: row.Name, Role: row.Role},
			TicketCount: row.TicketCount,
		}
	}), nil
}

var _ ticket.Repository = (*ServiceTicketRepository)(nil)
