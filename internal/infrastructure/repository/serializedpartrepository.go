package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/mappers"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/models"
	"github.com/garagehq/repairshop/internal/shared/db"
)

const partRowSelect = "sp.*, inv.name AS inventory_name, inv.price AS inventory_price, tp.ticket_id AS ticket_id"

type SerializedPartRepository struct {
	db *gorm.DB
}

func NewSerializedPartRepository(db *gorm.DB) *SerializedPartRepository {
	return &SerializedPartRepository{db: db}
}

// joined selects parts with their inventory name and price and the ticket
// they are linked to, if any.
func (r *SerializedPartRepository) joined(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).
		Table("serialized_parts AS sp").
		Select(partRowSelect).
		Joins("JOIN inventories AS inv ON inv.id = sp.inventory_id").
		Joins("LEFT JOIN ticket_parts AS tp ON tp.part_id = sp.id").
		Scopes(db.NotDeletedWithAlias("sp"))
}

func (r *SerializedPartRepository) Create(ctx context.Context, part *inventory.SerializedPart) error {
	model := mappers.PartToModel(part)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create serialized part: %w", err)
	}
	return part.SetID(model.ID)
}

func (r *SerializedPartRepository) GetByID(ctx context.Context, id uint) (*inventory.SerializedPart, error) {
	var row models.SerializedPartRow
	result := r.joined(ctx).Where("sp.id = ?", id).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get serialized part: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, inventory.ErrPartNotFound
	}
	return mappers.PartRowToDomain(&row)
}

func (r *SerializedPartRepository) ExistsBySerial(ctx context.Context, serial string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SerializedPartModel{}).
		Where("serial_number = ?", serial).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check serial number: %w", err)
	}
	return count > 0, nil
}

func (r *SerializedPartRepository) List(ctx context.Context, filter inventory.PartFilter) ([]*inventory.SerializedPart, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	count := tx.Model(&models.SerializedPartModel{}).Scopes(db.NotDeleted())
	if filter.Status != nil {
		count = count.Where("status = ?", filter.Status.String())
	}
	if filter.InventoryID != nil {
		count = count.Where("inventory_id = ?", *filter.InventoryID)
	}
	var total int64
	if err := count.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count serialized parts: %w", err)
	}

	query := r.joined(ctx)
	if filter.Status != nil {
		query = query.Where("sp.status = ?", filter.Status.String())
	}
	if filter.InventoryID != nil {
		query = query.Where("sp.inventory_id = ?", *filter.InventoryID)
	}

	var rows []models.SerializedPartRow
	if err := query.Order("sp.id ASC").Scopes(db.Paginate(filter.Page, filter.Limit)).Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list serialized parts: %w", err)
	}

	out, err := partsToDomain(rows)
	return out, total, err
}

func (r *SerializedPartRepository) UpdateStatus(ctx context.Context, id uint, status inventory.PartStatus) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Model(&models.SerializedPartModel{}).Where("id = ?", id).Scopes(db.NotDeleted()).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check serialized part: %w", err)
	}
	if count == 0 {
		return inventory.ErrPartNotFound
	}

	if err := tx.Model(&models.SerializedPartModel{}).Where("id = ?", id).Update("status", status.String()).Error; err != nil {
		return fmt.Errorf("failed to update serialized part status: %w", err)
	}
	return nil
}

func (r *SerializedPartRepository) FindByIDsForUpdate(ctx context.Context, ids []uint) ([]*inventory.SerializedPart, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.SerializedPartRow
	if err := r.joined(ctx).
		Where("sp.id IN ?", ids).
		Order("sp.id ASC").
		Scopes(db.ForUpdate()).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to lock serialized parts: %w", err)
	}
	return partsToDomain(rows)
}

func (r *SerializedPartRepository) MarkUsed(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SerializedPartModel{}).
		Where("id = ? AND status = ?", id, inventory.PartStatusAvailable.String()).
		Scopes(db.NotDeleted()).
		Update("status", inventory.PartStatusUsed.String())
	if result.Error != nil {
		return fmt.Errorf("failed to mark part used: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return inventory.ErrPartNotAvailable
	}
	return nil
}

func partsToDomain(rows []models.SerializedPartRow) ([]*inventory.SerializedPart, error) {
	out := make([]*inventory.SerializedPart, 0, len(rows))
	for i := range rows {
		p, err := mappers.PartRowToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

var _ inventory.PartRepository = (*SerializedPartRepository)(nil)
var _ inventory.Repository = (*InventoryRepository)(nil)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
