package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/garagehq/repairshop/internal/domain/ticket"
	vo "github.com/garagehq/repairshop/internal/domain/ticket/valueobjects"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/models"
)

// ServiceTicketMapper converts between the ticket aggregate and its rows.
type ServiceTicketMapper interface {
	ToModel(t *ticket.ServiceTicket) *models.ServiceTicketModel
	// ToDomain rebuilds the ticket without links; the repository restores
	// them with RestoreLinks.
	ToDomain(model *models.ServiceTicketModel, customer ticket.CustomerRef) (*ticket.ServiceTicket, error)
	LinkModels(t *ticket.ServiceTicket) ([]models.TicketMechanicModel, []models.TicketServiceModel, []models.TicketPartModel)
	HistoryToModel(entry *ticket.HistoryEntry) (*models.TicketHistoryModel, error)
	HistoryToDomain(model *models.TicketHistoryModel) (*ticket.HistoryEntry, error)
}

type ServiceTicketMapperImpl struct{}

func NewServiceTicketMapper() ServiceTicketMapper {
	return &ServiceTicketMapperImpl{}
}

func (m *ServiceTicketMapperImpl) ToModel(t *ticket.ServiceTicket) *models.ServiceTicketModel {
	model := &models.ServiceTicketModel{
		ID:          t.ID(),
		VIN:         t.VIN(),
		CustomerID:  t.CustomerID(),
		WorkSummary: t.WorkSummary(),
		Status:      t.Status().String(),
		Cost:        t.Cost(),
		IsDeleted:   t.IsDeleted(),
		Version:     t.Version(),
		CreatedAt:   t.CreatedAt().UnixMilli(),
		UpdatedAt:   t.UpdatedAt().UnixMilli(),
	}
	if t.ClosedAt() != nil {
		closed := t.ClosedAt().UnixMilli()
		model.ClosedAt = &closed
	}
	return model
}

func (m *ServiceTicketMapperImpl) ToDomain(model *models.ServiceTicketModel, customer ticket.CustomerRef) (*ticket.ServiceTicket, error) {
	var closedAt *time.Time
	if model.ClosedAt != nil {
		ts := time.UnixMilli(*model.ClosedAt)
		closedAt = &ts
	}

	t, err := ticket.ReconstructServiceTicket(
		model.ID,
		model.VIN,
		customer,
		model.WorkSummary,
		vo.TicketStatus(model.Status),
		model.Cost,
		model.IsDeleted,
		model.Version,
		time.UnixMilli(model.CreatedAt),
		time.UnixMilli(model.UpdatedAt),
		closedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket %d: %w", model.ID, err)
	}
	return t, nil
}

func (m *ServiceTicketMapperImpl) LinkModels(t *ticket.ServiceTicket) ([]models.TicketMechanicModel, []models.TicketServiceModel, []models.TicketPartModel) {
	mechanics := make([]models.TicketMechanicModel, 0, len(t.Mechanics()))
	for _, ref := range t.Mechanics() {
		mechanics = append(mechanics, models.TicketMechanicModel{TicketID: t.ID(), EmployeeID: ref.ID})
	}

	services := make([]models.TicketServiceModel, 0, len(t.Services()))
	for _, line := range t.Services() {
		services = append(services, models.TicketServiceModel{TicketID: t.ID(), ServiceID: line.ServiceID})
	}

	parts := make([]models.TicketPartModel, 0, len(t.Parts()))
	for _, line := range t.Parts() {
		parts = append(parts, models.TicketPartModel{PartID: line.PartID, TicketID: t.ID(), Consumed: line.Consumed})
	}
	return mechanics, services, parts
}

func (m *ServiceTicketMapperImpl) HistoryToModel(entry *ticket.HistoryEntry) (*models.TicketHistoryModel, error) {
	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history changes: %w", err)
	}
	return &models.TicketHistoryModel{
		TicketID:  entry.TicketID,
		Action:    entry.Action,
		ActorID:   entry.ActorID,
		Changes:   datatypes.JSON(changes),
		CreatedAt: entry.CreatedAt.UnixMilli(),
	}, nil
}

func (m *ServiceTicketMapperImpl) HistoryToDomain(model *models.TicketHistoryModel) (*ticket.HistoryEntry, error) {
	changes := map[string]any{}
	if len(model.Changes) > 0 {
		if err := json.Unmarshal(model.Changes, &changes); err != nil {
			return nil, fmt.Errorf("failed to decode history changes for entry %d: %w", model.ID, err)
		}
	}
	return &ticket.HistoryEntry{
		ID:        model.ID,
		TicketID:  model.TicketID,
		Action:    model.Action,
		ActorID:   model.ActorID,
		Changes:   changes,
		CreatedAt: time.UnixMilli(model.CreatedAt),
	}, nil
}
