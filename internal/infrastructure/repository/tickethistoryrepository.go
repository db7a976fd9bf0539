package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/mappers"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/models"
	"github.com/garagehq/repairshop/internal/shared/db"
)

type TicketHistoryRepository struct {
	db     *gorm.DB
	mapper mappers.ServiceTicketMapper
}

func NewTicketHistoryRepository(db *gorm.DB) *TicketHistoryRepository {
	return &TicketHistoryRepository{
		db:     db,
		mapper: mappers.NewServiceTicketMapper(),
	}
}

func (r *TicketHistoryRepository) Append(ctx context.Context, entry *ticket.HistoryEntry) error {
	model, err := r.mapper.HistoryToModel(entry)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append ticket history: %w", err)
	}
	entry.ID = model.ID
	return nil
}

// ListByTicket returns entries oldest first.
func (r *TicketHistoryRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.HistoryEntry, error) {
	var rows []models.TicketHistoryModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket history: %w", err)
	}

	entries := make([]*ticket.HistoryEntry, 0, len(rows))
	for i := range rows {
		entry, err := r.mapper.HistoryToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

var _ ticket.HistoryRepository = (*TicketHistoryRepository)(nil)
