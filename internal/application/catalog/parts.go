package catalog

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/garagehq/repairshop/internal/application/catalog/dto"
	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/mapper"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

type CreatePartCommand struct {
	SerialNumber string
	InventoryID  uint
}

type ListPartsQuery struct {
	Status      string
	InventoryID *uint
	Page        int
	Limit       int
}

type PartService struct {
	parts  inventory.PartRepository
	stock  inventory.Repository
	logger logger.Interface
}

func NewPartService(parts inventory.PartRepository, stock inventory.Repository, logger logger.Interface) *PartService {
	return &PartService{parts: parts, stock: stock, logger: logger}
}

func (s *PartService) Create(ctx context.Context, cmd CreatePartCommand) (*dto.PartDTO, error) {
	part, err := inventory.NewSerializedPart(cmd.SerialNumber, cmd.InventoryID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if _, err := s.stock.GetByID(ctx, cmd.InventoryID); err != nil {
		if stderrors.Is(err, inventory.ErrInventoryNotFound) {
			return nil, errors.NewNotFoundError("inventory not found")
		}
		return nil, err
	}

	exists, err := s.parts.ExistsBySerial(ctx, part.SerialNumber())
	if err != nil {
		return nil, fmt.Errorf("failed to check serial number: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("serialized part already exists", "duplicate serial_number")
	}

	if err := s.parts.Create(ctx, part); err != nil {
		s.logger.Errorw("failed to create serialized part", "error", err)
		return nil, persistError(err, "serialized part", "serial_number")
	}

	s.logger.Infow("serialized part created successfully", "part_id", part.ID(), "inventory_id", cmd.InventoryID)
	return dto.ToPartDTO(part), nil
}

func (s *PartService) Get(ctx context.Context, id uint) (*dto.PartDTO, error) {
	part, err := s.parts.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, inventory.ErrPartNotFound) {
			return nil, errors.NewNotFoundError("serialized part not found")
		}
		return nil, err
	}
	return dto.ToPartDTO(part), nil
}

func (s *PartService) List(ctx context.Context, q ListPartsQuery) (*dto.Page[*dto.PartDTO], error) {
	p := utils.ValidatePagination(q.Page, q.Limit)
	filter := inventory.PartFilter{InventoryID: q.InventoryID, Page: p.Page, Limit: p.Limit}
	if q.Status != "" {
		status, err := inventory.NewPartStatus(q.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status filter", "must be one of available, used, defective")
		}
		filter.Status = &status
	}

	items, total, err := s.parts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list serialized parts: %w", err)
	}
	return &dto.Page[*dto.PartDTO]{
		Items: mapper.MapSlice(items, dto.ToPartDTO),
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}, nil
}

// UpdateStatus is the manual override used to restock or write off a unit.
func (s *PartService) UpdateStatus(ctx context.Context, id uint, status string) (*dto.PartDTO, error) {
	newStatus, err := inventory.NewPartStatus(status)
	if err != nil {
		return nil, errors.NewValidationError("invalid status", "must be one of available, used, defective")
	}

	if err := s.parts.UpdateStatus(ctx, id, newStatus); err != nil {
		if stderrors.Is(err, inventory.ErrPartNotFound) {
			return nil, errors.NewNotFoundError("serialized part not found")
		}
		return nil, fmt.Errorf("failed to update part status: %w", err)
	}

	s.logger.Infow("serialized part status updated", "part_id", id, "status", newStatus)
	return s.Get(ctx, id)
}
