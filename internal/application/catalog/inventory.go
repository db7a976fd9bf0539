package catalog

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/garagehq/repairshop/internal/application/catalog/dto"
	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/mapper"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

type CreateInventoryCommand struct {
	Name            string
	InventoryNumber string
	Price           string
	Description     string
	QuantityInStock int
}

type InventoryService struct {
	repo   inventory.Repository
	logger logger.Interface
}

func NewInventoryService(repo inventory.Repository, logger logger.Interface) *InventoryService {
	return &InventoryService{repo: repo, logger: logger}
}

func (s *InventoryService) Create(ctx context.Context, cmd CreateInventoryCommand) (*dto.InventoryDTO, error) {
	price, err := decimal.NewFromString(cmd.Price)
	if err != nil {
		return nil, errors.NewValidationError("invalid price", err.Error())
	}

	inv, err := inventory.NewInventory(cmd.Name, cmd.InventoryNumber, price, cmd.Description, cmd.QuantityInStock)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := s.repo.ExistsByNumber(ctx, inv.Number())
	if err != nil {
		return nil, fmt.Errorf("failed to check inventory number: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("inventory already exists", "duplicate inventory_number")
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		s.logger.Errorw("failed to create inventory", "error", err)
		return nil, persistError(err, "inventory", "inventory_number")
	}

	s.logger.Infow("inventory created successfully", "inventory_id", inv.ID(), "inventory_number", inv.Number())
	return dto.ToInventoryDTO(inv), nil
}

func (s *InventoryService) Get(ctx context.Context, id uint) (*dto.InventoryDTO, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, inventory.ErrInventoryNotFound) {
			return nil, errors.NewNotFoundError("inventory not found")
		}
		return nil, err
	}
	return dto.ToInventoryDTO(inv), nil
}

// List shows live rows, or only soft-deleted ones when deleted is set.
func (s *InventoryService) List(ctx context.Context, deleted bool, page, limit int) (*dto.Page[*dto.InventoryDTO], error) {
	p := utils.ValidatePagination(page, limit)
	items, total, err := s.repo.List(ctx, inventory.Filter{OnlyDeleted: deleted, Page: p.Page, Limit: p.Limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return &dto.Page[*dto.InventoryDTO]{
		Items: mapper.MapSlice(items, dto.ToInventoryDTO),
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if stderrors.Is(err, inventory.ErrInventoryNotFound) {
			return errors.NewNotFoundError("inventory not found")
		}
		return err
	}
	s.logger.Infow("inventory soft-deleted", "inventory_id", id)
	return nil
}
