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

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Create(ctx context.Context, inv *inventory.Inventory) error {
	model := mappers.InventoryToModel(inv)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create inventory: %w", err)
	}
	return inv.SetID(model.ID)
}

func (r *InventoryRepository) GetByID(ctx context.Context, id uint) (*inventory.Inventory, error) {
	var model models.InventoryModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.NotDeleted()).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return mappers.InventoryToDomain(&model)
}

func (r *InventoryRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.InventoryModel{}).
		Where("inventory_number = ?", number).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check inventory number: %w", err)
	}
	return count > 0, nil
}

func (r *InventoryRepository) List(ctx context.Context, filter inventory.Filter) ([]*inventory.Inventory, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.InventoryModel{}).
		Where("is_deleted = ?", filter.OnlyDeleted)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inventories: %w", err)
	}

	var rows []models.InventoryModel
	if err := query.Order("id ASC").Scopes(db.Paginate(filter.Page, filter.Limit)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list inventories: %w", err)
	}

	out := make([]*inventory.Inventory, 0, len(rows))
	for i := range rows {
		inv, err := mappers.InventoryToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, inv)
	}
	return out, total, nil
}

func (r *InventoryRepository) SoftDelete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.InventoryModel{}).
		Where("id = ?", id).
		Scopes(db.NotDeleted()).
		Update("is_deleted", true)
	if result.Error != nil {
		return fmt.Errorf("failed to delete inventory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return inventory.ErrInventoryNotFound
	}
	return nil
}

func (r *InventoryRepository) DecrementStock(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.InventoryModel{}).
		Where("id = ? AND quantity_in_stock > 0", id).
		Update("quantity_in_stock", gorm.Expr("quantity_in_stock - 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing changed: either the stock is already at zero or the row is gone.
	var count int64
	if err := tx.Model(&models.InventoryModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check inventory: %w", err)
	}
	if count == 0 {
		return inventory.ErrInventoryNotFound
	}
	return nil
}
