package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/garagehq/repairshop/internal/domain/customer"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/mappers"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/models"
	"github.com/garagehq/repairshop/internal/shared/db"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := mappers.CustomerToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return mappers.CustomerToDomain(&model)
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := db.GetTxFromContext(ctx, r.db).Where("email = ?", customer.NormalizeEmail(email)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return mappers.CustomerToDomain(&model)
}

func (r *CustomerRepository) GetByIDForUpdate(ctx context.Context, id uint) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := db.GetTxFromContext(ctx, r.db).Scopes(db.ForUpdate()).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to lock customer: %w", err)
	}
	return mappers.CustomerToDomain(&model)
}

func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CustomerModel{}).
		Where("email = ?", customer.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check customer email: %w", err)
	}
	return count > 0, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.CustomerModel{}).
		Where("id = ?", c.ID()).
		Updates(map[string]any{
			"name":       c.Name(),
			"email":      c.Email(),
			"phone":      c.Phone(),
			"updated_at": c.UpdatedAt().UnixMilli(),
		}).Error; err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.CustomerModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}
