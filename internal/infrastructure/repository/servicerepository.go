package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/garagehq/repairshop/internal/domain/catalog"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/mappers"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/models"
	"github.com/garagehq/repairshop/internal/shared/db"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *catalog.Service) error {
	model := mappers.ServiceToModel(s)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return s.SetID(model.ID)
}

func (r *ServiceRepository) GetByID(ctx context.Context, id uint) (*catalog.Service, error) {
	var model models.ServiceModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return mappers.ServiceToDomain(&model)
}

func (r *ServiceRepository) ExistsByTypeAndDescription(ctx context.Context, serviceType, description string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ServiceModel{}).
		Where("service_type = ? AND description = ?", serviceType, description).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check service uniqueness: %w", err)
	}
	return count > 0, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *catalog.Service) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ServiceModel{}).
		Where("id = ?", s.ID()).
		Updates(map[string]any{
			"service_type": s.ServiceType(),
			"base_price":   s.BasePrice(),
			"description":  s.Description(),
			"updated_at":   s.UpdatedAt().UnixMilli(),
		}).Error; err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	return nil
}

func (r *ServiceRepository) List(ctx context.Context, page, limit int) ([]*catalog.Service, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.ServiceModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	var rows []models.ServiceModel
	if err := tx.Order("service_type ASC, id ASC").Scopes(db.Paginate(page, limit)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}

	out, err := r.toDomain(rows)
	return out, total, err
}

func (r *ServiceRepository) FindByIDs(ctx context.Context, ids []uint) ([]*catalog.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.ServiceModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find services: %w", err)
	}
	return r.toDomain(rows)
}

func (r *ServiceRepository) toDomain(rows []models.ServiceModel) ([]*catalog.Service, error) {
	out := make([]*catalog.Service, 0, len(rows))
	for i := range rows {
		s, err := mappers.ServiceToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
