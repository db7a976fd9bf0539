package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/garagehq/repairshop/internal/domain/employee"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/mappers"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/models"
	"github.com/garagehq/repairshop/internal/shared/db"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	model := mappers.EmployeeToModel(e)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return e.SetID(model.ID)
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uint) (*employee.Employee, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *EmployeeRepository) first(ctx context.Context, query string, arg any) (*employee.Employee, error) {
	var model models.EmployeeModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return mappers.EmployeeToDomain(&model)
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.EmployeeModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check employee email: %w", err)
	}
	return count > 0, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.EmployeeModel{}).
		Where("id = ?", e.ID()).
		Updates(map[string]any{
			"name":       e.Name(),
			"email":      e.Email(),
			"phone":      e.Phone(),
			"salary":     e.Salary(),
			"updated_at": e.UpdatedAt().UnixMilli(),
		}).Error; err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) List(ctx context.Context, page, limit int) ([]*employee.Employee, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.EmployeeModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	var rows []models.EmployeeModel
	if err := tx.Order("id ASC").Scopes(db.Paginate(page, limit)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}

	out, err := r.toDomain(rows)
	return out, total, err
}

func (r *EmployeeRepository) FindByIDs(ctx context.Context, ids []uint) ([]*employee.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.EmployeeModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find employees: %w", err)
	}
	return r.toDomain(rows)
}

func (r *EmployeeRepository) toDomain(rows []models.EmployeeModel) ([]*employee.Employee, error) {
	out := make([]*employee.Employee, 0, len(rows))
	for i := range rows {
		e, err := mappers.EmployeeToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
