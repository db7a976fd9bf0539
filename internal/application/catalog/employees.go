package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/garagehq/repairshop/internal/application/catalog/dto"
	"github.com/garagehq/repairshop/internal/domain/employee"
	"github.com/garagehq/repairshop/internal/shared/authorization"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/mapper"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

type CreateEmployeeCommand struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Salary   string
	Role     string
}

// UpdateEmployeeCommand carries the patchable profile fields. Role, id and
// password have no field here, so a patch can never reach them.
type UpdateEmployeeCommand struct {
	EmployeeID uint
	Name       *string
	Email      *string
	Phone      *string
	Salary     *string
}

type EmployeeService struct {
	repo   employee.Repository
	hasher PasswordHasher
	logger logger.Interface
}

func NewEmployeeService(repo employee.Repository, hasher PasswordHasher, logger logger.Interface) *EmployeeService {
	return &EmployeeService{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *EmployeeService) Create(ctx context.Context, cmd CreateEmployeeCommand) (*dto.EmployeeDTO, error) {
	s.logger.Infow("creating employee", "email", cmd.Email, "role", cmd.Role)

	if err := employee.ValidatePasswordStrength(cmd.Password); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	salary := decimal.Zero
	if cmd.Salary != "" {
		var err error
		if salary, err = decimal.NewFromString(cmd.Salary); err != nil {
			return nil, errors.NewValidationError("invalid salary", err.Error())
		}
	}

	role := authorization.RoleMechanic
	if cmd.Role != "" {
		role = authorization.EmployeeRole(cmd.Role)
		if !role.IsValid() {
			return nil, errors.NewValidationError("invalid role", "must be one of mechanic, manager, admin")
		}
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check employee email: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("employee already exists", "duplicate email")
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}

	e, err := employee.NewEmployee(cmd.Name, email, cmd.Phone, hash, salary, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Errorw("failed to create employee", "error", err)
		return nil, persistError(err, "employee", "email")
	}

	s.logger.Infow("employee created successfully", "employee_id", e.ID())
	return dto.ToEmployeeDTO(e), nil
}

func (s *EmployeeService) Get(ctx context.Context, id uint) (*dto.EmployeeDTO, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, errors.NewNotFoundError("employee not found")
		}
		return nil, err
	}
	return dto.ToEmployeeDTO(e), nil
}

func (s *EmployeeService) List(ctx context.Context, page, limit int) (*dto.Page[*dto.EmployeeDTO], error) {
	p := utils.ValidatePagination(page, limit)
	items, total, err := s.repo.List(ctx, p.Page, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return &dto.Page[*dto.EmployeeDTO]{
		Items: mapper.MapSlice(items, dto.ToEmployeeDTO),
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}, nil
}

func (s *EmployeeService) Update(ctx context.Context, cmd UpdateEmployeeCommand) (*dto.EmployeeDTO, error) {
	s.logger.Infow("updating employee", "employee_id", cmd.EmployeeID)

	patch := employee.Patch{Name: cmd.Name, Email: cmd.Email, Phone: cmd.Phone}
	if cmd.Salary != nil {
		salary, err := decimal.NewFromString(*cmd.Salary)
		if err != nil {
			return nil, errors.NewValidationError("invalid salary", err.Error())
		}
		patch.Salary = &salary
	}

	e, err := s.repo.GetByID(ctx, cmd.EmployeeID)
	if err != nil {
		if stderrors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, errors.NewNotFoundError("employee not found")
		}
		return nil, err
	}

	if err := e.Apply(patch); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	holder, err := s.repo.GetByEmail(ctx, e.Email())
	switch {
	case err == nil && holder.ID() != e.ID():
		return nil, errors.NewConflictError("employee already exists", "duplicate email")
	case err != nil && !stderrors.Is(err, employee.ErrEmployeeNotFound):
		return nil, fmt.Errorf("failed to check employee email: %w", err)
	}

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Errorw("failed to update employee", "employee_id", e.ID(), "error", err)
		return nil, updateError(err, "employee", "email")
	}

	s.logger.Infow("employee updated", "employee_id", e.ID())
	return dto.ToEmployeeDTO(e), nil
}
