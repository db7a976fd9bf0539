package catalog

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/garagehq/repairshop/internal/application/catalog/dto"
	"github.com/garagehq/repairshop/internal/domain/catalog"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/mapper"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

type CreateServiceCommand struct {
	ServiceType string
	BasePrice   string
	Description string
}

// UpdateServiceCommand carries the patchable service fields. Nil fields are
// left unchanged.
type UpdateServiceCommand struct {
	ServiceID   uint
	ServiceType *string
	BasePrice   *string
	Description *string
}

// ServiceCatalog manages the billable services a ticket can reference.
type ServiceCatalog struct {
	repo   catalog.Repository
	logger logger.Interface
}

func NewServiceCatalog(repo catalog.Repository, logger logger.Interface) *ServiceCatalog {
	return &ServiceCatalog{repo: repo, logger: logger}
}

func (s *ServiceCatalog) Create(ctx context.Context, cmd CreateServiceCommand) (*dto.ServiceDTO, error) {
	price, err := decimal.NewFromString(cmd.BasePrice)
	if err != nil {
		return nil, errors.NewValidationError("invalid base_price", err.Error())
	}

	svc, err := catalog.NewService(cmd.ServiceType, price, cmd.Description)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := s.repo.ExistsByTypeAndDescription(ctx, svc.ServiceType(), svc.Description())
	if err != nil {
		return nil, fmt.Errorf("failed to check service uniqueness: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("service already exists", "duplicate service_type and description")
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		s.logger.Errorw("failed to create service", "error", err)
		return nil, persistError(err, "service", "service_type and description")
	}

	s.logger.Infow("service created successfully", "service_id", svc.ID(), "service_type", svc.ServiceType())
	return dto.ToServiceDTO(svc), nil
}

func (s *ServiceCatalog) Get(ctx context.Context, id uint) (*dto.ServiceDTO, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, catalog.ErrServiceNotFound) {
			return nil, errors.NewNotFoundError("service not found")
		}
		return nil, err
	}
	return dto.ToServiceDTO(svc), nil
}

func (s *ServiceCatalog) List(ctx context.Context, page, limit int) (*dto.Page[*dto.ServiceDTO], error) {
	p := utils.ValidatePagination(page, limit)
	items, total, err := s.repo.List(ctx, p.Page, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return &dto.Page[*dto.ServiceDTO]{
		Items: mapper.MapSlice(items, dto.ToServiceDTO),
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	}, nil
}

// Update applies the patch. Tickets already priced keep their cost; the new
// base price is used from the next close on.
func (s *ServiceCatalog) Update(ctx context.Context, cmd UpdateServiceCommand) (*dto.ServiceDTO, error) {
	patch := catalog.Patch{ServiceType: cmd.ServiceType, Description: cmd.Description}
	if cmd.BasePrice != nil {
		price, err := decimal.NewFromString(*cmd.BasePrice)
		if err != nil {
			return nil, errors.NewValidationError("invalid base_price", err.Error())
		}
		patch.BasePrice = &price
	}

	svc, err := s.repo.GetByID(ctx, cmd.ServiceID)
	if err != nil {
		if stderrors.Is(err, catalog.ErrServiceNotFound) {
			return nil, errors.NewNotFoundError("service not found")
		}
		return nil, err
	}

	prevType, prevDescription := svc.ServiceType(), svc.Description()
	if err := svc.Apply(patch); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if svc.ServiceType() != prevType || svc.Description() != prevDescription {
		exists, err := s.repo.ExistsByTypeAndDescription(ctx, svc.ServiceType(), svc.Description())
		if err != nil {
			return nil, fmt.Errorf("failed to check service uniqueness: %w", err)
		}
		if exists {
			return nil, errors.NewConflictError("service already exists", "duplicate service_type and description")
		}
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		s.logger.Errorw("failed to update service", "service_id", svc.ID(), "error", err)
		return nil, updateError(err, "service", "service_type and description")
	}

	s.logger.Infow("service updated", "service_id", svc.ID(), "service_type", svc.ServiceType())
	return dto.ToServiceDTO(svc), nil
}
