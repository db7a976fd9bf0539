package catalog

import (
	"context"
	"errors"
)

var ErrServiceNotFound = errors.New("service not found")

type Repository interface {
	Create(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, id uint) (*Service, error)
	// ExistsByTypeAndDescription expects an already normalized service type.
	ExistsByTypeAndDescription(ctx context.Context, serviceType, description string) (bool, error)
	List(ctx context.Context, page, limit int) ([]*Service, int64, error)
	Update(ctx context.Context, s *Service) error
	FindByIDs(ctx context.Context, ids []uint) ([]*Service, error)
}
