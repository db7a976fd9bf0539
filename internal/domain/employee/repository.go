package employee

import (
	"context"
	"errors"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id uint) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Update writes the patchable profile fields. Role and password hash
	// are left as stored.
	Update(ctx context.Context, e *Employee) error
	List(ctx context.Context, page, limit int) ([]*Employee, int64, error)
	// FindByIDs returns the employees among ids that exist, in id order.
	FindByIDs(ctx context.Context, ids []uint) ([]*Employee, error)
}
