package customer

import (
	"context"
	"errors"
)

var ErrCustomerNotFound = errors.New("customer not found")

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id uint) (*Customer, error)
	// GetByIDForUpdate locks the customer row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id uint) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Update writes the patchable contact fields.
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id uint) error
}
