package inventory

import (
	"context"
	"errors"
)

var (
	ErrInventoryNotFound = errors.New("inventory not found")
	ErrPartNotFound      = errors.New("serialized part not found")
	// ErrPartNotAvailable is returned when a conditional consume finds the
	// part already used, defective or removed.
	ErrPartNotAvailable = errors.New("serialized part is not available")
)

type Repository interface {
	Create(ctx context.Context, inv *Inventory) error
	GetByID(ctx context.Context, id uint) (*Inventory, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Inventory, int64, error)
	SoftDelete(ctx context.Context, id uint) error
	// DecrementStock lowers quantity_in_stock by one, never below zero.
	DecrementStock(ctx context.Context, id uint) error
}

type Filter struct {
	// OnlyDeleted lists soft-deleted rows instead of live ones.
	OnlyDeleted bool
	Page        int
	Limit       int
}

type PartRepository interface {
	Create(ctx context.Context, part *SerializedPart) error
	GetByID(ctx context.Context, id uint) (*SerializedPart, error)
	ExistsBySerial(ctx context.Context, serial string) (bool, error)
	List(ctx context.Context, filter PartFilter) ([]*SerializedPart, int64, error)
	UpdateStatus(ctx context.Context, id uint, status PartStatus) error
	// FindByIDsForUpdate row-locks the live parts among ids. Ids that do not
	// resolve are simply absent from the result.
	FindByIDsForUpdate(ctx context.Context, ids []uint) ([]*SerializedPart, error)
	// MarkUsed flips an available part to used. It returns
	// ErrPartNotAvailable when the part is no longer available.
	MarkUsed(ctx context.Context, id uint) error
}

type PartFilter struct {
	Status      *PartStatus
	InventoryID *uint
	Page        int
	Limit       int
}
