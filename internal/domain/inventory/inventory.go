package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Inventory is a stocked item type. Individual units are tracked as
// SerializedParts and priced through their owning Inventory.
type Inventory struct {
	id              uint
	name            string
	number          string
	price           decimal.Decimal
	description     string
	quantityInStock int
	isDeleted       bool
	createdAt       time.Time
	updatedAt       time.Time
}

func NewInventory(name, number string, price decimal.Decimal, description string, quantity int) (*Inventory, error) {
	name = strings.TrimSpace(name)
	number = strings.TrimSpace(number)
	if name == "" {
		return nil, fmt.Errorf("inventory name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("inventory name exceeds maximum length of 100 characters")
	}
	if number == "" {
		return nil, fmt.Errorf("inventory number is required")
	}
	if len(number) > 50 {
		return nil, fmt.Errorf("inventory number exceeds maximum length of 50 characters")
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity in stock must not be negative")
	}

	now := time.Now()
	return &Inventory{
		name:            name,
		number:          number,
		price:           price.Round(2),
		description:     strings.TrimSpace(description),
		quantityInStock: quantity,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func ReconstructInventory(
	id uint,
	name, number string,
	price decimal.Decimal,
	description string,
	quantity int,
	isDeleted bool,
	createdAt, updatedAt time.Time,
) (*Inventory, error) {
	if id == 0 {
		return nil, fmt.Errorf("inventory ID cannot be zero")
	}
	return &Inventory{
		id:              id,
		name:            name,
		number:          number,
		price:           price,
		description:     description,
		quantityInStock: quantity,
		isDeleted:       isDeleted,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (i *Inventory) ID() uint               { return i.id }
func (i *Inventory) Name() string           { return i.name }
func (i *Inventory) Number() string         { return i.number }
func (i *Inventory) Price() decimal.Decimal { return i.price }
func (i *Inventory) Description() string    { return i.description }
func (i *Inventory) QuantityInStock() int   { return i.quantityInStock }
func (i *Inventory) IsDeleted() bool        { return i.isDeleted }
func (i *Inventory) CreatedAt() time.Time   { return i.createdAt }
func (i *Inventory) UpdatedAt() time.Time   { return i.updatedAt }

func (i *Inventory) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("inventory ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("inventory ID cannot be zero")
	}
	i.id = id
	return nil
}

// SoftDelete hides the record from default lookups.
func (i *Inventory) SoftDelete() error {
	if i.isDeleted {
		return ErrInventoryNotFound
	}
	i.isDeleted = true
	i.updatedAt = time.Now()
	return nil
}
