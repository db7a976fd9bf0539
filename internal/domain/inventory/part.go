package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SerializedPart is one physical unit of an Inventory item.
type SerializedPart struct {
	id           uint
	serialNumber string
	status       PartStatus
	inventoryID  uint
	isDeleted    bool
	createdAt    time.Time
	updatedAt    time.Time

	// read-only projections filled by the repository
	inventoryName  string
	inventoryPrice decimal.Decimal
	linkedTicketID *uint
}

func NewSerializedPart(serialNumber string, inventoryID uint) (*SerializedPart, error) {
	serialNumber = strings.TrimSpace(serialNumber)
	if serialNumber == "" {
		return nil, fmt.Errorf("serial number is required")
	}
	if len(serialNumber) > 50 {
		return nil, fmt.Errorf("serial number exceeds maximum length of 50 characters")
	}
	if inventoryID == 0 {
		return nil, fmt.Errorf("inventory ID is required")
	}

	now := time.Now()
	return &SerializedPart{
		serialNumber: serialNumber,
		status:       PartStatusAvailable,
		inventoryID:  inventoryID,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// PartSnapshot carries the persisted state of a part plus the projections
// the repository joins in.
type PartSnapshot struct {
	ID             uint
	SerialNumber   string
	Status         PartStatus
	InventoryID    uint
	IsDeleted      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	InventoryName  string
	InventoryPrice decimal.Decimal
	LinkedTicketID *uint
}

func ReconstructSerializedPart(s PartSnapshot) (*SerializedPart, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("part ID cannot be zero")
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("invalid part status: %s", s.Status)
	}
	return &SerializedPart{
		id:             s.ID,
		serialNumber:   s.SerialNumber,
		status:         s.Status,
		inventoryID:    s.InventoryID,
		isDeleted:      s.IsDeleted,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		inventoryName:  s.InventoryName,
		inventoryPrice: s.InventoryPrice,
		linkedTicketID: s.LinkedTicketID,
	}, nil
}

func (p *SerializedPart) ID() uint                        { return p.id }
func (p *SerializedPart) SerialNumber() string            { return p.serialNumber }
func (p *SerializedPart) Status() PartStatus              { return p.status }
func (p *SerializedPart) InventoryID() uint               { return p.inventoryID }
func (p *SerializedPart) IsDeleted() bool                 { return p.isDeleted }
func (p *SerializedPart) CreatedAt() time.Time            { return p.createdAt }
func (p *SerializedPart) UpdatedAt() time.Time            { return p.updatedAt }
func (p *SerializedPart) InventoryName() string           { return p.inventoryName }
func (p *SerializedPart) InventoryPrice() decimal.Decimal { return p.inventoryPrice }

// LinkedTicketID is the ticket currently holding the part, if any.
func (p *SerializedPart) LinkedTicketID() *uint { return p.linkedTicketID }

// IsAttachable reports whether the part can be linked to a ticket: it must be
// available and not held by any ticket.
func (p *SerializedPart) IsAttachable() bool {
	return p.status.IsAvailable() && p.linkedTicketID == nil && !p.isDeleted
}

func (p *SerializedPart) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("part ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("part ID cannot be zero")
	}
	p.id = id
	return nil
}

// ChangeStatus is the manual status override used by stock clerks.
func (p *SerializedPart) ChangeStatus(status PartStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid part status: %s", status)
	}
	p.status = status
	p.updatedAt = time.Now()
	return nil
}
