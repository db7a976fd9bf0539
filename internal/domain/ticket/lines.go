package ticket

import (
	"github.com/shopspring/decimal"

	"github.com/garagehq/repairshop/internal/domain/inventory"
)

// CustomerRef is the owning customer as seen from a ticket.
type CustomerRef struct {
	ID    uint
	Name  string
	Email string
}

// MechanicRef is an employee assigned to a ticket.
type MechanicRef struct {
	ID   uint
	Name string
	Role string
}

// ServiceLine is a billable service attached to a ticket.
type ServiceLine struct {
	ServiceID   uint
	ServiceType string
	BasePrice   decimal.Decimal
}

// PartLine is a serialized part linked to a ticket. UnitPrice is the owning
// inventory's price. Consumed is set once the part has been marked used and
// its stock decremented, so consumption happens at most once per link.
type PartLine struct {
	PartID        uint
	SerialNumber  string
	Status        inventory.PartStatus
	InventoryID   uint
	InventoryName string
	UnitPrice     decimal.Decimal
	Consumed      bool
}

// PartLineFrom projects a resolved part onto a new, unconsumed link.
func PartLineFrom(p *inventory.SerializedPart) PartLine {
	return PartLine{
		PartID:        p.ID(),
		SerialNumber:  p.SerialNumber(),
		Status:        p.Status(),
		InventoryID:   p.InventoryID(),
		InventoryName: p.InventoryName(),
		UnitPrice:     p.InventoryPrice(),
	}
}
