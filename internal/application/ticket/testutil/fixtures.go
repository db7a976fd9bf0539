package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/garagehq/repairshop/internal/domain/catalog"
	"github.com/garagehq/repairshop/internal/domain/customer"
	"github.com/garagehq/repairshop/internal/domain/employee"
	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	vo "github.com/garagehq/repairshop/internal/domain/ticket/valueobjects"
	"github.com/garagehq/repairshop/internal/shared/authorization"
)

func NewCustomer(t *testing.T, id uint) *customer.Customer {
	t.Helper()
	now := time.Now()
	c, err := customer.ReconstructCustomer(id, "Dana Reyes", "dana@example.com", "555-0101", "", now, now)
	require.NoError(t, err)
	return c
}

func NewEmployee(t *testing.T, id uint, name string) *employee.Employee {
	t.Helper()
	now := time.Now()
	e, err := employee.ReconstructEmployee(id, name, name+"@shop.io", "", "hash",
		decimal.NewFromInt(50000), authorization.RoleMechanic, now, now)
	require.NoError(t, err)
	return e
}

func NewService(t *testing.T, id uint, serviceType, price string) *catalog.Service {
	t.Helper()
	now := time.Now()
	s, err := catalog.ReconstructService(id, serviceType, decimal.RequireFromString(price), "", now, now)
	require.NoError(t, err)
	return s
}

// NewPart builds a part owned by inventoryID priced at price.
func NewPart(t *testing.T, id, inventoryID uint, status inventory.PartStatus, price string) *inventory.SerializedPart {
	t.Helper()
	p, err := inventory.ReconstructSerializedPart(inventory.PartSnapshot{
		ID:             id,
		SerialNumber:   "SN-" + decimal.NewFromInt(int64(id)).String(),
		Status:         status,
		InventoryID:    inventoryID,
		InventoryName:  "Brake rotor",
		InventoryPrice: decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return p
}

// NewTicket builds a persisted ticket with no links.
func NewTicket(t *testing.T, id uint, status vo.TicketStatus) *ticket.ServiceTicket {
	t.Helper()
	now := time.Now()
	var closedAt *time.Time
	if status.IsClosed() {
		closedAt = &now
	}
	tk, err := ticket.ReconstructServiceTicket(id, "1HGCM82633A004352",
		ticket.CustomerRef{ID: 1, Name: "Dana Reyes", Email: "dana@example.com"},
		"Front brakes grinding", status, decimal.Zero, false, 1, now, now, closedAt)
	require.NoError(t, err)
	return tk
}
