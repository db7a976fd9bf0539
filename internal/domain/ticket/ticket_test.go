package ticket

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehq/repairshop/internal/domain/inventory"
	vo "github.com/garagehq/repairshop/internal/domain/ticket/valueobjects"
)

var testCustomer = CustomerRef{ID: 1, Name: "Dana Reyes", Email: "dana@example.com"}

func newOpenTicket(t *testing.T) *ServiceTicket {
	t.Helper()
	tk, err := NewServiceTicket(testCustomer, "1hgcm82633a004352", "Brakes squeal", vo.StatusOpen)
	require.NoError(t, err)
	require.NoError(t, tk.SetID(10))
	return tk
}

func availablePart(id uint, price string) PartLine {
	return PartLine{
		PartID:       id,
		SerialNumber: fmt.Sprintf("SN-%04d", id),
		Status:       inventory.PartStatusAvailable,
		InventoryID:  100 + id,
		UnitPrice:    decimal.RequireFromString(price),
	}
}

func TestNewServiceTicket(t *testing.T) {
	tests := []struct {
		name    string
		vin     string
		summary string
		status  vo.TicketStatus
		wantErr string
	}{
		{name: "open", vin: "VIN123", summary: "Oil leak", status: vo.StatusOpen},
		{name: "in progress", vin: "VIN123", summary: "Oil leak", status: vo.StatusInProgress},
		{name: "closed at creation", vin: "VIN123", summary: "Oil leak", status: vo.StatusClosed},
		{name: "empty vin", vin: " ", summary: "Oil leak", status: vo.StatusOpen, wantErr: "vin is required"},
		{name: "long vin", vin: strings.Repeat("A", 18), summary: "x", status: vo.StatusOpen, wantErr: "vin exceeds"},
		{name: "empty summary", vin: "VIN1", summary: "", status: vo.StatusOpen, wantErr: "work summary is required"},
		{name: "bad status", vin: "VIN1", summary: "x", status: vo.TicketStatus("done"), wantErr: "invalid ticket status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewServiceTicket(testCustomer, tt.vin, tt.summary, tt.status)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tk.Cost().IsZero())
			assert.Equal(t, 1, tk.Version())
			assert.Equal(t, tt.status.IsClosed(), tk.ClosedAt() != nil)
		})
	}
}

func TestNewServiceTicket_RequiresCustomer(t *testing.T) {
	_, err := NewServiceTicket(CustomerRef{}, "VIN1", "x", vo.StatusOpen)
	assert.Error(t, err)
}

func TestNewServiceTicket_UppercasesVIN(t *testing.T) {
	tk, err := NewServiceTicket(testCustomer, " vin123 ", "x", vo.StatusOpen)
	require.NoError(t, err)
	assert.Equal(t, "VIN123", tk.VIN())
}

func TestChangeStatus_ClosedAtStampedOnce(t *testing.T) {
	tk := newOpenTicket(t)
	assert.Nil(t, tk.ClosedAt())

	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	first := tk.ClosedAt()
	require.NotNil(t, first)

	time.Sleep(2 * time.Millisecond)
	require.NoError(t, tk.ChangeStatus(vo.StatusOpen))
	assert.Equal(t, first, tk.ClosedAt(), "reopening keeps closed_at")

	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	assert.Equal(t, first, tk.ClosedAt(), "re-closing keeps the original closed_at")
}

func TestTimestamps_MillisecondPrecision(t *testing.T) {
	tk, err := NewServiceTicket(testCustomer, "1hgcm82633a004352", "Brakes squeal", vo.StatusClosed)
	require.NoError(t, err)
	require.NotNil(t, tk.ClosedAt())
	assert.Equal(t, tk.ClosedAt().Truncate(time.Millisecond), *tk.ClosedAt())
	assert.Equal(t, tk.CreatedAt().Truncate(time.Millisecond), tk.CreatedAt())

	open := newOpenTicket(t)
	require.NoError(t, open.ChangeStatus(vo.StatusClosed))
	closedAt := *open.ClosedAt()
	assert.True(t, closedAt.Equal(time.UnixMilli(closedAt.UnixMilli())), "closed_at survives a millisecond round trip")
}

func TestChangeStatus_AnyTransitionAllowed(t *testing.T) {
	all := []vo.TicketStatus{vo.StatusOpen, vo.StatusInProgress, vo.StatusClosed}
	for _, from := range all {
		for _, to := range all {
			tk, err := NewServiceTicket(testCustomer, "VIN1", "x", from)
			require.NoError(t, err)
			assert.NoError(t, tk.ChangeStatus(to), "%s -> %s", from, to)
			assert.Equal(t, to, tk.Status())
		}
	}
}

func TestChangeStatus_RejectsInvalid(t *testing.T) {
	tk := newOpenTicket(t)
	assert.Error(t, tk.ChangeStatus(vo.TicketStatus("archived")))
	assert.Equal(t, vo.StatusOpen, tk.Status())
}

func TestMechanics_SetSemantics(t *testing.T) {
	tk := newOpenTicket(t)

	added := tk.AddMechanics(MechanicRef{ID: 3, Name: "Sam"}, MechanicRef{ID: 1, Name: "Ari"})
	assert.Equal(t, 2, added)
	assert.Equal(t, 0, tk.AddMechanics(MechanicRef{ID: 3, Name: "Sam"}))
	assert.Equal(t, []uint{1, 3}, tk.MechanicIDs())

	assert.Equal(t, 0, tk.RemoveMechanics(99))
	assert.Equal(t, 1, tk.RemoveMechanics(1))
	assert.Equal(t, []uint{3}, tk.MechanicIDs())
}

func TestServices_SetSemantics(t *testing.T) {
	tk := newOpenTicket(t)

	tk.AddServices(
		ServiceLine{ServiceID: 2, BasePrice: decimal.NewFromInt(50)},
		ServiceLine{ServiceID: 1, BasePrice: decimal.NewFromInt(100)},
	)
	tk.AddServices(ServiceLine{ServiceID: 2, BasePrice: decimal.NewFromInt(50)})
	assert.Equal(t, []uint{1, 2}, tk.ServiceIDs())

	tk.RemoveServices(2, 42)
	assert.Equal(t, []uint{1}, tk.ServiceIDs())
}

func TestAttachParts_AllOrNothing(t *testing.T) {
	tk := newOpenTicket(t)
	used := availablePart(2, "10")
	used.Status = inventory.PartStatusUsed

	err := tk.AttachParts(availablePart(1, "10"), used)
	require.ErrorIs(t, err, ErrPartNotAttachable)
	assert.Empty(t, tk.PartIDs(), "no partial attachment")

	require.NoError(t, tk.AttachParts(availablePart(1, "10")))
	assert.Equal(t, []uint{1}, tk.PartIDs())
	assert.ErrorIs(t, tk.AttachParts(availablePart(1, "10")), ErrPartNotAttachable, "already attached")
}

func TestPendingConsumption(t *testing.T) {
	tk := newOpenTicket(t)
	require.NoError(t, tk.AttachParts(availablePart(1, "10"), availablePart(2, "20")))
	assert.Len(t, tk.PendingConsumption(), 2)

	require.NoError(t, tk.MarkPartConsumed(1))
	pending := tk.PendingConsumption()
	require.Len(t, pending, 1)
	assert.Equal(t, uint(2), pending[0].PartID)

	assert.Error(t, tk.MarkPartConsumed(77))
}

func TestDetachParts_KeepsConsumedFlagOnRemovedLine(t *testing.T) {
	tk := newOpenTicket(t)
	require.NoError(t, tk.AttachParts(availablePart(1, "10"), availablePart(2, "20")))
	require.NoError(t, tk.MarkPartConsumed(1))

	removed := tk.DetachParts(1, 99)
	require.Len(t, removed, 1)
	assert.True(t, removed[0].Consumed)
	assert.Equal(t, inventory.PartStatusUsed, removed[0].Status)
	assert.Equal(t, []uint{2}, tk.PartIDs())
}

func TestPrices(t *testing.T) {
	tk := newOpenTicket(t)
	tk.AddServices(ServiceLine{ServiceID: 1, BasePrice: decimal.NewFromInt(100)})
	require.NoError(t, tk.AttachParts(availablePart(1, "50")))

	assert.Equal(t, "100", tk.ServicePrices()[0].String())
	assert.Equal(t, "50", tk.PartPrices()[0].String())
}

func TestApplyCost_OnlyWhenClosed(t *testing.T) {
	tk := newOpenTicket(t)
	assert.ErrorIs(t, tk.ApplyCost(decimal.NewFromInt(10)), ErrTicketNotClosed)

	require.NoError(t, tk.ChangeStatus(vo.StatusClosed))
	require.NoError(t, tk.ApplyCost(decimal.RequireFromString("159.00")))
	assert.Equal(t, "159.00", tk.Cost().StringFixed(2))

	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	assert.Equal(t, "159.00", tk.Cost().StringFixed(2), "reopen keeps the last cost")
}

func TestSoftDelete(t *testing.T) {
	tk := newOpenTicket(t)
	released, err := tk.SoftDelete()
	require.NoError(t, err)
	assert.Empty(t, released)
	assert.True(t, tk.IsDeleted())
	_, err = tk.SoftDelete()
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestSoftDelete_ReleasesUnconsumedParts(t *testing.T) {
	tk := newOpenTicket(t)
	require.NoError(t, tk.AttachParts(availablePart(1, "10"), availablePart(2, "20"), availablePart(3, "30")))
	require.NoError(t, tk.MarkPartConsumed(2))

	released, err := tk.SoftDelete()
	require.NoError(t, err)
	require.Len(t, released, 2)
	assert.Equal(t, uint(1), released[0].PartID)
	assert.Equal(t, uint(3), released[1].PartID)

	require.Len(t, tk.Parts(), 1)
	assert.Equal(t, uint(2), tk.Parts()[0].PartID)
	assert.True(t, tk.Parts()[0].Consumed)
}

func TestUpdateWorkSummary(t *testing.T) {
	tk := newOpenTicket(t)
	require.NoError(t, tk.UpdateWorkSummary("Replaced pads"))
	assert.Equal(t, "Replaced pads", tk.WorkSummary())
	assert.Error(t, tk.UpdateWorkSummary("   "))
	assert.Equal(t, "Replaced pads", tk.WorkSummary())
}

func TestReconstructServiceTicket(t *testing.T) {
	now := time.Now()
	tk, err := ReconstructServiceTicket(5, "VIN1", testCustomer, "x", vo.StatusClosed,
		decimal.RequireFromString("12.34"), false, 3, now, now, &now)
	require.NoError(t, err)
	tk.RestoreLinks([]MechanicRef{{ID: 2}}, nil, []PartLine{{PartID: 8, Consumed: true}})

	assert.Equal(t, uint(5), tk.ID())
	assert.Equal(t, 3, tk.Version())
	assert.Equal(t, []uint{2}, tk.MechanicIDs())
	assert.Empty(t, tk.PendingConsumption())

	_, err = ReconstructServiceTicket(0, "VIN1", testCustomer, "x", vo.StatusOpen, decimal.Zero, false, 1, now, now, nil)
	assert.Error(t, err)
}
