package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	vo "github.com/garagehq/repairshop/internal/domain/ticket/valueobjects"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/models"
)

type ticketFixture struct {
	customer ticket.CustomerRef
	mechanic ticket.MechanicRef
	service  ticket.ServiceLine
	part     *inventory.SerializedPart
	spare    *inventory.SerializedPart
}

func newTicketFixture(t *testing.T, gdb *gorm.DB) ticketFixture {
	t.Helper()
	c := seedCustomer(t, gdb, "Dana Reyes", "dana@example.com")
	e := seedEmployee(t, gdb, "avery")
	s := seedService(t, gdb, "brake job", "100.00")
	inv := seedInventory(t, gdb, "INV-BP", "50.00", 5)
	p := seedPart(t, gdb, "SN-001", inv.ID())
	spare := seedPart(t, gdb, "SN-002", inv.ID())

	parts, err := NewSerializedPartRepository(gdb).FindByIDsForUpdate(context.Background(), []uint{p.ID(), spare.ID()})
	require.NoError(t, err)
	require.Len(t, parts, 2)

	return ticketFixture{
		customer: ticket.CustomerRef{ID: c.ID(), Name: c.Name(), Email: c.Email()},
		mechanic: ticket.MechanicRef{ID: e.ID(), Name: e.Name(), Role: e.Role().String()},
		service:  ticket.ServiceLine{ServiceID: s.ID(), ServiceType: s.ServiceType(), BasePrice: s.BasePrice()},
		part:     parts[0],
		spare:    parts[1],
	}
}

func (f ticketFixture) newTicket(t *testing.T, status vo.TicketStatus) *ticket.ServiceTicket {
	t.Helper()
	tk, err := ticket.NewServiceTicket(f.customer, "1hgcm82633a004352", "Replace front pads", status)
	require.NoError(t, err)
	return tk
}

func TestServiceTicketRepository_CreateAndGet(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewServiceTicketRepository(gdb)
	ctx := context.Background()
	f := newTicketFixture(t, gdb)

	tk := f.newTicket(t, vo.StatusOpen)
	tk.AddMechanics(f.mechanic)
	tk.AddServices(f.service)
	require.NoError(t, tk.AttachParts(ticket.PartLineFrom(f.part)))
	require.NoError(t, repo.Create(ctx, tk))
	require.NotZero(t, tk.ID())

	found, err := repo.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, "1HGCM82633A004352", found.VIN())
	assert.Equal(t, "Dana Reyes", found.Customer().Name)
	assert.Equal(t, vo.StatusOpen, found.Status())
	assert.Equal(t, 1, found.Version())
	assert.Nil(t, found.ClosedAt())

	require.Len(t, found.Mechanics(), 1)
	assert.Equal(t, "avery", found.Mechanics()[0].Name)
	require.Len(t, found.Services(), 1)
	assert.Equal(t, "100.00", found.Services()[0].BasePrice.StringFixed(2))
	require.Len(t, found.Parts(), 1)
	assert.Equal(t, "50.00", found.Parts()[0].UnitPrice.StringFixed(2))
	assert.False(t, found.Parts()[0].Consumed)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ticket.ErrTicketNotFound)
}

func TestServiceTicketRepository_PartLinkedOnce(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewServiceTicketRepository(gdb)
	ctx := context.Background()
	f := newTicketFixture(t, gdb)

	first := f.newTicket(t, vo.StatusOpen)
	require.NoError(t, first.AttachParts(ticket.PartLineFrom(f.part)))
	require.NoError(t, repo.Create(ctx, first))

	second := f.newTicket(t, vo.StatusOpen)
	require.NoError(t, second.AttachParts(ticket.PartLineFrom(f.part)))
	assert.ErrorIs(t, repo.Create(ctx, second), ticket.ErrPartAlreadyLinked)
}

func TestServiceTicketRepository_SoftDeleteFreesUnconsumedParts(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewServiceTicketRepository(gdb)
	ctx := context.Background()
	f := newTicketFixture(t, gdb)

	first := f.newTicket(t, vo.StatusOpen)
	require.NoError(t, first.AttachParts(ticket.PartLineFrom(f.part), ticket.PartLineFrom(f.spare)))
	require.NoError(t, first.MarkPartConsumed(f.spare.ID()))
	require.NoError(t, repo.Create(ctx, first))

	loaded, err := repo.GetByIDForUpdate(ctx, first.ID())
	require.NoError(t, err)
	released, err := loaded.SoftDelete()
	require.NoError(t, err)
	require.Len(t, released, 1)
	require.NoError(t, repo.Update(ctx, loaded))

	var links []models.TicketPartModel
	require.NoError(t, gdb.Where("ticket_id = ?", first.ID()).Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, f.spare.ID(), links[0].PartID)

	second := f.newTicket(t, vo.StatusOpen)
	require.NoError(t, second.AttachParts(ticket.PartLineFrom(f.part)))
	require.NoError(t, repo.Create(ctx, second))
}

func TestServiceTicketRepository_Update(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewServiceTicketRepository(gdb)
	ctx := context.Background()
	f := newTicketFixture(t, gdb)

	tk := f.newTicket(t, vo.StatusOpen)
	tk.AddServices(f.service)
	require.NoError(t, tk.AttachParts(ticket.PartLineFrom(f.part)))
	require.NoError(t, repo.Create(ctx, tk))

	t.Run("syncs links and bumps version", func(t *testing.T) {
		loaded, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)

		require.NoError(t, loaded.ChangeStatus(vo.StatusClosed))
		loaded.DetachParts(f.part.ID())
		require.NoError(t, loaded.AttachParts(ticket.PartLineFrom(f.spare)))
		require.NoError(t, loaded.MarkPartConsumed(f.spare.ID()))
		loaded.AddMechanics(f.mechanic)
		require.NoError(t, loaded.ApplyCost(decimal.RequireFromString("159.00")))
		require.NoError(t, repo.Update(ctx, loaded))
		assert.Equal(t, 2, loaded.Version())

		found, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		assert.Equal(t, vo.StatusClosed, found.Status())
		assert.NotNil(t, found.ClosedAt())
		assert.Equal(t, "159.00", found.Cost().StringFixed(2))
		assert.Len(t, found.Mechanics(), 1)
		require.Len(t, found.Parts(), 1)
		assert.Equal(t, f.spare.ID(), found.Parts()[0].PartID)
		assert.True(t, found.Parts()[0].Consumed)

		var count int64
		require.NoError(t, gdb.Model(&models.TicketPartModel{}).Where("part_id = ?", f.part.ID()).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		a, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)
		b, err := repo.GetByID(ctx, tk.ID())
		require.NoError(t, err)

		require.NoError(t, a.UpdateWorkSummary("first writer"))
		require.NoError(t, repo.Update(ctx, a))

		require.NoError(t, b.UpdateWorkSummary("second writer"))
		assert.ErrorIs(t, repo.Update(ctx, b), ticket.ErrConcurrentModification)
	})

	t.Run("soft delete hides the ticket", func(t *testing.T) {
		loaded, err := repo.GetByIDForUpdate(ctx, tk.ID())
		require.NoError(t, err)
		_, err = loaded.SoftDelete()
		require.NoError(t, err)
		require.NoError(t, repo.Update(ctx, loaded))

		_, err = repo.GetByID(ctx, tk.ID())
		assert.ErrorIs(t, err, ticket.ErrTicketNotFound)

		count, err := repo.CountByCustomer(ctx, f.customer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestServiceTicketRepository_List(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewServiceTicketRepository(gdb)
	ctx := context.Background()
	f := newTicketFixture(t, gdb)

	for _, status := range []vo.TicketStatus{vo.StatusOpen, vo.StatusOpen, vo.StatusClosed} {
		tk := f.newTicket(t, status)
		tk.AddServices(f.service)
		require.NoError(t, repo.Create(ctx, tk))
	}

	t.Run("status filter", func(t *testing.T) {
		open := vo.StatusOpen
		tickets, total, err := repo.List(ctx, ticket.Filter{Status: &open, Page: 1, Limit: 10, SortBy: "id"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, tickets, 2)
		assert.Less(t, tickets[0].ID(), tickets[1].ID())
		for _, tk := range tickets {
			assert.Len(t, tk.Services(), 1)
		}
	})

	t.Run("pagination and descending order", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.Filter{Page: 1, Limit: 2, SortBy: "id", SortDesc: true})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, tickets, 2)
		assert.Greater(t, tickets[0].ID(), tickets[1].ID())
	})

	t.Run("unknown sort column falls back", func(t *testing.T) {
		tickets, _, err := repo.List(ctx, ticket.Filter{Page: 1, Limit: 10, SortBy: "1; DROP TABLE service_tickets"})
		require.NoError(t, err)
		assert.Len(t, tickets, 3)
	})

	t.Run("customer filter", func(t *testing.T) {
		other := uint(999)
		tickets, total, err := repo.List(ctx, ticket.Filter{CustomerID: &other, Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, tickets)
	})
}

func TestServiceTicketRepository_MechanicAssignments(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewServiceTicketRepository(gdb)
	ctx := context.Background()
	f := newTicketFixture(t, gdb)
	b := seedEmployee(t, gdb, "blake")
	blake := ticket.MechanicRef{ID: b.ID(), Name: b.Name(), Role: b.Role().String()}

	create := func(mechanics ...ticket.MechanicRef) *ticket.ServiceTicket {
		tk := f.newTicket(t, vo.StatusOpen)
		tk.AddMechanics(mechanics...)
		require.NoError(t, repo.Create(ctx, tk))
		return tk
	}
	shared := create(f.mechanic, blake)
	create(f.mechanic)
	create()
	deleted := create(f.mechanic, blake)

	loaded, err := repo.GetByIDForUpdate(ctx, deleted.ID())
	require.NoError(t, err)
	_, err = loaded.SoftDelete()
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, loaded))

	t.Run("mechanic filter", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, ticket.Filter{MechanicID: &f.mechanic.ID, Page: 1, Limit: 10, SortBy: "id"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, tickets, 2)
		assert.Equal(t, shared.ID(), tickets[0].ID())
		assert.Len(t, tickets[0].Mechanics(), 2, "the filter does not trim the other assignees")

		tickets, total, err = repo.List(ctx, ticket.Filter{MechanicID: &blake.ID, Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		assert.Equal(t, shared.ID(), tickets[0].ID())
	})

	t.Run("ranking counts live tickets only", func(t *testing.T) {
		rows, err := repo.RankMechanicsByTicketCount(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, f.mechanic, rows[0].Mechanic)
		assert.Equal(t, int64(2), rows[0].TicketCount)
		assert.Equal(t, blake, rows[1].Mechanic)
		assert.Equal(t, int64(1), rows[1].TicketCount)
	})
}

func TestTicketHistoryRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketHistoryRepository(gdb)
	ctx := context.Background()

	first := ticket.NewHistoryEntry(5, ticket.ActionCreated, 2, map[string]any{"status": "open"})
	require.NoError(t, repo.Append(ctx, first))
	assert.NotZero(t, first.ID)
	require.NoError(t, repo.Append(ctx, ticket.NewHistoryEntry(5, ticket.ActionPartAdded, 2, map[string]any{"part_id": 10})))
	require.NoError(t, repo.Append(ctx, ticket.NewHistoryEntry(6, ticket.ActionCreated, 0, nil)))

	entries, err := repo.ListByTicket(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ticket.ActionCreated, entries[0].Action)
	assert.Equal(t, "open", entries[0].Changes["status"])
	assert.Equal(t, ticket.ActionPartAdded, entries[1].Action)
	// JSON numbers decode as float64.
	assert.Equal(t, float64(10), entries[1].Changes["part_id"])
}
