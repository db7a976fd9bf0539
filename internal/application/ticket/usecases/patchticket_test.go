package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	apperrors "github.com/garagehq/repairshop/internal/shared/errors"
)

func TestPatchTicketUseCase_ReopenThenReclose(t *testing.T) {
	h := newHarness(t)
	cmd := baseCreate()
	cmd.Status = "closed"
	cmd.ServiceIDs = []uint{1, 2}
	created := h.mustCreate(t, cmd)
	require.Equal(t, "148.40", created.Cost)
	closedAt := *created.ClosedAt

	reopened, err := h.patch().Execute(context.Background(), PatchTicketCommand{
		TicketID: created.ID,
		Status:   strPtr("open"),
	})
	require.NoError(t, err)
	assert.Equal(t, "open", reopened.Status)
	assert.Equal(t, "148.40", reopened.Cost)
	require.NotNil(t, reopened.ClosedAt)
	assert.Equal(t, closedAt, *reopened.ClosedAt)

	reclosed, err := h.patch().Execute(context.Background(), PatchTicketCommand{
		TicketID:         created.ID,
		Status:           strPtr("closed"),
		RemoveServiceIDs: []uint{2},
	})
	require.NoError(t, err)
	assert.Equal(t, "106.00", reclosed.Cost)
	assert.Equal(t, closedAt, *reclosed.ClosedAt)
	assert.Len(t, reclosed.Services, 1)

	// One receipt for the create, one for the reclose.
	assert.Len(t, h.notifier.receipts, 2)
}

func TestPatchTicketUseCase_CloseConsumesOnce(t *testing.T) {
	h := newHarness(t)
	h.addPart(t, 10, 7, inventory.PartStatusAvailable, "50.00")
	cmd := baseCreate()
	cmd.PartIDs = []uint{10}
	created := h.mustCreate(t, cmd)

	closed, err := h.patch().Execute(context.Background(), PatchTicketCommand{
		TicketID: created.ID,
		Status:   strPtr("closed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "53.00", closed.Cost)
	assert.Equal(t, 1, h.stock.Decrements[7])

	again, err := h.patch().Execute(context.Background(), PatchTicketCommand{
		TicketID:    created.ID,
		WorkSummary: strPtr("Rotors replaced"),
	})
	require.NoError(t, err)
	assert.Equal(t, "53.00", again.Cost)
	assert.Equal(t, 1, h.stock.Decrements[7], "re-patching a closed ticket must not decrement again")
	assert.Equal(t, []uint{10}, h.parts.MarkedUsed)
	assert.Len(t, h.notifier.receipts, 1)
}

func TestPatchTicketUseCase_AddPartsAllOrNothing(t *testing.T) {
	h := newHarness(t)
	h.addPart(t, 10, 7, inventory.PartStatusAvailable, "50.00")
	h.addPart(t, 11, 7, inventory.PartStatusDefective, "50.00")
	created := h.mustCreate(t, baseCreate())

	_, err := h.patch().Execute(context.Background(), PatchTicketCommand{
		TicketID:   created.ID,
		AddPartIDs: []uint{10, 11},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsStateError(err))
	assert.Contains(t, err.Error(), "parts not available")
	assert.Empty(t, h.stored[created.ID].Parts())
}

func TestPatchTicketUseCase_AddAndRemoveAssociations(t *testing.T) {
	h := newHarness(t)
	h.addPart(t, 10, 7, inventory.PartStatusAvailable, "50.00")
	cmd := baseCreate()
	cmd.EmployeeIDs = []uint{1}
	cmd.PartIDs = []uint{10}
	created := h.mustCreate(t, cmd)

	out, err := h.patch().Execute(context.Background(), PatchTicketCommand{
		TicketID:          created.ID,
		AddEmployeeIDs:    []uint{2, 3},
		RemoveEmployeeIDs: []uint{1, 4},
		AddServiceIDs:     []uint{3},
		RemovePartIDs:     []uint{10},
		ActorID:           5,
	})
	require.NoError(t, err)

	ids := make([]uint, 0, len(out.Employees))
	for _, e := range out.Employees {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []uint{2, 3}, ids)
	assert.Len(t, out.Services, 1)
	assert.Empty(t, out.Parts)
	assert.Equal(t, inventory.PartStatusAvailable, h.partsByID[10].Status(), "unconsumed part stays available after detach")

	last := h.history.Entries[len(h.history.Entries)-1]
	assert.Equal(t, ticket.ActionUpdated, last.Action)
	assert.Equal(t, uint(5), last.ActorID)
	assert.Contains(t, last.Changes, "added_employee_ids")
	assert.Contains(t, last.Changes, "removed_part_ids")
}

func TestPatchTicketUseCase_Errors(t *testing.T) {
	h := newHarness(t)
	created := h.mustCreate(t, baseCreate())

	tests := []struct {
		name  string
		cmd   PatchTicketCommand
		check func(error) bool
	}{
		{"missing ticket", PatchTicketCommand{TicketID: 999, Status: strPtr("open")}, apperrors.IsNotFoundError},
		{"empty patch", PatchTicketCommand{TicketID: created.ID}, apperrors.IsValidationError},
		{"bad status", PatchTicketCommand{TicketID: created.ID, Status: strPtr("archived")}, apperrors.IsValidationError},
		{"empty summary", PatchTicketCommand{TicketID: created.ID, WorkSummary: strPtr("")}, apperrors.IsValidationError},
		{"unknown employee", PatchTicketCommand{TicketID: created.ID, AddEmployeeIDs: []uint{99}}, apperrors.IsNotFoundError},
		{"part added and removed", PatchTicketCommand{TicketID: created.ID, AddPartIDs: []uint{1}, RemovePartIDs: []uint{1}}, apperrors.IsValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.patch().Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
}

func TestPatchTicketUseCase_StaleVersion(t *testing.T) {
	h := newHarness(t)
	created := h.mustCreate(t, baseCreate())
	h.tickets.UpdateFunc = func(ctx context.Context, tk *ticket.ServiceTicket) error {
		return ticket.ErrConcurrentModification
	}

	_, err := h.patch().Execute(context.Background(), PatchTicketCommand{
		TicketID: created.ID,
		Status:   strPtr("in_progress"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestPatchTicketUseCase_StatusParsedBeforeLocking(t *testing.T) {
	h := newHarness(t)
	created := h.mustCreate(t, baseCreate())
	callsAfterCreate := h.txMgr.Calls

	_, err := h.patch().Execute(context.Background(), PatchTicketCommand{TicketID: created.ID, Status: strPtr("archived")})
	assert.True(t, apperrors.IsValidationError(err))
	assert.Equal(t, callsAfterCreate, h.txMgr.Calls, "an unknown status never opens a transaction")

	patched, err := h.patch().Execute(context.Background(), PatchTicketCommand{TicketID: created.ID, Status: strPtr("in_progress")})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", patched.Status)

	last := h.history.Entries[len(h.history.Entries)-1]
	assert.Equal(t, map[string]string{"from": "open", "to": "in_progress"}, last.Changes["status"])
}
