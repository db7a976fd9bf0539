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

func TestAddPartUseCase_Execute_ConsumesImmediately(t *testing.T) {
	h := newHarness(t)
	h.addPart(t, 10, 7, inventory.PartStatusAvailable, "50.00")
	created := h.mustCreate(t, baseCreate())

	out, err := h.addPartUC().Execute(context.Background(), AddPartCommand{TicketID: created.ID, PartID: 10, ActorID: 2})
	require.NoError(t, err)

	require.Len(t, out.Parts, 1)
	assert.Equal(t, "used", out.Parts[0].Status)
	assert.Equal(t, "open", out.Status)
	assert.Equal(t, "0.00", out.Cost)
	assert.Equal(t, 1, h.stock.Decrements[7])

	last := h.history.Entries[len(h.history.Entries)-1]
	assert.Equal(t, ticket.ActionPartAdded, last.Action)

	// Closing later must not consume the part a second time.
	closed, err := h.patch().Execute(context.Background(), PatchTicketCommand{TicketID: created.ID, Status: strPtr("closed")})
	require.NoError(t, err)
	assert.Equal(t, "53.00", closed.Cost)
	assert.Equal(t, 1, h.stock.Decrements[7])
}

func TestAddPartUseCase_Execute_SecondAttachFails(t *testing.T) {
	h := newHarness(t)
	h.addPart(t, 10, 7, inventory.PartStatusAvailable, "50.00")
	first := h.mustCreate(t, baseCreate())
	second := h.mustCreate(t, baseCreate())

	_, err := h.addPartUC().Execute(context.Background(), AddPartCommand{TicketID: first.ID, PartID: 10})
	require.NoError(t, err)

	_, err = h.addPartUC().Execute(context.Background(), AddPartCommand{TicketID: second.ID, PartID: 10})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeBadRequest, appErr.Type)
	assert.Equal(t, "part is not available", appErr.Message)
	assert.Empty(t, h.stored[second.ID].Parts())
	assert.Equal(t, 1, h.stock.Decrements[7])
}

func TestAddPartUseCase_Execute_ClosedTicketRepriced(t *testing.T) {
	h := newHarness(t)
	h.addPart(t, 10, 7, inventory.PartStatusAvailable, "50.00")
	cmd := baseCreate()
	cmd.Status = "closed"
	cmd.ServiceIDs = []uint{1}
	created := h.mustCreate(t, cmd)
	require.Equal(t, "106.00", created.Cost)

	out, err := h.addPartUC().Execute(context.Background(), AddPartCommand{TicketID: created.ID, PartID: 10})
	require.NoError(t, err)
	assert.Equal(t, "159.00", out.Cost)
}

func TestAddPartUseCase_Execute_NotFound(t *testing.T) {
	h := newHarness(t)
	created := h.mustCreate(t, baseCreate())

	_, err := h.addPartUC().Execute(context.Background(), AddPartCommand{TicketID: created.ID, PartID: 77})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = h.addPartUC().Execute(context.Background(), AddPartCommand{TicketID: 999, PartID: 77})
	assert.True(t, apperrors.IsNotFoundError(err))
}
