package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehq/repairshop/internal/application/ticket/testutil"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	vo "github.com/garagehq/repairshop/internal/domain/ticket/valueobjects"
	apperrors "github.com/garagehq/repairshop/internal/shared/errors"
)

func TestListTicketsUseCase_Execute_Filter(t *testing.T) {
	var captured ticket.Filter
	repo := &testutil.MockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.Filter) ([]*ticket.ServiceTicket, int64, error) {
			captured = filter
			return []*ticket.ServiceTicket{
				testutil.NewTicket(t, 1, vo.StatusOpen),
				testutil.NewTicket(t, 2, vo.StatusOpen),
			}, 2, nil
		},
	}
	h := newHarness(t)
	uc := NewListTicketsUseCase(repo, h.assembler, testutil.NewNopLogger())

	customerID := uint(1)
	result, err := uc.Execute(context.Background(), ListTicketsQuery{
		Page:       2,
		Limit:      500,
		SortBy:     "cost",
		SortOrder:  "asc",
		Status:     "open",
		CustomerID: &customerID,
	})
	require.NoError(t, err)

	assert.Len(t, result.Tickets, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 100, result.Limit)

	require.NotNil(t, captured.Status)
	assert.Equal(t, vo.StatusOpen, *captured.Status)
	assert.Equal(t, &customerID, captured.CustomerID)
	assert.Equal(t, "cost", captured.SortBy)
	assert.False(t, captured.SortDesc)
}

func TestListTicketsUseCase_Execute_Defaults(t *testing.T) {
	var captured ticket.Filter
	repo := &testutil.MockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.Filter) ([]*ticket.ServiceTicket, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	h := newHarness(t)
	uc := NewListTicketsUseCase(repo, h.assembler, testutil.NewNopLogger())

	result, err := uc.Execute(context.Background(), ListTicketsQuery{})
	require.NoError(t, err)
	assert.NotNil(t, result.Tickets)
	assert.Empty(t, result.Tickets)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 10, captured.Limit)
	assert.Equal(t, "created_at", captured.SortBy)
	assert.True(t, captured.SortDesc)
	assert.Nil(t, captured.Status)
}

func TestListTicketsUseCase_Execute_InvalidInput(t *testing.T) {
	h := newHarness(t)
	uc := NewListTicketsUseCase(&testutil.MockTicketRepository{}, h.assembler, testutil.NewNopLogger())

	for _, q := range []ListTicketsQuery{
		{Status: "pending"},
		{SortBy: "password"},
		{SortOrder: "sideways"},
	} {
		_, err := uc.Execute(context.Background(), q)
		assert.True(t, apperrors.IsValidationError(err), "query %+v", q)
	}
}

func TestListTicketsUseCase_Execute_AssignedToMechanic(t *testing.T) {
	var captured ticket.Filter
	repo := &testutil.MockTicketRepository{
		ListFunc: func(ctx context.Context, filter ticket.Filter) ([]*ticket.ServiceTicket, int64, error) {
			captured = filter
			return nil, 0, nil
		},
	}
	h := newHarness(t)
	uc := NewListTicketsUseCase(repo, h.assembler, testutil.NewNopLogger())

	mechanicID := uint(7)
	_, err := uc.Execute(context.Background(), ListTicketsQuery{MechanicID: &mechanicID, Status: "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, &mechanicID, captured.MechanicID)
	assert.Nil(t, captured.CustomerID)
	require.NotNil(t, captured.Status)
	assert.Equal(t, vo.StatusInProgress, *captured.Status)
}
