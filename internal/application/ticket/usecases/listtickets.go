package usecases

import (
	"context"

	"github.com/garagehq/repairshop/internal/application/ticket/dto"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	vo "github.com/garagehq/repairshop/internal/domain/ticket/valueobjects"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/query"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

// ticketSortColumns maps sort_by values to columns.
var ticketSortColumns = map[string]string{
	"id":         "id",
	"vin":        "vin",
	"status":     "status",
	"cost":       "cost",
	"created_at": "created_at",
	"closed_at":  "closed_at",
}

var defaultTicketSort = query.Sort{Column: "created_at", Desc: true}

type ListTicketsQuery struct {
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
	Status     string
	CustomerID *uint
	MechanicID *uint
}

type ListTicketsResult struct {
	Tickets []*dto.TicketDTO
	Total   int64
	Page    int
	Limit   int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	assembler  *dto.Assembler
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, assembler *dto.Assembler, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		assembler:  assembler,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	log := uc.logger.WithContext(ctx)
	filter, err := uc.buildFilter(q)
	if err != nil {
		return nil, err
	}

	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		log.Errorw("failed to list service tickets", "error", err)
		return nil, translateError(err)
	}

	return &ListTicketsResult{
		Tickets: uc.assembler.ToTicketDTOs(tickets),
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
	}, nil
}

func (uc *ListTicketsUseCase) buildFilter(q ListTicketsQuery) (ticket.Filter, error) {
	p := utils.ValidatePagination(q.Page, q.Limit)
	sort, err := query.ParseSort(q.SortBy, q.SortOrder, ticketSortColumns, defaultTicketSort)
	if err != nil {
		return ticket.Filter{}, err
	}

	filter := ticket.Filter{
		CustomerID: q.CustomerID,
		MechanicID: q.MechanicID,
		Page:       p.Page,
		Limit:      p.Limit,
		SortBy:     sort.Column,
		SortDesc:   sort.Desc,
	}
	if q.Status != "" {
		status, err := vo.NewTicketStatus(q.Status)
		if err != nil {
			return ticket.Filter{}, errors.NewValidationError("invalid status filter", "must be one of open, in_progress, closed")
		}
		filter.Status = &status
	}
	return filter, nil
}
