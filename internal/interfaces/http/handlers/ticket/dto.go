package ticket

import (
	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/application/ticket/usecases"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

type CreateTicketRequest struct {
	CustomerID  uint   `json:"customer_id" binding:"required"`
	VIN         string `json:"vin" binding:"required,vin"`
	WorkSummary string `json:"work_summary" binding:"required,max=5000"`
	Status      string `json:"status" binding:"required,oneof=open in_progress closed"`
	EmployeeIDs []uint `json:"employee_ids,omitempty"`
	ServiceIDs  []uint `json:"service_ids,omitempty"`
	PartIDs     []uint `json:"part_ids,omitempty"`
}

func (r *CreateTicketRequest) ToCommand(actorID uint) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		CustomerID:  r.CustomerID,
		VIN:         r.VIN,
		WorkSummary: r.WorkSummary,
		Status:      r.Status,
		EmployeeIDs: r.EmployeeIDs,
		ServiceIDs:  r.ServiceIDs,
		PartIDs:     r.PartIDs,
		ActorID:     actorID,
	}
}

// PatchTicketRequest is the allow-list of patchable ticket fields. Unknown
// keys in the body are ignored.
type PatchTicketRequest struct {
	Status            *string `json:"status,omitempty" binding:"omitempty,oneof=open in_progress closed"`
	WorkSummary       *string `json:"work_summary,omitempty" binding:"omitempty,max=5000"`
	AddEmployeeIDs    []uint  `json:"add_employee_ids,omitempty"`
	RemoveEmployeeIDs []uint  `json:"remove_employee_ids,omitempty"`
	AddServiceIDs     []uint  `json:"add_service_ids,omitempty"`
	RemoveServiceIDs  []uint  `json:"remove_service_ids,omitempty"`
	AddPartIDs        []uint  `json:"add_part_ids,omitempty"`
	RemovePartIDs     []uint  `json:"remove_part_ids,omitempty"`
}

func (r *PatchTicketRequest) ToCommand(ticketID, actorID uint) usecases.PatchTicketCommand {
	return usecases.PatchTicketCommand{
		TicketID:          ticketID,
		Status:            r.Status,
		WorkSummary:       r.WorkSummary,
		AddEmployeeIDs:    r.AddEmployeeIDs,
		RemoveEmployeeIDs: r.RemoveEmployeeIDs,
		AddServiceIDs:     r.AddServiceIDs,
		RemoveServiceIDs:  r.RemoveServiceIDs,
		AddPartIDs:        r.AddPartIDs,
		RemovePartIDs:     r.RemovePartIDs,
		ActorID:           actorID,
	}
}

type EditMechanicsRequest struct {
	AddIDs    []uint `json:"add_ids"`
	RemoveIDs []uint `json:"remove_ids"`
}

func parseListTicketsQuery(c *gin.Context) (usecases.ListTicketsQuery, error) {
	page, err := utils.ParsePagination(c)
	if err != nil {
		return usecases.ListTicketsQuery{}, err
	}

	q := usecases.ListTicketsQuery{
		Page:      page.Page,
		Limit:     page.Limit,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Status:    c.Query("status"),
	}

	if raw := c.Query("customer_id"); raw != "" {
		id, err := parsePositiveID(raw)
		if err != nil {
			return usecases.ListTicketsQuery{}, errors.NewValidationError("invalid query parameter", "customer_id must be a positive integer")
		}
		q.CustomerID = &id
	}
	return q, nil
}
