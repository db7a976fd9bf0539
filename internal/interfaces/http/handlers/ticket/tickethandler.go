// Package ticket exposes the service ticket use cases over HTTP.
package ticket

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/application/ticket/usecases"
	"github.com/garagehq/repairshop/internal/interfaces/http/handlers/common"
	"github.com/garagehq/repairshop/internal/interfaces/http/middleware"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC  usecases.CreateTicketExecutor
	patchTicketUC   usecases.PatchTicketExecutor
	deleteTicketUC  usecases.DeleteTicketExecutor
	editMechanicsUC usecases.EditMechanicsExecutor
	addPartUC       usecases.AddPartExecutor
	getTicketUC     usecases.GetTicketExecutor
	listTicketsUC   usecases.ListTicketsExecutor
	historyUC       usecases.TicketHistoryExecutor
	workloadUC      usecases.MechanicWorkloadExecutor
	logger          logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	patchTicketUC usecases.PatchTicketExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	editMechanicsUC usecases.EditMechanicsExecutor,
	addPartUC usecases.AddPartExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	historyUC usecases.TicketHistoryExecutor,
	workloadUC usecases.MechanicWorkloadExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:  createTicketUC,
		patchTicketUC:   patchTicketUC,
		deleteTicketUC:  deleteTicketUC,
		editMechanicsUC: editMechanicsUC,
		addPartUC:       addPartUC,
		getTicketUC:     getTicketUC,
		listTicketsUC:   listTicketsUC,
		historyUC:       historyUC,
		workloadUC:      workloadUC,
		logger:          logger,
	}
}

// CreateTicket handles POST /tickets
// @Summary Create service ticket
// @Description Create a ticket. A ticket created as closed is priced and its parts consumed immediately.
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateTicketRequest true "Ticket"
// @Success 201 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(middleware.EmployeeID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Service ticket created successfully")
}

// ListTickets handles GET /tickets
// @Summary List service tickets
// @Tags Tickets
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sort_by query string false "id, vin, status, cost, created_at or closed_at"
// @Param sort_order query string false "asc or desc"
// @Param status query string false "open, in_progress or closed"
// @Param customer_id query int false "Customer ID"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 422 {object} utils.APIResponse
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	h.listTickets(c, nil)
}

// ListMyTickets handles GET /employees/me/tickets
// @Summary List tickets assigned to the caller
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sort_by query string false "id, vin, status, cost, created_at or closed_at"
// @Param sort_order query string false "asc or desc"
// @Param status query string false "open, in_progress or closed"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 401 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /employees/me/tickets [get]
func (h *TicketHandler) ListMyTickets(c *gin.Context) {
	employeeID := middleware.EmployeeID(c)
	h.listTickets(c, func(q *usecases.ListTicketsQuery) {
		q.MechanicID = &employeeID
	})
}

// ListCustomerTickets handles GET /customers/me/tickets
// @Summary List the calling customer's tickets
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sort_by query string false "id, vin, status, cost, created_at or closed_at"
// @Param sort_order query string false "asc or desc"
// @Param status query string false "open, in_progress or closed"
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /customers/me/tickets [get]
func (h *TicketHandler) ListCustomerTickets(c *gin.Context) {
	customerID := middleware.CustomerID(c)
	h.listTickets(c, func(q *usecases.ListTicketsQuery) {
		// A customer only ever sees their own tickets, whatever customer_id says.
		q.CustomerID = &customerID
	})
}

func (h *TicketHandler) listTickets(c *gin.Context, scope func(q *usecases.ListTicketsQuery)) {
	q, err := parseListTicketsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if scope != nil {
		scope(&q)
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.Limit)
}

// MechanicWorkload handles GET /employees/by-ticket-count
// @Summary Rank employees by assigned tickets
// @Description Employees with at least one live ticket, busiest first.
// @Tags Employees
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=[]dto.MechanicWorkloadDTO}
// @Failure 401 {object} utils.APIResponse
// @Router /employees/by-ticket-count [get]
func (h *TicketHandler) MechanicWorkload(c *gin.Context) {
	result, err := h.workloadUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTicket handles GET /tickets/:id
// @Summary Get service ticket
// @Tags Tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// PatchTicket handles PATCH /tickets/:id
// @Summary Patch service ticket
// @Description Change status or work summary and add or remove mechanics, services and parts. Closing re-prices the ticket.
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body PatchTicketRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /tickets/{id} [patch]
func (h *TicketHandler) PatchTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PatchTicketRequest
	if err := common.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for patch ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.patchTicketUC.Execute(c.Request.Context(), req.ToCommand(ticketID, middleware.EmployeeID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service ticket updated successfully", result)
}

// DeleteTicket handles DELETE /tickets/:id
// @Summary Soft-delete service ticket
// @Tags Tickets
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.DeleteTicketCommand{TicketID: ticketID, ActorID: middleware.EmployeeID(c)}
	if err := h.deleteTicketUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service ticket deleted successfully", nil)
}

// EditMechanics handles PUT /tickets/:id/edit
// @Summary Edit assigned mechanics
// @Description Removes remove_ids then adds add_ids.
// @Tags Tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param request body EditMechanicsRequest true "Mechanics to add and remove"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id}/edit [put]
func (h *TicketHandler) EditMechanics(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req EditMechanicsRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.editMechanicsUC.Execute(c.Request.Context(), usecases.EditMechanicsCommand{
		TicketID:          ticketID,
		AddEmployeeIDs:    req.AddIDs,
		RemoveEmployeeIDs: req.RemoveIDs,
		ActorID:           middleware.EmployeeID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Mechanics updated successfully", result)
}

// AddPart handles POST /tickets/:id/add-part/:part_id
// @Summary Install one part
// @Description Links the part and consumes it right away, whatever the ticket status.
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Param part_id path int true "Serialized part ID"
// @Success 200 {object} utils.APIResponse{data=dto.TicketDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id}/add-part/{part_id} [post]
func (h *TicketHandler) AddPart(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	partID, err := utils.ParseIDParam(c, "part_id", "part")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.addPartUC.Execute(c.Request.Context(), usecases.AddPartCommand{
		TicketID: ticketID,
		PartID:   partID,
		ActorID:  middleware.EmployeeID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Part added successfully", result)
}

// GetHistory handles GET /tickets/:id/history
// @Summary Ticket audit trail
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse{data=[]dto.HistoryEntryDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id}/history [get]
func (h *TicketHandler) GetHistory(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.historyUC.Execute(c.Request.Context(), usecases.TicketHistoryQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func parseTicketID(c *gin.Context) (uint, error) {
	return utils.ParseIDParam(c, "id", "ticket")
}

func parsePositiveID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid id")
	}
	return uint(id), nil
}
