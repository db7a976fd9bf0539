package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/application/catalog"
	"github.com/garagehq/repairshop/internal/interfaces/http/handlers/common"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

type CreateCustomerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UpdateCustomerRequest lists the only fields PATCH /customers/:id accepts.
type UpdateCustomerRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Email *string `json:"email" binding:"omitempty,email,max=255"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
}

var customerPatchFields = []string{"name", "email", "phone"}

type CustomerHandler struct {
	service customerService
	logger  logger.Interface
}

func NewCustomerHandler(service customerService, logger logger.Interface) *CustomerHandler {
	return &CustomerHandler{service: service, logger: logger}
}

// Create handles POST /customers
// @Summary Register customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body CreateCustomerRequest true "Customer"
// @Success 201 {object} utils.APIResponse{data=dto.CustomerDTO}
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), catalog.CreateCustomerCommand{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Customer created successfully")
}

// Get handles GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "customer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Update handles PATCH /customers/:id
// @Summary Update customer contact details
// @Tags Customers
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Customer ID"
// @Param request body UpdateCustomerRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.CustomerDTO}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /customers/{id} [patch]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "customer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateCustomerRequest
	if err := common.BindPatchJSON(c, &req, customerPatchFields...); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), catalog.UpdateCustomerCommand{
		CustomerID: id,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customer updated successfully", result)
}

// Delete handles DELETE /customers/:id. A customer that owns tickets is kept
// and the request fails with 409.
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "customer")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customer deleted successfully", nil)
}
