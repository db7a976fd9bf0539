package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/application/catalog"
	"github.com/garagehq/repairshop/internal/interfaces/http/handlers/common"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

type CreateServiceRequest struct {
	ServiceType string `json:"service_type" binding:"required,max=100"`
	BasePrice   string `json:"base_price" binding:"required"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

type UpdateServiceRequest struct {
	ServiceType *string `json:"service_type" binding:"omitempty,max=100"`
	BasePrice   *string `json:"base_price"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

var servicePatchFields = []string{"service_type", "base_price", "description"}

type ServiceHandler struct {
	service serviceCatalog
	logger  logger.Interface
}

func NewServiceHandler(service serviceCatalog, logger logger.Interface) *ServiceHandler {
	return &ServiceHandler{service: service, logger: logger}
}

// Create handles POST /services
// @Summary Add catalog service
// @Tags Services
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateServiceRequest true "Service"
// @Success 201 {object} utils.APIResponse{data=dto.ServiceDTO}
// @Failure 409 {object} utils.APIResponse
// @Router /services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), catalog.CreateServiceCommand{
		ServiceType: req.ServiceType,
		BasePrice:   req.BasePrice,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Service created successfully")
}

// List handles GET /services
func (h *ServiceHandler) List(c *gin.Context) {
	p, err := utils.ParsePagination(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, page.Items, page.Total, page.Page, page.Limit)
}

// Get handles GET /services/:id
func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "service")
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

// Update handles PATCH /services/:id
// @Summary Update catalog service
// @Tags Services
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Service ID"
// @Param request body UpdateServiceRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.ServiceDTO}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /services/{id} [patch]
func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "service")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateServiceRequest
	if err := common.BindPatchJSON(c, &req, servicePatchFields...); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), catalog.UpdateServiceCommand{
		ServiceID:   id,
		ServiceType: req.ServiceType,
		BasePrice:   req.BasePrice,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service updated successfully", result)
}
