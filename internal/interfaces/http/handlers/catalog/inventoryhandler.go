package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/application/catalog"
	"github.com/garagehq/repairshop/internal/interfaces/http/handlers/common"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

type CreateInventoryRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	InventoryNumber string `json:"inventory_number" binding:"required,max=50"`
	Price           string `json:"price" binding:"required"`
	Description     string `json:"description" binding:"omitempty,max=1000"`
	QuantityInStock *int   `json:"quantity_in_stock" binding:"omitempty,min=0"`
}

type CreatePartRequest struct {
	SerialNumber string `json:"serial_number" binding:"required,max=100"`
	InventoryID  uint   `json:"inventory_id" binding:"required"`
}

type UpdatePartStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available used defective"`
}

// InventoryHandler serves inventory records and the serialized parts
// stocked under them.
type InventoryHandler struct {
	inventory inventoryService
	parts     partService
	logger    logger.Interface
}

func NewInventoryHandler(inventory inventoryService, parts partService, logger logger.Interface) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, parts: parts, logger: logger}
}

// Create handles POST /inventory
// @Summary Add inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateInventoryRequest true "Inventory"
// @Success 201 {object} utils.APIResponse{data=dto.InventoryDTO}
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateInventoryRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := catalog.CreateInventoryCommand{
		Name:            req.Name,
		InventoryNumber: req.InventoryNumber,
		Price:           req.Price,
		Description:     req.Description,
	}
	if req.QuantityInStock != nil {
		cmd.QuantityInStock = *req.QuantityInStock
	}

	result, err := h.inventory.Create(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Inventory created successfully")
}

// List handles GET /inventory. ?deleted=true lists soft-deleted items only.
func (h *InventoryHandler) List(c *gin.Context) {
	p, err := utils.ParsePagination(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	deleted := false
	if raw := c.Query("deleted"); raw != "" {
		deleted, err = strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid query parameter", "deleted must be true or false"))
			return
		}
	}

	page, err := h.inventory.List(c.Request.Context(), deleted, p.Page, p.Limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, page.Items, page.Total, page.Page, page.Limit)
}

// Get handles GET /inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "inventory")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.inventory.Get(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Delete handles DELETE /inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "inventory")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.inventory.Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Inventory deleted successfully", nil)
}

// CreatePart handles POST /inventory/serialized-parts
// @Summary Register serialized part
// @Tags Inventory
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreatePartRequest true "Part"
// @Success 201 {object} utils.APIResponse{data=dto.PartDTO}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /inventory/serialized-parts [post]
func (h *InventoryHandler) CreatePart(c *gin.Context) {
	var req CreatePartRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.parts.Create(c.Request.Context(), catalog.CreatePartCommand{
		SerialNumber: req.SerialNumber,
		InventoryID:  req.InventoryID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Serialized part created successfully")
}

// ListParts handles GET /inventory/serialized-parts
func (h *InventoryHandler) ListParts(c *gin.Context) {
	p, err := utils.ParsePagination(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	q := catalog.ListPartsQuery{Status: c.Query("status"), Page: p.Page, Limit: p.Limit}
	if raw := c.Query("inventory_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid query parameter", "inventory_id must be a positive integer"))
			return
		}
		inventoryID := uint(id)
		q.InventoryID = &inventoryID
	}

	page, err := h.parts.List(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, page.Items, page.Total, page.Page, page.Limit)
}

// GetPart handles GET /inventory/serialized-parts/:id
func (h *InventoryHandler) GetPart(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "part")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.parts.Get(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdatePartStatus handles PATCH /inventory/serialized-parts/:id. Only the
// status can change.
func (h *InventoryHandler) UpdatePartStatus(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "part")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePartStatusRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.parts.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("serialized part status changed", "part_id", id, "status", req.Status)
	utils.SuccessResponse(c, http.StatusOK, "Serialized part updated successfully", result)
}
