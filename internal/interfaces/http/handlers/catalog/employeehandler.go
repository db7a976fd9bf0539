package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/application/catalog"
	"github.com/garagehq/repairshop/internal/interfaces/http/handlers/common"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Password string `json:"password" binding:"required,max=72"`
	Salary   string `json:"salary" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=mechanic manager admin"`
}

// UpdateEmployeeRequest lists the only fields PATCH /employees/:id accepts.
// Role and password are changed through other channels.
type UpdateEmployeeRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=100"`
	Email  *string `json:"email" binding:"omitempty,email,max=255"`
	Phone  *string `json:"phone" binding:"omitempty,max=20"`
	Salary *string `json:"salary"`
}

var employeePatchFields = []string{"name", "email", "phone", "salary"}

type EmployeeHandler struct {
	service employeeService
	logger  logger.Interface
}

func NewEmployeeHandler(service employeeService, logger logger.Interface) *EmployeeHandler {
	return &EmployeeHandler{service: service, logger: logger}
}

// Create handles POST /employees
// @Summary Hire employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateEmployeeRequest true "Employee"
// @Success 201 {object} utils.APIResponse{data=dto.EmployeeDTO}
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), catalog.CreateEmployeeCommand{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Salary:   req.Salary,
		Role:     req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Employee created successfully")
}

// List handles GET /employees
func (h *EmployeeHandler) List(c *gin.Context) {
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

// Get handles GET /employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "employee")
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

// Update handles PATCH /employees/:id
// @Summary Update employee profile
// @Tags Employees
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Employee ID"
// @Param request body UpdateEmployeeRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=dto.EmployeeDTO}
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /employees/{id} [patch]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "employee")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateEmployeeRequest
	if err := common.BindPatchJSON(c, &req, employeePatchFields...); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), catalog.UpdateEmployeeCommand{
		EmployeeID: id,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Salary:     req.Salary,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Employee updated successfully", result)
}
