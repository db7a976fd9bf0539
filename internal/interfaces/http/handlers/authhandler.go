package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garagehq/repairshop/internal/application/auth"
	"github.com/garagehq/repairshop/internal/interfaces/http/handlers/common"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
	"github.com/garagehq/repairshop/internal/shared/utils"
)

type LoginExecutor interface {
	Execute(ctx context.Context, cmd auth.LoginCommand) (*auth.LoginResult, error)
}

type CustomerLoginExecutor interface {
	Execute(ctx context.Context, cmd auth.LoginCommand) (*auth.CustomerLoginResult, error)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	loginUC         LoginExecutor
	customerLoginUC CustomerLoginExecutor
	logger          logger.Interface
}

func NewAuthHandler(loginUC LoginExecutor, customerLoginUC CustomerLoginExecutor, logger logger.Interface) *AuthHandler {
	return &AuthHandler{loginUC: loginUC, customerLoginUC: customerLoginUC, logger: logger}
}

// Login handles POST /employees/login
// @Summary Employee login
// @Description Exchanges employee credentials for a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=auth.LoginResult}
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /employees/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), auth.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.loginFailed(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

// CustomerLogin handles POST /customers/login
// @Summary Customer login
// @Description Exchanges customer credentials for a bearer token scoped to their own tickets.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=auth.CustomerLoginResult}
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /customers/login [post]
func (h *AuthHandler) CustomerLogin(c *gin.Context) {
	var req LoginRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.customerLoginUC.Execute(c.Request.Context(), auth.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.loginFailed(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

func (h *AuthHandler) loginFailed(c *gin.Context, err error) {
	var authErr *errors.AuthError
	if stderrors.As(err, &authErr) && authErr.ShouldLog {
		h.logger.Warnw("login failed", "error", err, "client_ip", c.ClientIP())
	}
	utils.ErrorResponseWithError(c, err)
}
