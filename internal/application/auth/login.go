// Package auth exchanges employee and customer credentials for bearer tokens.
package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/garagehq/repairshop/internal/domain/employee"
	"github.com/garagehq/repairshop/internal/shared/authorization"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

type PasswordVerifier interface {
	Verify(password, hash string) error
}

type TokenIssuer interface {
	Issue(employeeID uint, role authorization.EmployeeRole) (token string, expiresIn int64, err error)
}

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	EmployeeID  uint   `json:"employee_id"`
	Role        string `json:"role"`
}

type LoginUseCase struct {
	employees employee.Repository
	verifier  PasswordVerifier
	tokens    TokenIssuer
	logger    logger.Interface
}

func NewLoginUseCase(employees employee.Repository, verifier PasswordVerifier, tokens TokenIssuer, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		employees: employees,
		verifier:  verifier,
		tokens:    tokens,
		logger:    logger,
	}
}

// Execute answers every credential failure with the same error so the
// response does not reveal which emails exist.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	log := uc.logger.WithContext(ctx)
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	e, err := uc.employees.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, employee.ErrEmployeeNotFound) {
			log.Warnw("login attempt for unknown employee", "email", email)
			// Burn the same hashing time as a real account.
			_ = uc.verifier.Verify(cmd.Password, "")
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}

	if err := uc.verifier.Verify(cmd.Password, e.PasswordHash()); err != nil {
		log.Warnw("login attempt with wrong password", "employee_id", e.ID())
		return nil, errors.NewInvalidCredentialsError()
	}

	token, expiresIn, err := uc.tokens.Issue(e.ID(), e.Role())
	if err != nil {
		log.Errorw("failed to issue access token", "employee_id", e.ID(), "error", err)
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	log.Infow("employee logged in", "employee_id", e.ID(), "role", e.Role())
	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		EmployeeID:  e.ID(),
		Role:        e.Role().String(),
	}, nil
}
