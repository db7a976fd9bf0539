package auth

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/garagehq/repairshop/internal/domain/customer"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

type CustomerTokenIssuer interface {
	IssueCustomer(customerID uint) (token string, expiresIn int64, err error)
}

type CustomerLoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	CustomerID  uint   `json:"customer_id"`
}

// CustomerLoginUseCase lets a customer sign in to follow their own tickets.
type CustomerLoginUseCase struct {
	customers customer.Repository
	verifier  PasswordVerifier
	tokens    CustomerTokenIssuer
	logger    logger.Interface
}

func NewCustomerLoginUseCase(customers customer.Repository, verifier PasswordVerifier, tokens CustomerTokenIssuer, logger logger.Interface) *CustomerLoginUseCase {
	return &CustomerLoginUseCase{
		customers: customers,
		verifier:  verifier,
		tokens:    tokens,
		logger:    logger,
	}
}

func (uc *CustomerLoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*CustomerLoginResult, error) {
	log := uc.logger.WithContext(ctx)
	email := customer.NormalizeEmail(cmd.Email)
	if email == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("email and password are required")
	}

	c, err := uc.customers.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, customer.ErrCustomerNotFound) {
			log.Warnw("login attempt for unknown customer", "email", email)
			_ = uc.verifier.Verify(cmd.Password, "")
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	// Customers created without a password have an empty hash, which never
	// verifies.
	if err := uc.verifier.Verify(cmd.Password, c.PasswordHash()); err != nil {
		log.Warnw("customer login with wrong password", "customer_id", c.ID())
		return nil, errors.NewInvalidCredentialsError()
	}

	token, expiresIn, err := uc.tokens.IssueCustomer(c.ID())
	if err != nil {
		log.Errorw("failed to issue customer token", "customer_id", c.ID(), "error", err)
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	log.Infow("customer logged in", "customer_id", c.ID())
	return &CustomerLoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		CustomerID:  c.ID(),
	}, nil
}
