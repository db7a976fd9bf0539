package catalog

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/garagehq/repairshop/internal/application/catalog/dto"
	"github.com/garagehq/repairshop/internal/domain/customer"
	"github.com/garagehq/repairshop/internal/domain/employee"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

// TicketCounter reports how many tickets reference a customer.
type TicketCounter interface {
	CountByCustomer(ctx context.Context, customerID uint) (int64, error)
}

type CreateCustomerCommand struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// UpdateCustomerCommand carries the patchable customer fields. Nil fields
// are left unchanged.
type UpdateCustomerCommand struct {
	CustomerID uint
	Name       *string
	Email      *string
	Phone      *string
}

type CustomerService struct {
	repo    customer.Repository
	tickets TicketCounter
	txMgr   TransactionManager
	hasher  PasswordHasher
	logger  logger.Interface
}

func NewCustomerService(
	repo customer.Repository,
	tickets TicketCounter,
	txMgr TransactionManager,
	hasher PasswordHasher,
	logger logger.Interface,
) *CustomerService {
	return &CustomerService{
		repo:    repo,
		tickets: tickets,
		txMgr:   txMgr,
		hasher:  hasher,
		logger:  logger,
	}
}

func (s *CustomerService) Create(ctx context.Context, cmd CreateCustomerCommand) (*dto.CustomerDTO, error) {
	s.logger.Infow("creating customer", "email", cmd.Email)

	if err := employee.ValidatePasswordStrength(cmd.Password); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	exists, err := s.repo.ExistsByEmail(ctx, customer.NormalizeEmail(cmd.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to check customer email: %w", err)
	}
	if exists {
		return nil, errors.NewConflictError("customer already exists", "duplicate email")
	}

	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}

	c, err := customer.NewCustomer(cmd.Name, cmd.Email, cmd.Phone, hash)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Errorw("failed to create customer", "error", err)
		return nil, persistError(err, "customer", "email")
	}

	s.logger.Infow("customer created successfully", "customer_id", c.ID())
	return dto.ToCustomerDTO(c), nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*dto.CustomerDTO, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, customer.ErrCustomerNotFound) {
			return nil, errors.NewNotFoundError("customer not found")
		}
		return nil, err
	}
	return dto.ToCustomerDTO(c), nil
}

// Update applies the patch and keeps the email unique across customers.
func (s *CustomerService) Update(ctx context.Context, cmd UpdateCustomerCommand) (*dto.CustomerDTO, error) {
	log := s.logger.WithContext(ctx)
	log.Infow("updating customer", "customer_id", cmd.CustomerID)

	var updated *customer.Customer
	err := s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		c, err := s.repo.GetByIDForUpdate(txCtx, cmd.CustomerID)
		if err != nil {
			if stderrors.Is(err, customer.ErrCustomerNotFound) {
				return errors.NewNotFoundError("customer not found")
			}
			return err
		}

		if err := c.Apply(customer.Patch{Name: cmd.Name, Email: cmd.Email, Phone: cmd.Phone}); err != nil {
			return errors.NewValidationError(err.Error())
		}

		owner, err := s.repo.GetByEmail(txCtx, c.Email())
		switch {
		case err == nil && owner.ID() != c.ID():
			return errors.NewConflictError("customer already exists", "duplicate email")
		case err != nil && !stderrors.Is(err, customer.ErrCustomerNotFound):
			return fmt.Errorf("failed to check customer email: %w", err)
		}

		if err := s.repo.Update(txCtx, c); err != nil {
			return updateError(err, "customer", "email")
		}
		updated = c
		return nil
	})
	if err != nil {
		log.Warnw("customer update failed", "customer_id", cmd.CustomerID, "error", err)
		return nil, err
	}

	log.Infow("customer updated", "customer_id", updated.ID())
	return dto.ToCustomerDTO(updated), nil
}

// Delete removes a customer that no ticket references, soft-deleted tickets
// included. The customer row stays locked from the count to the delete, and
// ticket creation takes the same lock, so no ticket can slip in between.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	err := s.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetByIDForUpdate(txCtx, id); err != nil {
			if stderrors.Is(err, customer.ErrCustomerNotFound) {
				return errors.NewNotFoundError("customer not found")
			}
			return err
		}

		count, err := s.tickets.CountByCustomer(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to count customer tickets: %w", err)
		}
		if count > 0 {
			return errors.NewConflictError("customer has service tickets",
				fmt.Sprintf("customer %d is referenced by %d ticket(s)", id, count))
		}

		if err := s.repo.Delete(txCtx, id); err != nil {
			if stderrors.Is(err, customer.ErrCustomerNotFound) {
				return errors.NewNotFoundError("customer not found")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("customer deleted", "customer_id", id)
	return nil
}
