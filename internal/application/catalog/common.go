// Package catalog holds the field-level operations on customers, employees,
// services, inventory and serialized parts.
package catalog

import (
	"context"
	"fmt"

	"github.com/garagehq/repairshop/internal/shared/errors"
)

// TransactionManager runs fn in one database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PasswordHasher hashes new credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// persistError turns a unique index violation that slipped past the
// existence check into a conflict on field.
func persistError(err error, entity, field string) error {
	if errors.IsDuplicateError(err) {
		return errors.NewConflictError(fmt.Sprintf("%s already exists", entity), fmt.Sprintf("duplicate %s", field))
	}
	return fmt.Errorf("failed to create %s: %w", entity, err)
}

// updateError is persistError for a write to an existing row.
func updateError(err error, entity, field string) error {
	if errors.IsDuplicateError(err) {
		return errors.NewConflictError(fmt.Sprintf("%s already exists", entity), fmt.Sprintf("duplicate %s", field))
	}
	return fmt.Errorf("failed to update %s: %w", entity, err)
}
