// Package services holds the collaborators the ticket use cases share:
// resolving requested ids into ticket links and applying the stock side
// effects of closing a ticket.
package services

import (
	"context"
	"fmt"

	"github.com/garagehq/repairshop/internal/domain/catalog"
	"github.com/garagehq/repairshop/internal/domain/employee"
	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/utils/setutil"
)

// AssociationResolver turns requested ids into ticket links. Resolution is
// strict: any id that cannot be used fails the whole request.
type AssociationResolver struct {
	employees employee.Repository
	services  catalog.Repository
	parts     inventory.PartRepository
}

func NewAssociationResolver(
	employees employee.Repository,
	services catalog.Repository,
	parts inventory.PartRepository,
) *AssociationResolver {
	return &AssociationResolver{
		employees: employees,
		services:  services,
		parts:     parts,
	}
}

// Mechanics fails with NotFound listing every id that has no employee.
func (r *AssociationResolver) Mechanics(ctx context.Context, ids []uint) ([]ticket.MechanicRef, error) {
	ids = setutil.Dedupe(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := r.employees.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	refs := make([]ticket.MechanicRef, 0, len(found))
	foundIDs := make([]uint, 0, len(found))
	for _, e := range found {
		refs = append(refs, ticket.MechanicRef{ID: e.ID(), Name: e.Name(), Role: e.Role().String()})
		foundIDs = append(foundIDs, e.ID())
	}
	if missing := setutil.NewUintSet(ids...).Missing(foundIDs); len(missing) > 0 {
		return nil, errors.NewNotFoundError("employees not found", fmt.Sprintf("missing employee ids: %v", missing))
	}
	return refs, nil
}

// Services fails with NotFound listing every id that has no service.
func (r *AssociationResolver) Services(ctx context.Context, ids []uint) ([]ticket.ServiceLine, error) {
	ids = setutil.Dedupe(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := r.services.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}

	lines := make([]ticket.ServiceLine, 0, len(found))
	foundIDs := make([]uint, 0, len(found))
	for _, s := range found {
		lines = append(lines, ticket.ServiceLine{ServiceID: s.ID(), ServiceType: s.ServiceType(), BasePrice: s.BasePrice()})
		foundIDs = append(foundIDs, s.ID())
	}
	if missing := setutil.NewUintSet(ids...).Missing(foundIDs); len(missing) > 0 {
		return nil, errors.NewNotFoundError("services not found", fmt.Sprintf("missing service ids: %v", missing))
	}
	return lines, nil
}

// AvailableParts locks the requested parts and requires every one of them
// to be attachable. Ids in skip (already on the ticket) are ignored.
func (r *AssociationResolver) AvailableParts(ctx context.Context, ids []uint, skip ...uint) ([]ticket.PartLine, error) {
	skipSet := setutil.NewUintSet(skip...)
	requested := make([]uint, 0, len(ids))
	for _, id := range setutil.Dedupe(ids) {
		if !skipSet.Has(id) {
			requested = append(requested, id)
		}
	}
	if len(requested) == 0 {
		return nil, nil
	}

	found, err := r.parts.FindByIDsForUpdate(ctx, requested)
	if err != nil {
		return nil, fmt.Errorf("failed to load serialized parts: %w", err)
	}

	lines := make([]ticket.PartLine, 0, len(found))
	attachable := make([]uint, 0, len(found))
	for _, p := range found {
		if !p.IsAttachable() {
			continue
		}
		lines = append(lines, ticket.PartLineFrom(p))
		attachable = append(attachable, p.ID())
	}
	if bad := setutil.NewUintSet(requested...).Missing(attachable); len(bad) > 0 {
		return nil, errors.NewStateError("parts not available", fmt.Sprintf("unavailable part ids: %v", bad))
	}
	return lines, nil
}

// SinglePart locks one part for the add-part endpoint, which reports a
// missing part as NotFound and an unusable one as a bad request.
func (r *AssociationResolver) SinglePart(ctx context.Context, id uint) (ticket.PartLine, error) {
	found, err := r.parts.FindByIDsForUpdate(ctx, []uint{id})
	if err != nil {
		return ticket.PartLine{}, fmt.Errorf("failed to load serialized part: %w", err)
	}
	if len(found) == 0 {
		return ticket.PartLine{}, errors.NewNotFoundError("serialized part not found")
	}
	if !found[0].IsAttachable() {
		return ticket.PartLine{}, errors.NewBadRequestError("part is not available",
			fmt.Sprintf("part %d has status %s", id, found[0].Status()))
	}
	return ticket.PartLineFrom(found[0]), nil
}
