package permission

import (
	"fmt"

	"github.com/garagehq/repairshop/internal/shared/authorization"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

// defaultPolicies grants each role only what it adds over the role it inherits from.
var defaultPolicies = [][]string{
	{authorization.RoleMechanic.String(), authorization.ResourceTickets, authorization.ActionRead},
	{authorization.RoleMechanic.String(), authorization.ResourceTickets, authorization.ActionWrite},
	{authorization.RoleMechanic.String(), authorization.ResourceCustomers, authorization.ActionRead},
	{authorization.RoleMechanic.String(), authorization.ResourceEmployees, authorization.ActionRead},
	{authorization.RoleMechanic.String(), authorization.ResourceServices, authorization.ActionRead},
	{authorization.RoleMechanic.String(), authorization.ResourceInventory, authorization.ActionRead},

	{authorization.RoleManager.String(), authorization.ResourceTickets, authorization.ActionDelete},
	{authorization.RoleManager.String(), authorization.ResourceCustomers, authorization.ActionWrite},
	{authorization.RoleManager.String(), authorization.ResourceCustomers, authorization.ActionDelete},
	{authorization.RoleManager.String(), authorization.ResourceServices, authorization.ActionWrite},
	{authorization.RoleManager.String(), authorization.ResourceInventory, authorization.ActionWrite},
	{authorization.RoleManager.String(), authorization.ResourceInventory, authorization.ActionDelete},

	{authorization.RoleAdmin.String(), authorization.ResourceEmployees, authorization.ActionWrite},
}

var defaultInheritance = [][2]string{
	{authorization.RoleManager.String(), authorization.RoleMechanic.String()},
	{authorization.RoleAdmin.String(), authorization.RoleManager.String()},
}

// InitDefaultPolicies installs the built-in role grants. Existing rules are
// left as they are, so it is safe to run on every start.
func InitDefaultPolicies(e *Enforcer, log logger.Interface) error {
	for _, p := range defaultPolicies {
		if err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
	}
	for _, g := range defaultInheritance {
		if err := e.Inherit(g[0], g[1]); err != nil {
			return err
		}
	}

	log.Infow("default permissions initialized", "policies", len(defaultPolicies))
	return nil
}
