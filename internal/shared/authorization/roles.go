package authorization

// EmployeeRole is the role carried in an employee's bearer token.
type EmployeeRole string

const (
	RoleMechanic EmployeeRole = "mechanic"
	RoleManager  EmployeeRole = "manager"
	RoleAdmin    EmployeeRole = "admin"
)

// Resources and actions checked by the permission middleware.
const (
	ResourceTickets   = "tickets"
	ResourceCustomers = "customers"
	ResourceEmployees = "employees"
	ResourceServices  = "services"
	ResourceInventory = "inventory"

	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"
)

func (r EmployeeRole) String() string {
	return string(r)
}

func (r EmployeeRole) IsValid() bool {
	switch r {
	case RoleMechanic, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// ParseEmployeeRole falls back to mechanic for unknown values.
func ParseEmployeeRole(s string) EmployeeRole {
	role := EmployeeRole(s)
	if role.IsValid() {
		return role
	}
	return RoleMechanic
}
