package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination for list endpoints
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys set by the HTTP middleware
	ContextKeyEmployeeID   = "employee_id"
	ContextKeyEmployeeRole = "employee_role"
	ContextKeyCustomerID   = "customer_id"
	ContextKeyRequestID    = "request_id"

	// Table names
	TableCustomers       = "customers"
	TableEmployees       = "employees"
	TableServices        = "services"
	TableInventories     = "inventories"
	TableSerializedParts = "serialized_parts"
	TableServiceTickets  = "service_tickets"
	TableTicketMechanics = "ticket_mechanics"
	TableTicketServices  = "ticket_services"
	TableTicketParts     = "ticket_parts"
	TableTicketHistory   = "ticket_history"

	ErrMsgInternalServerError = "Internal server error occurred"
)
