// Package catalog exposes the field-level catalog operations over HTTP.
package catalog

import (
	"context"

	"github.com/garagehq/repairshop/internal/application/catalog"
	"github.com/garagehq/repairshop/internal/application/catalog/dto"
)

type customerService interface {
	Create(ctx context.Context, cmd catalog.CreateCustomerCommand) (*dto.CustomerDTO, error)
	Get(ctx context.Context, id uint) (*dto.CustomerDTO, error)
	Update(ctx context.Context, cmd catalog.UpdateCustomerCommand) (*dto.CustomerDTO, error)
	Delete(ctx context.Context, id uint) error
}

type employeeService interface {
	Create(ctx context.Context, cmd catalog.CreateEmployeeCommand) (*dto.EmployeeDTO, error)
	Get(ctx context.Context, id uint) (*dto.EmployeeDTO, error)
	Update(ctx context.Context, cmd catalog.UpdateEmployeeCommand) (*dto.EmployeeDTO, error)
	List(ctx context.Context, page, limit int) (*dto.Page[*dto.EmployeeDTO], error)
}

type serviceCatalog interface {
	Create(ctx context.Context, cmd catalog.CreateServiceCommand) (*dto.ServiceDTO, error)
	Get(ctx context.Context, id uint) (*dto.ServiceDTO, error)
	Update(ctx context.Context, cmd catalog.UpdateServiceCommand) (*dto.ServiceDTO, error)
	List(ctx context.Context, page, limit int) (*dto.Page[*dto.ServiceDTO], error)
}

type inventoryService interface {
	Create(ctx context.Context, cmd catalog.CreateInventoryCommand) (*dto.InventoryDTO, error)
	Get(ctx context.Context, id uint) (*dto.InventoryDTO, error)
	List(ctx context.Context, deleted bool, page, limit int) (*dto.Page[*dto.InventoryDTO], error)
	Delete(ctx context.Context, id uint) error
}

type partService interface {
	Create(ctx context.Context, cmd catalog.CreatePartCommand) (*dto.PartDTO, error)
	Get(ctx context.Context, id uint) (*dto.PartDTO, error)
	List(ctx context.Context, q catalog.ListPartsQuery) (*dto.Page[*dto.PartDTO], error)
	UpdateStatus(ctx context.Context, id uint, status string) (*dto.PartDTO, error)
}
