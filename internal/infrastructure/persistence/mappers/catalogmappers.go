package mappers

import (
	"time"

	"github.com/garagehq/repairshop/internal/domain/catalog"
	"github.com/garagehq/repairshop/internal/domain/customer"
	"github.com/garagehq/repairshop/internal/domain/employee"
	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/models"
	"github.com/garagehq/repairshop/internal/shared/authorization"
)

func millis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

func CustomerToModel(c *customer.Customer) *models.CustomerModel {
	return &models.CustomerModel{
		ID:           c.ID(),
		Name:         c.Name(),
		Email:        c.Email(),
		Phone:        c.Phone(),
		PasswordHash: c.PasswordHash(),
		CreatedAt:    c.CreatedAt().UnixMilli(),
		UpdatedAt:    c.UpdatedAt().UnixMilli(),
	}
}

func CustomerToDomain(m *models.CustomerModel) (*customer.Customer, error) {
	return customer.ReconstructCustomer(m.ID, m.Name, m.Email, m.Phone, m.PasswordHash, millis(m.CreatedAt), millis(m.UpdatedAt))
}

func EmployeeToModel(e *employee.Employee) *models.EmployeeModel {
	return &models.EmployeeModel{
		ID:           e.ID(),
		Name:         e.Name(),
		Email:        e.Email(),
		Phone:        e.Phone(),
		PasswordHash: e.PasswordHash(),
		Salary:       e.Salary(),
		Role:         e.Role().String(),
		CreatedAt:    e.CreatedAt().UnixMilli(),
		UpdatedAt:    e.UpdatedAt().UnixMilli(),
	}
}

func EmployeeToDomain(m *models.EmployeeModel) (*employee.Employee, error) {
	return employee.ReconstructEmployee(
		m.ID, m.Name, m.Email, m.Phone, m.PasswordHash,
		m.Salary,
		authorization.ParseEmployeeRole(m.Role),
		millis(m.CreatedAt), millis(m.UpdatedAt),
	)
}

func ServiceToModel(s *catalog.Service) *models.ServiceModel {
	return &models.ServiceModel{
		ID:          s.ID(),
		ServiceType: s.ServiceType(),
		BasePrice:   s.BasePrice(),
		Description: s.Description(),
		CreatedAt:   s.CreatedAt().UnixMilli(),
		UpdatedAt:   s.UpdatedAt().UnixMilli(),
	}
}

func ServiceToDomain(m *models.ServiceModel) (*catalog.Service, error) {
	return catalog.ReconstructService(m.ID, m.ServiceType, m.BasePrice, m.Description, millis(m.CreatedAt), millis(m.UpdatedAt))
}

func InventoryToModel(i *inventory.Inventory) *models.InventoryModel {
	return &models.InventoryModel{
		ID:              i.ID(),
		Name:            i.Name(),
		InventoryNumber: i.Number(),
		Price:           i.Price(),
		Description:     i.Description(),
		QuantityInStock: i.QuantityInStock(),
		IsDeleted:       i.IsDeleted(),
		CreatedAt:       i.CreatedAt().UnixMilli(),
		UpdatedAt:       i.UpdatedAt().UnixMilli(),
	}
}

func InventoryToDomain(m *models.InventoryModel) (*inventory.Inventory, error) {
	return inventory.ReconstructInventory(
		m.ID, m.Name, m.InventoryNumber, m.Price, m.Description, m.QuantityInStock,
		m.IsDeleted, millis(m.CreatedAt), millis(m.UpdatedAt),
	)
}

func PartToModel(p *inventory.SerializedPart) *models.SerializedPartModel {
	return &models.SerializedPartModel{
		ID:           p.ID(),
		SerialNumber: p.SerialNumber(),
		Status:       p.Status().String(),
		InventoryID:  p.InventoryID(),
		IsDeleted:    p.IsDeleted(),
		CreatedAt:    p.CreatedAt().UnixMilli(),
		UpdatedAt:    p.UpdatedAt().UnixMilli(),
	}
}

func PartRowToDomain(row *models.SerializedPartRow) (*inventory.SerializedPart, error) {
	return inventory.ReconstructSerializedPart(inventory.PartSnapshot{
		ID:             row.ID,
		SerialNumber:   row.SerialNumber,
		Status:         inventory.PartStatus(row.Status),
		InventoryID:    row.InventoryID,
		IsDeleted:      row.IsDeleted,
		CreatedAt:      millis(row.CreatedAt),
		UpdatedAt:      millis(row.UpdatedAt),
		InventoryName:  row.InventoryName,
		InventoryPrice: row.InventoryPrice,
		LinkedTicketID: row.TicketID,
	})
}
