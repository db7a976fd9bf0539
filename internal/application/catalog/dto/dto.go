// Package dto holds the API projections of the catalog records.
package dto

import (
	"time"

	"github.com/garagehq/repairshop/internal/domain/catalog"
	"github.com/garagehq/repairshop/internal/domain/customer"
	"github.com/garagehq/repairshop/internal/domain/employee"
	"github.com/garagehq/repairshop/internal/domain/inventory"
)

type CustomerDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// EmployeeDTO leaves out the password hash and salary.
type EmployeeDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ServiceDTO struct {
	ID          uint   `json:"id"`
	ServiceType string `json:"service_type"`
	BasePrice   string `json:"base_price"`
	Description string `json:"description"`
}

type InventoryDTO struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	InventoryNumber string    `json:"inventory_number"`
	Price           string    `json:"price"`
	Description     string    `json:"description"`
	QuantityInStock int       `json:"quantity_in_stock"`
	IsDeleted       bool      `json:"is_deleted"`
	CreatedAt       time.Time `json:"created_at"`
}

type PartDTO struct {
	ID             uint      `json:"id"`
	SerialNumber   string    `json:"serial_number"`
	Status         string    `json:"status"`
	InventoryID    uint      `json:"inventory_id"`
	InventoryName  string    `json:"inventory_name,omitempty"`
	LinkedTicketID *uint     `json:"ticket_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Page is one page of a catalog listing.
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Limit int
}

func ToCustomerDTO(c *customer.Customer) *CustomerDTO {
	return &CustomerDTO{
		ID:        c.ID(),
		Name:      c.Name(),
		Email:     c.Email(),
		Phone:     c.Phone(),
		CreatedAt: c.CreatedAt(),
	}
}

func ToEmployeeDTO(e *employee.Employee) *EmployeeDTO {
	return &EmployeeDTO{
		ID:        e.ID(),
		Name:      e.Name(),
		Email:     e.Email(),
		Phone:     e.Phone(),
		Role:      e.Role().String(),
		CreatedAt: e.CreatedAt(),
	}
}

func ToServiceDTO(s *catalog.Service) *ServiceDTO {
	return &ServiceDTO{
		ID:          s.ID(),
		ServiceType: s.ServiceType(),
		BasePrice:   s.BasePrice().StringFixed(2),
		Description: s.Description(),
	}
}

func ToInventoryDTO(i *inventory.Inventory) *InventoryDTO {
	return &InventoryDTO{
		ID:              i.ID(),
		Name:            i.Name(),
		InventoryNumber: i.Number(),
		Price:           i.Price().StringFixed(2),
		Description:     i.Description(),
		QuantityInStock: i.QuantityInStock(),
		IsDeleted:       i.IsDeleted(),
		CreatedAt:       i.CreatedAt(),
	}
}

func ToPartDTO(p *inventory.SerializedPart) *PartDTO {
	return &PartDTO{
		ID:             p.ID(),
		SerialNumber:   p.SerialNumber(),
		Status:         p.Status().String(),
		InventoryID:    p.InventoryID(),
		InventoryName:  p.InventoryName(),
		LinkedTicketID: p.LinkedTicketID(),
		CreatedAt:      p.CreatedAt(),
	}
}
