// Package seed loads catalog fixtures from YAML through the catalog services,
// so fixtures pass the same validation as API requests.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/garagehq/repairshop/internal/application/catalog"
	"github.com/garagehq/repairshop/internal/application/catalog/dto"
	"github.com/garagehq/repairshop/internal/shared/errors"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

// Fixtures is the seed file layout.
type Fixtures struct {
	Customers []CustomerFixture  `yaml:"customers"`
	Employees []EmployeeFixture  `yaml:"employees"`
	Services  []ServiceFixture   `yaml:"services"`
	Inventory []InventoryFixture `yaml:"inventory"`
}

type CustomerFixture struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Password string `yaml:"password"`
}

type EmployeeFixture struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Password string `yaml:"password"`
	Salary   string `yaml:"salary"`
	Role     string `yaml:"role"`
}

type ServiceFixture struct {
	ServiceType string `yaml:"service_type"`
	BasePrice   string `yaml:"base_price"`
	Description string `yaml:"description"`
}

type InventoryFixture struct {
	Name            string   `yaml:"name"`
	InventoryNumber string   `yaml:"inventory_number"`
	Price           string   `yaml:"price"`
	Description     string   `yaml:"description"`
	QuantityInStock int      `yaml:"quantity_in_stock"`
	SerialNumbers   []string `yaml:"serial_numbers"`
}

type customerCreator interface {
	Create(ctx context.Context, cmd catalog.CreateCustomerCommand) (*dto.CustomerDTO, error)
}

type employeeCreator interface {
	Create(ctx context.Context, cmd catalog.CreateEmployeeCommand) (*dto.EmployeeDTO, error)
}

type serviceCreator interface {
	Create(ctx context.Context, cmd catalog.CreateServiceCommand) (*dto.ServiceDTO, error)
}

type inventoryCreator interface {
	Create(ctx context.Context, cmd catalog.CreateInventoryCommand) (*dto.InventoryDTO, error)
}

type partCreator interface {
	Create(ctx context.Context, cmd catalog.CreatePartCommand) (*dto.PartDTO, error)
}

// Summary counts what a run created and what already existed.
type Summary struct {
	Created int
	Skipped int
}

type Seeder struct {
	customers customerCreator
	employees employeeCreator
	services  serviceCreator
	inventory inventoryCreator
	parts     partCreator
	logger    logger.Interface
}

func NewSeeder(
	customers customerCreator,
	employees employeeCreator,
	services serviceCreator,
	inventory inventoryCreator,
	parts partCreator,
	logger logger.Interface,
) *Seeder {
	return &Seeder{
		customers: customers,
		employees: employees,
		services:  services,
		inventory: inventory,
		parts:     parts,
		logger:    logger,
	}
}

func LoadFile(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Run creates every fixture. Rows that already exist (Conflict) are
// skipped, so running the same file twice is harmless.
func (s *Seeder) Run(ctx context.Context, f *Fixtures) (Summary, error) {
	var sum Summary

	for _, c := range f.Customers {
		_, err := s.customers.Create(ctx, catalog.CreateCustomerCommand{
			Name: c.Name, Email: c.Email, Phone: c.Phone, Password: c.Password,
		})
		if err := s.tally(&sum, err, "customer", c.Email); err != nil {
			return sum, err
		}
	}

	for _, e := range f.Employees {
		_, err := s.employees.Create(ctx, catalog.CreateEmployeeCommand{
			Name: e.Name, Email: e.Email, Phone: e.Phone, Password: e.Password, Salary: e.Salary, Role: e.Role,
		})
		if err := s.tally(&sum, err, "employee", e.Email); err != nil {
			return sum, err
		}
	}

	for _, svc := range f.Services {
		_, err := s.services.Create(ctx, catalog.CreateServiceCommand{
			ServiceType: svc.ServiceType, BasePrice: svc.BasePrice, Description: svc.Description,
		})
		if err := s.tally(&sum, err, "service", svc.ServiceType); err != nil {
			return sum, err
		}
	}

	for _, inv := range f.Inventory {
		created, err := s.inventory.Create(ctx, catalog.CreateInventoryCommand{
			Name:            inv.Name,
			InventoryNumber: inv.InventoryNumber,
			Price:           inv.Price,
			Description:     inv.Description,
			QuantityInStock: inv.QuantityInStock,
		})
		if err := s.tally(&sum, err, "inventory", inv.InventoryNumber); err != nil {
			return sum, err
		}
		if created == nil {
			// Existing inventory keeps the parts it already has.
			continue
		}
		for _, serial := range inv.SerialNumbers {
			_, err := s.parts.Create(ctx, catalog.CreatePartCommand{SerialNumber: serial, InventoryID: created.ID})
			if err := s.tally(&sum, err, "serialized_part", serial); err != nil {
				return sum, err
			}
		}
	}

	s.logger.Infow("seed completed", "created", sum.Created, "skipped", sum.Skipped)
	return sum, nil
}

func (s *Seeder) tally(sum *Summary, err error, kind, key string) error {
	switch {
	case err == nil:
		sum.Created++
		return nil
	case errors.IsConflictError(err):
		sum.Skipped++
		s.logger.Debugw("seed row already exists", "kind", kind, "key", key)
		return nil
	default:
		return fmt.Errorf("failed to seed %s %q: %w", kind, key, err)
	}
}
