package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehq/repairshop/internal/application/ticket/testutil"
	"github.com/garagehq/repairshop/internal/domain/catalog"
	"github.com/garagehq/repairshop/internal/domain/customer"
	"github.com/garagehq/repairshop/internal/domain/employee"
	"github.com/garagehq/repairshop/internal/domain/inventory"
	apperrors "github.com/garagehq/repairshop/internal/shared/errors"
)

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

type fakeTicketCounter struct{ count int64 }

func (f fakeTicketCounter) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	return f.count, nil
}

type countFunc func(ctx context.Context, customerID uint) (int64, error)

func (f countFunc) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	return f(ctx, customerID)
}

func TestCustomerService_Create(t *testing.T) {
	var saved *customer.Customer
	repo := &testutil.MockCustomerRepository{
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return email == "taken@example.com", nil
		},
		CreateFunc: func(ctx context.Context, c *customer.Customer) error {
			saved = c
			return c.SetID(7)
		},
	}
	svc := NewCustomerService(repo, fakeTicketCounter{}, &testutil.FakeTxManager{}, fakeHasher{}, testutil.NewNopLogger())

	out, err := svc.Create(context.Background(), CreateCustomerCommand{
		Name: "Ana", Email: "Ana@Example.com", Phone: "555", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), out.ID)
	assert.Equal(t, "ana@example.com", out.Email)
	assert.Equal(t, "hashed:secret123", saved.PasswordHash())

	_, err = svc.Create(context.Background(), CreateCustomerCommand{
		Name: "Dup", Email: "TAKEN@example.com", Password: "secret123",
	})
	assert.True(t, apperrors.IsConflictError(err))

	_, err = svc.Create(context.Background(), CreateCustomerCommand{
		Name: "Weak", Email: "weak@example.com", Password: "short",
	})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestCustomerService_Create_DuplicateRace(t *testing.T) {
	repo := &testutil.MockCustomerRepository{
		CreateFunc: func(ctx context.Context, c *customer.Customer) error {
			return errors.New("UNIQUE constraint failed: customers.email")
		},
	}
	svc := NewCustomerService(repo, fakeTicketCounter{}, &testutil.FakeTxManager{}, fakeHasher{}, testutil.NewNopLogger())

	_, err := svc.Create(context.Background(), CreateCustomerCommand{
		Name: "Ana", Email: "ana@example.com", Password: "secret123",
	})
	assert.True(t, apperrors.IsConflictError(err))
}

func TestCustomerService_Delete(t *testing.T) {
	deleted := false
	repo := &testutil.MockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*customer.Customer, error) {
			if id != 1 {
				return nil, customer.ErrCustomerNotFound
			}
			return testutil.NewCustomer(t, 1), nil
		},
		DeleteFunc: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}

	withTickets := NewCustomerService(repo, fakeTicketCounter{count: 1}, &testutil.FakeTxManager{}, fakeHasher{}, testutil.NewNopLogger())
	err := withTickets.Delete(context.Background(), 1)
	assert.True(t, apperrors.IsConflictError(err))
	assert.False(t, deleted)

	txMgr := &testutil.FakeTxManager{}
	noTickets := NewCustomerService(repo, fakeTicketCounter{}, txMgr, fakeHasher{}, testutil.NewNopLogger())
	require.NoError(t, noTickets.Delete(context.Background(), 1))
	assert.True(t, deleted)
	assert.Equal(t, 1, txMgr.Calls)

	assert.True(t, apperrors.IsNotFoundError(noTickets.Delete(context.Background(), 2)))
}

func TestCustomerService_Delete_LocksCustomerBeforeCounting(t *testing.T) {
	repo := &testutil.MockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*customer.Customer, error) {
			return testutil.NewCustomer(t, id), nil
		},
	}
	var lockedWhenCounted []uint
	counter := countFunc(func(ctx context.Context, customerID uint) (int64, error) {
		lockedWhenCounted = append([]uint(nil), repo.Locked...)
		return 0, nil
	})
	svc := NewCustomerService(repo, counter, &testutil.FakeTxManager{}, fakeHasher{}, testutil.NewNopLogger())

	require.NoError(t, svc.Delete(context.Background(), 4))
	assert.Equal(t, []uint{4}, lockedWhenCounted)
}

func TestCustomerService_Update(t *testing.T) {
	var saved *customer.Customer
	repo := &testutil.MockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*customer.Customer, error) {
			if id != 1 {
				return nil, customer.ErrCustomerNotFound
			}
			return testutil.NewCustomer(t, 1), nil
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*customer.Customer, error) {
			if email == "taken@example.com" {
				return testutil.NewCustomer(t, 2), nil
			}
			if email == "dana@example.com" {
				return testutil.NewCustomer(t, 1), nil
			}
			return nil, customer.ErrCustomerNotFound
		},
		UpdateFunc: func(ctx context.Context, c *customer.Customer) error {
			saved = c
			return nil
		},
	}
	txMgr := &testutil.FakeTxManager{}
	svc := NewCustomerService(repo, fakeTicketCounter{}, txMgr, fakeHasher{}, testutil.NewNopLogger())

	phone := "555-0199"
	out, err := svc.Update(context.Background(), UpdateCustomerCommand{CustomerID: 1, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-0199", out.Phone)
	assert.Equal(t, "Dana Reyes", out.Name)
	require.NotNil(t, saved)
	assert.Equal(t, []uint{1}, repo.Locked)
	assert.Equal(t, 1, txMgr.Calls)

	// Re-sending the customer's own email is not a conflict.
	own := "DANA@example.com"
	_, err = svc.Update(context.Background(), UpdateCustomerCommand{CustomerID: 1, Email: &own})
	require.NoError(t, err)

	saved = nil
	taken := "taken@example.com"
	_, err = svc.Update(context.Background(), UpdateCustomerCommand{CustomerID: 1, Email: &taken})
	assert.True(t, apperrors.IsConflictError(err))

	blank := "  "
	_, err = svc.Update(context.Background(), UpdateCustomerCommand{CustomerID: 1, Name: &blank})
	assert.True(t, apperrors.IsValidationError(err))
	assert.Nil(t, saved)

	_, err = svc.Update(context.Background(), UpdateCustomerCommand{CustomerID: 9, Phone: &phone})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestEmployeeService_Update(t *testing.T) {
	var saved *employee.Employee
	repo := &testutil.MockEmployeeRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*employee.Employee, error) {
			if id != 4 {
				return nil, employee.ErrEmployeeNotFound
			}
			return testutil.NewEmployee(t, 4, "sam"), nil
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*employee.Employee, error) {
			if email == "lee@shop.io" {
				return testutil.NewEmployee(t, 5, "lee"), nil
			}
			return nil, employee.ErrEmployeeNotFound
		},
		UpdateFunc: func(ctx context.Context, e *employee.Employee) error {
			saved = e
			return nil
		},
	}
	svc := NewEmployeeService(repo, fakeHasher{}, testutil.NewNopLogger())

	name, salary := "Sam Wrench", "61000.00"
	out, err := svc.Update(context.Background(), UpdateEmployeeCommand{EmployeeID: 4, Name: &name, Salary: &salary})
	require.NoError(t, err)
	assert.Equal(t, "Sam Wrench", out.Name)
	assert.Equal(t, "mechanic", out.Role)
	require.NotNil(t, saved)
	assert.True(t, decimal.RequireFromString("61000").Equal(saved.Salary()))

	taken := "lee@shop.io"
	_, err = svc.Update(context.Background(), UpdateEmployeeCommand{EmployeeID: 4, Email: &taken})
	assert.True(t, apperrors.IsConflictError(err))

	bad := "lots"
	_, err = svc.Update(context.Background(), UpdateEmployeeCommand{EmployeeID: 4, Salary: &bad})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = svc.Update(context.Background(), UpdateEmployeeCommand{EmployeeID: 8, Name: &name})
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestServiceCatalog_Update(t *testing.T) {
	now := time.Now()
	checks := 0
	repo := &testutil.MockServiceRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*catalog.Service, error) {
			return catalog.ReconstructService(id, "Oil Change", decimal.NewFromInt(40), "synthetic", now, now)
		},
		ExistsByTypeAndDescriptionFunc: func(ctx context.Context, serviceType, description string) (bool, error) {
			checks++
			return serviceType == "Tire Rotation", nil
		},
	}
	svc := NewServiceCatalog(repo, testutil.NewNopLogger())

	price := "45.5"
	out, err := svc.Update(context.Background(), UpdateServiceCommand{ServiceID: 2, BasePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "45.50", out.BasePrice)
	assert.Zero(t, checks, "a price change does not touch the uniqueness key")

	renamed := "tire rotation"
	_, err = svc.Update(context.Background(), UpdateServiceCommand{ServiceID: 2, ServiceType: &renamed})
	assert.True(t, apperrors.IsConflictError(err))
	assert.Equal(t, 1, checks)

	negative := "-1"
	_, err = svc.Update(context.Background(), UpdateServiceCommand{ServiceID: 2, BasePrice: &negative})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestEmployeeService_Create(t *testing.T) {
	repo := &testutil.MockEmployeeRepository{
		CreateFunc: func(ctx context.Context, e *employee.Employee) error {
			return e.SetID(3)
		},
	}
	svc := NewEmployeeService(repo, fakeHasher{}, testutil.NewNopLogger())

	out, err := svc.Create(context.Background(), CreateEmployeeCommand{
		Name: "Sam", Email: "sam@shop.io", Password: "wrench123", Salary: "42000.50", Role: "manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "manager", out.Role)

	out, err = svc.Create(context.Background(), CreateEmployeeCommand{
		Name: "Lee", Email: "lee@shop.io", Password: "wrench123",
	})
	require.NoError(t, err)
	assert.Equal(t, "mechanic", out.Role)

	tests := []CreateEmployeeCommand{
		{Name: "A", Email: "a@shop.io", Password: "password"},
		{Name: "A", Email: "a@shop.io", Password: "wrench123", Role: "owner"},
		{Name: "A", Email: "a@shop.io", Password: "wrench123", Salary: "lots"},
	}
	for _, cmd := range tests {
		_, err := svc.Create(context.Background(), cmd)
		assert.True(t, apperrors.IsValidationError(err), "%+v", cmd)
	}
}

func TestServiceCatalog_Create(t *testing.T) {
	var checkedType string
	repo := &testutil.MockServiceRepository{
		ExistsByTypeAndDescriptionFunc: func(ctx context.Context, serviceType, description string) (bool, error) {
			checkedType = serviceType
			return description == "existing", nil
		},
		CreateFunc: func(ctx context.Context, s *catalog.Service) error {
			return s.SetID(1)
		},
	}
	svc := NewServiceCatalog(repo, testutil.NewNopLogger())

	out, err := svc.Create(context.Background(), CreateServiceCommand{
		ServiceType: "  oil   change ", BasePrice: "39.999", Description: "synthetic",
	})
	require.NoError(t, err)
	assert.Equal(t, "Oil Change", out.ServiceType)
	assert.Equal(t, "Oil Change", checkedType)
	assert.Equal(t, "40.00", out.BasePrice)

	_, err = svc.Create(context.Background(), CreateServiceCommand{
		ServiceType: "oil change", BasePrice: "10", Description: "existing",
	})
	assert.True(t, apperrors.IsConflictError(err))

	_, err = svc.Create(context.Background(), CreateServiceCommand{ServiceType: "x", BasePrice: "abc"})
	assert.True(t, apperrors.IsValidationError(err))
}

func TestInventoryService(t *testing.T) {
	repo := &testutil.MockInventoryRepository{
		ExistsByNumberFunc: func(ctx context.Context, number string) (bool, error) {
			return number == "INV-1", nil
		},
		CreateFunc: func(ctx context.Context, inv *inventory.Inventory) error {
			return inv.SetID(4)
		},
		SoftDeleteFunc: func(ctx context.Context, id uint) error {
			if id != 4 {
				return inventory.ErrInventoryNotFound
			}
			return nil
		},
	}
	svc := NewInventoryService(repo, testutil.NewNopLogger())

	out, err := svc.Create(context.Background(), CreateInventoryCommand{
		Name: "Rotor", InventoryNumber: "INV-2", Price: "50", QuantityInStock: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "50.00", out.Price)

	_, err = svc.Create(context.Background(), CreateInventoryCommand{Name: "Rotor", InventoryNumber: "INV-1", Price: "50"})
	assert.True(t, apperrors.IsConflictError(err))

	_, err = svc.Create(context.Background(), CreateInventoryCommand{Name: "Rotor", InventoryNumber: "INV-3", Price: "50", QuantityInStock: -1})
	assert.True(t, apperrors.IsValidationError(err))

	require.NoError(t, svc.Delete(context.Background(), 4))
	assert.True(t, apperrors.IsNotFoundError(svc.Delete(context.Background(), 5)))
}

func TestPartService(t *testing.T) {
	parts := &testutil.MockPartRepository{
		ExistsBySerialFunc: func(ctx context.Context, serial string) (bool, error) {
			return strings.EqualFold(serial, "SN-TAKEN"), nil
		},
		CreateFunc: func(ctx context.Context, p *inventory.SerializedPart) error {
			return p.SetID(9)
		},
		GetByIDFunc: func(ctx context.Context, id uint) (*inventory.SerializedPart, error) {
			return testutil.NewPart(t, id, 4, inventory.PartStatusAvailable, "50.00"), nil
		},
	}
	stock := &testutil.MockInventoryRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*inventory.Inventory, error) {
			if id != 4 {
				return nil, inventory.ErrInventoryNotFound
			}
			return nil, nil
		},
	}
	svc := NewPartService(parts, stock, testutil.NewNopLogger())

	out, err := svc.Create(context.Background(), CreatePartCommand{SerialNumber: "SN-1", InventoryID: 4})
	require.NoError(t, err)
	assert.Equal(t, "available", out.Status)

	_, err = svc.Create(context.Background(), CreatePartCommand{SerialNumber: "SN-TAKEN", InventoryID: 4})
	assert.True(t, apperrors.IsConflictError(err))

	_, err = svc.Create(context.Background(), CreatePartCommand{SerialNumber: "SN-2", InventoryID: 5})
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = svc.UpdateStatus(context.Background(), 9, "broken")
	assert.True(t, apperrors.IsValidationError(err))

	_, err = svc.List(context.Background(), ListPartsQuery{Status: "lost"})
	assert.True(t, apperrors.IsValidationError(err))
}
