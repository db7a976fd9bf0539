package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/garagehq/repairshop/internal/domain/catalog"
	"github.com/garagehq/repairshop/internal/domain/customer"
	"github.com/garagehq/repairshop/internal/domain/employee"
	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/infrastructure/persistence/models"
	"github.com/garagehq/repairshop/internal/shared/authorization"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Every connection to :memory: is a separate database.
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(models.AllModels()...))
	return gdb
}

func seedCustomer(t *testing.T, gdb *gorm.DB, name, email string) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(name, email, "555-0100", "hash")
	require.NoError(t, err)
	require.NoError(t, NewCustomerRepository(gdb).Create(context.Background(), c))
	return c
}

func seedEmployee(t *testing.T, gdb *gorm.DB, name string) *employee.Employee {
	t.Helper()
	e, err := employee.NewEmployee(name, fmt.Sprintf("%s@shop.test", name), "", "hash",
		decimal.RequireFromString("52000.00"), authorization.RoleMechanic)
	require.NoError(t, err)
	require.NoError(t, NewEmployeeRepository(gdb).Create(context.Background(), e))
	return e
}

func seedService(t *testing.T, gdb *gorm.DB, serviceType, price string) *catalog.Service {
	t.Helper()
	s, err := catalog.NewService(serviceType, decimal.RequireFromString(price), serviceType+" service")
	require.NoError(t, err)
	require.NoError(t, NewServiceRepository(gdb).Create(context.Background(), s))
	return s
}

func seedInventory(t *testing.T, gdb *gorm.DB, number, price string, quantity int) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.NewInventory("Brake pad "+number, number, decimal.RequireFromString(price), "", quantity)
	require.NoError(t, err)
	require.NoError(t, NewInventoryRepository(gdb).Create(context.Background(), inv))
	return inv
}

func seedPart(t *testing.T, gdb *gorm.DB, serial string, inventoryID uint) *inventory.SerializedPart {
	t.Helper()
	p, err := inventory.NewSerializedPart(serial, inventoryID)
	require.NoError(t, err)
	require.NoError(t, NewSerializedPartRepository(gdb).Create(context.Background(), p))
	return p
}
