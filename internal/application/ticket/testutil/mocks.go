// Package testutil provides function-field fakes for the ticket use cases.
// An unset function returns zero values.
package testutil

import (
	"context"

	"github.com/garagehq/repairshop/internal/domain/catalog"
	"github.com/garagehq/repairshop/internal/domain/customer"
	"github.com/garagehq/repairshop/internal/domain/employee"
	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

type MockTicketRepository struct {
	CreateFunc           func(ctx context.Context, t *ticket.ServiceTicket) error
	UpdateFunc           func(ctx context.Context, t *ticket.ServiceTicket) error
	GetByIDFunc          func(ctx context.Context, id uint) (*ticket.ServiceTicket, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uint) (*ticket.ServiceTicket, error)
	ListFunc             func(ctx context.Context, filter ticket.Filter) ([]*ticket.ServiceTicket, int64, error)
	CountByCustomerFunc  func(ctx context.Context, customerID uint) (int64, error)
	RankMechanicsFunc    func(ctx context.Context) ([]ticket.MechanicWorkload, error)
}

func (m *MockTicketRepository) RankMechanicsByTicketCount(ctx context.Context) ([]ticket.MechanicWorkload, error) {
	if m.RankMechanicsFunc != nil {
		return m.RankMechanicsFunc(ctx)
	}
	return nil, nil
}

func (m *MockTicketRepository) Create(ctx context.Context, t *ticket.ServiceTicket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *MockTicketRepository) Update(ctx context.Context, t *ticket.ServiceTicket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.ServiceTicket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

// GetByIDForUpdate falls back to GetByIDFunc so tests only set one of them.
func (m *MockTicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.ServiceTicket, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.ServiceTicket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *MockTicketRepository) CountByCustomer(ctx context.Context, customerID uint) (int64, error) {
	if m.CountByCustomerFunc != nil {
		return m.CountByCustomerFunc(ctx, customerID)
	}
	return 0, nil
}

// MockHistoryRepository records appended entries.
type MockHistoryRepository struct {
	Entries          []*ticket.HistoryEntry
	AppendFunc       func(ctx context.Context, entry *ticket.HistoryEntry) error
	ListByTicketFunc func(ctx context.Context, ticketID uint) ([]*ticket.HistoryEntry, error)
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *ticket.HistoryEntry) error {
	if m.AppendFunc != nil {
		if err := m.AppendFunc(ctx, entry); err != nil {
			return err
		}
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

func (m *MockHistoryRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.HistoryEntry, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID)
	}
	return m.Entries, nil
}

type MockCustomerRepository struct {
	CreateFunc  func(ctx context.Context, c *customer.Customer) error
	GetByIDFunc func(ctx context.Context, id uint) (*customer.Customer, error)
	// Locked records ids read through GetByIDForUpdate.
	Locked            []uint
	GetByEmailFunc    func(ctx context.Context, email string) (*customer.Customer, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	UpdateFunc        func(ctx context.Context, c *customer.Customer) error
	DeleteFunc        func(ctx context.Context, id uint) error
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, customer.ErrCustomerNotFound
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uint) (*customer.Customer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, customer.ErrCustomerNotFound
}

// GetByIDForUpdate records the lock and then behaves like GetByID.
func (m *MockCustomerRepository) GetByIDForUpdate(ctx context.Context, id uint) (*customer.Customer, error) {
	m.Locked = append(m.Locked, id)
	return m.GetByID(ctx, id)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type MockEmployeeRepository struct {
	CreateFunc        func(ctx context.Context, e *employee.Employee) error
	GetByIDFunc       func(ctx context.Context, id uint) (*employee.Employee, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*employee.Employee, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	ListFunc          func(ctx context.Context, page, limit int) ([]*employee.Employee, int64, error)
	FindByIDsFunc     func(ctx context.Context, ids []uint) ([]*employee.Employee, error)
	UpdateFunc        func(ctx context.Context, e *employee.Employee) error
}

func (m *MockEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, e)
	}
	return nil
}

func (m *MockEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return nil
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id uint) (*employee.Employee, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, employee.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, employee.ErrEmployeeNotFound
}

func (m *MockEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockEmployeeRepository) List(ctx context.Context, page, limit int) ([]*employee.Employee, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, limit)
	}
	return nil, 0, nil
}

func (m *MockEmployeeRepository) FindByIDs(ctx context.Context, ids []uint) ([]*employee.Employee, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

type MockServiceRepository struct {
	CreateFunc                     func(ctx context.Context, s *catalog.Service) error
	GetByIDFunc                    func(ctx context.Context, id uint) (*catalog.Service, error)
	ExistsByTypeAndDescriptionFunc func(ctx context.Context, serviceType, description string) (bool, error)
	ListFunc                       func(ctx context.Context, page, limit int) ([]*catalog.Service, int64, error)
	FindByIDsFunc                  func(ctx context.Context, ids []uint) ([]*catalog.Service, error)
	UpdateFunc                     func(ctx context.Context, s *catalog.Service) error
}

func (m *MockServiceRepository) Update(ctx context.Context, s *catalog.Service) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

func (m *MockServiceRepository) Create(ctx context.Context, s *catalog.Service) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	return nil
}

func (m *MockServiceRepository) GetByID(ctx context.Context, id uint) (*catalog.Service, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, catalog.ErrServiceNotFound
}

func (m *MockServiceRepository) ExistsByTypeAndDescription(ctx context.Context, serviceType, description string) (bool, error) {
	if m.ExistsByTypeAndDescriptionFunc != nil {
		return m.ExistsByTypeAndDescriptionFunc(ctx, serviceType, description)
	}
	return false, nil
}

func (m *MockServiceRepository) List(ctx context.Context, page, limit int) ([]*catalog.Service, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, limit)
	}
	return nil, 0, nil
}

func (m *MockServiceRepository) FindByIDs(ctx context.Context, ids []uint) ([]*catalog.Service, error) {
	if m.FindByIDsFunc != nil {
		return m.FindByIDsFunc(ctx, ids)
	}
	return nil, nil
}

// MockInventoryRepository counts stock decrements per inventory id.
type MockInventoryRepository struct {
	Decrements         map[uint]int
	CreateFunc         func(ctx context.Context, inv *inventory.Inventory) error
	GetByIDFunc        func(ctx context.Context, id uint) (*inventory.Inventory, error)
	ExistsByNumberFunc func(ctx context.Context, number string) (bool, error)
	ListFunc           func(ctx context.Context, filter inventory.Filter) ([]*inventory.Inventory, int64, error)
	SoftDeleteFunc     func(ctx context.Context, id uint) error
	DecrementStockFunc func(ctx context.Context, id uint) error
}

func (m *MockInventoryRepository) Create(ctx context.Context, inv *inventory.Inventory) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, inv)
	}
	return nil
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, id uint) (*inventory.Inventory, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, inventory.ErrInventoryNotFound
}

func (m *MockInventoryRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	if m.ExistsByNumberFunc != nil {
		return m.ExistsByNumberFunc(ctx, number)
	}
	return false, nil
}

func (m *MockInventoryRepository) List(ctx context.Context, filter inventory.Filter) ([]*inventory.Inventory, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *MockInventoryRepository) SoftDelete(ctx context.Context, id uint) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockInventoryRepository) DecrementStock(ctx context.Context, id uint) error {
	if m.DecrementStockFunc != nil {
		if err := m.DecrementStockFunc(ctx, id); err != nil {
			return err
		}
	}
	if m.Decrements == nil {
		m.Decrements = make(map[uint]int)
	}
	m.Decrements[id]++
	return nil
}

// MockPartRepository records parts passed to MarkUsed.
type MockPartRepository struct {
	MarkedUsed             []uint
	CreateFunc             func(ctx context.Context, part *inventory.SerializedPart) error
	GetByIDFunc            func(ctx context.Context, id uint) (*inventory.SerializedPart, error)
	ExistsBySerialFunc     func(ctx context.Context, serial string) (bool, error)
	ListFunc               func(ctx context.Context, filter inventory.PartFilter) ([]*inventory.SerializedPart, int64, error)
	UpdateStatusFunc       func(ctx context.Context, id uint, status inventory.PartStatus) error
	FindByIDsForUpdateFunc func(ctx context.Context, ids []uint) ([]*inventory.SerializedPart, error)
	MarkUsedFunc           func(ctx context.Context, id uint) error
}

func (m *MockPartRepository) Create(ctx context.Context, part *inventory.SerializedPart) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, part)
	}
	return nil
}

func (m *MockPartRepository) GetByID(ctx context.Context, id uint) (*inventory.SerializedPart, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, inventory.ErrPartNotFound
}

func (m *MockPartRepository) ExistsBySerial(ctx context.Context, serial string) (bool, error) {
	if m.ExistsBySerialFunc != nil {
		return m.ExistsBySerialFunc(ctx, serial)
	}
	return false, nil
}

func (m *MockPartRepository) List(ctx context.Context, filter inventory.PartFilter) ([]*inventory.SerializedPart, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *MockPartRepository) UpdateStatus(ctx context.Context, id uint, status inventory.PartStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockPartRepository) FindByIDsForUpdate(ctx context.Context, ids []uint) ([]*inventory.SerializedPart, error) {
	if m.FindByIDsForUpdateFunc != nil {
		return m.FindByIDsForUpdateFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockPartRepository) MarkUsed(ctx context.Context, id uint) error {
	if m.MarkUsedFunc != nil {
		if err := m.MarkUsedFunc(ctx, id); err != nil {
			return err
		}
	}
	m.MarkedUsed = append(m.MarkedUsed, id)
	return nil
}

// FakeTxManager runs fn inline and counts calls.
type FakeTxManager struct {
	Calls int
}

func (f *FakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.Calls++
	return fn(ctx)
}

// NopLogger discards everything.
type NopLogger struct{}

func NewNopLogger() logger.Interface { return NopLogger{} }

func (NopLogger) Debug(msg string, args ...any)                      {}
func (NopLogger) Info(msg string, args ...any)                       {}
func (NopLogger) Warn(msg string, args ...any)                       {}
func (NopLogger) Error(msg string, args ...any)                      {}
func (l NopLogger) With(args ...any) logger.Interface                { return l }
func (l NopLogger) Named(name string) logger.Interface               { return l }
func (l NopLogger) WithContext(ctx context.Context) logger.Interface { return l }
func (NopLogger) Debugw(msg string, keysAndValues ...interface{})    {}
func (NopLogger) Infow(msg string, keysAndValues ...interface{})     {}
func (NopLogger) Warnw(msg string, keysAndValues ...interface{})     {}
func (NopLogger) Errorw(msg string, keysAndValues ...interface{})    {}
