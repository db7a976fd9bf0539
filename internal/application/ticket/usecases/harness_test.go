package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/garagehq/repairshop/internal/application/ticket/dto"
	"github.com/garagehq/repairshop/internal/application/ticket/services"
	"github.com/garagehq/repairshop/internal/application/ticket/testutil"
	"github.com/garagehq/repairshop/internal/domain/billing"
	"github.com/garagehq/repairshop/internal/domain/catalog"
	"github.com/garagehq/repairshop/internal/domain/customer"
	"github.com/garagehq/repairshop/internal/domain/employee"
	"github.com/garagehq/repairshop/internal/domain/inventory"
	"github.com/garagehq/repairshop/internal/domain/ticket"
	"github.com/garagehq/repairshop/internal/shared/services/markdown"
)

// mockNotifier records receipts.
type mockNotifier struct {
	mu       sync.Mutex
	receipts []ClosingReceipt
	err      error
}

func (m *mockNotifier) NotifyTicketClosed(ctx context.Context, receipt ClosingReceipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts = append(m.receipts, receipt)
	return m.err
}

// harness wires the ticket use cases over function-field mocks backed by
// a small in-memory catalog.
type harness struct {
	tickets   *testutil.MockTicketRepository
	history   *testutil.MockHistoryRepository
	customers *testutil.MockCustomerRepository
	employees *testutil.MockEmployeeRepository
	services  *testutil.MockServiceRepository
	stock     *testutil.MockInventoryRepository
	parts     *testutil.MockPartRepository
	txMgr     *testutil.FakeTxManager
	notifier  *mockNotifier

	resolver   *services.AssociationResolver
	adjuster   *services.InventoryAdjuster
	settlement *services.CloseSettlement
	assembler  *dto.Assembler

	stored    map[uint]*ticket.ServiceTicket
	partsByID map[uint]*inventory.SerializedPart
	nextID    uint
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		history:   &testutil.MockHistoryRepository{},
		stock:     &testutil.MockInventoryRepository{},
		txMgr:     &testutil.FakeTxManager{},
		notifier:  &mockNotifier{},
		stored:    map[uint]*ticket.ServiceTicket{},
		partsByID: map[uint]*inventory.SerializedPart{},
		nextID:    100,
	}

	h.tickets = &testutil.MockTicketRepository{
		CreateFunc: func(ctx context.Context, tk *ticket.ServiceTicket) error {
			if err := tk.SetID(h.nextID); err != nil {
				return err
			}
			h.nextID++
			h.stored[tk.ID()] = tk
			return nil
		},
		UpdateFunc: func(ctx context.Context, tk *ticket.ServiceTicket) error {
			tk.SetVersion(tk.Version() + 1)
			h.stored[tk.ID()] = tk
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.ServiceTicket, error) {
			tk, ok := h.stored[id]
			if !ok || tk.IsDeleted() {
				return nil, ticket.ErrTicketNotFound
			}
			return tk, nil
		},
	}

	h.customers = &testutil.MockCustomerRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*customer.Customer, error) {
			if id != 1 {
				return nil, customer.ErrCustomerNotFound
			}
			return testutil.NewCustomer(t, 1), nil
		},
	}

	h.employees = &testutil.MockEmployeeRepository{
		FindByIDsFunc: func(ctx context.Context, ids []uint) ([]*employee.Employee, error) {
			var out []*employee.Employee
			for _, id := range ids {
				if id >= 1 && id <= 5 {
					out = append(out, testutil.NewEmployee(t, id, "mechanic"))
				}
			}
			return out, nil
		},
	}

	prices := map[uint]string{1: "100.00", 2: "40.00", 3: "19.99"}
	h.services = &testutil.MockServiceRepository{
		FindByIDsFunc: func(ctx context.Context, ids []uint) ([]*catalog.Service, error) {
			var out []*catalog.Service
			for _, id := range ids {
				if price, ok := prices[id]; ok {
					out = append(out, testutil.NewService(t, id, "Service", price))
				}
			}
			return out, nil
		},
	}

	h.parts = &testutil.MockPartRepository{
		FindByIDsForUpdateFunc: func(ctx context.Context, ids []uint) ([]*inventory.SerializedPart, error) {
			var out []*inventory.SerializedPart
			for _, id := range ids {
				if p, ok := h.partsByID[id]; ok {
					out = append(out, p)
				}
			}
			return out, nil
		},
		MarkUsedFunc: func(ctx context.Context, id uint) error {
			p, ok := h.partsByID[id]
			if !ok || !p.Status().IsAvailable() {
				return inventory.ErrPartNotAvailable
			}
			return p.ChangeStatus(inventory.PartStatusUsed)
		},
	}

	calc, err := billing.NewCalculator("1.06")
	require.NoError(t, err)

	log := testutil.NewNopLogger()
	h.resolver = services.NewAssociationResolver(h.employees, h.services, h.parts)
	h.adjuster = services.NewInventoryAdjuster(h.parts, h.stock, log)
	h.settlement = services.NewCloseSettlement(calc, h.adjuster)
	h.assembler = dto.NewAssembler(markdown.NewMarkdownService())
	return h
}

func (h *harness) addPart(t *testing.T, id, inventoryID uint, status inventory.PartStatus, price string) {
	t.Helper()
	h.partsByID[id] = testutil.NewPart(t, id, inventoryID, status, price)
}

func (h *harness) create() *CreateTicketUseCase {
	return NewCreateTicketUseCase(h.tickets, h.history, h.customers, h.resolver, h.settlement,
		h.txMgr, h.assembler, h.notifier, testutil.NewNopLogger())
}

func (h *harness) patch() *PatchTicketUseCase {
	return NewPatchTicketUseCase(h.tickets, h.history, h.resolver, h.settlement,
		h.txMgr, h.assembler, h.notifier, testutil.NewNopLogger())
}

func (h *harness) addPartUC() *AddPartUseCase {
	return NewAddPartUseCase(h.tickets, h.history, h.resolver, h.adjuster, h.settlement,
		h.txMgr, h.assembler, testutil.NewNopLogger())
}

func (h *harness) editMechanics() *EditMechanicsUseCase {
	return NewEditMechanicsUseCase(h.tickets, h.history, h.resolver, h.txMgr, h.assembler, testutil.NewNopLogger())
}

func (h *harness) mustCreate(t *testing.T, cmd CreateTicketCommand) *dto.TicketDTO {
	t.Helper()
	out, err := h.create().Execute(context.Background(), cmd)
	require.NoError(t, err)
	return out
}

func baseCreate() CreateTicketCommand {
	return CreateTicketCommand{
		CustomerID:  1,
		VIN:         "1HGCM82633A004352",
		WorkSummary: "Front brakes grinding",
		ActorID:     2,
	}
}

func strPtr(s string) *string { return &s }
