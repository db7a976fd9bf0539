package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehq/repairshop/internal/application/catalog"
	"github.com/garagehq/repairshop/internal/application/catalog/dto"
	"github.com/garagehq/repairshop/internal/interfaces/http/handlers/testutil"
	"github.com/garagehq/repairshop/internal/shared/errors"
)

type mockCustomerService struct {
	CreateFunc func(ctx context.Context, cmd catalog.CreateCustomerCommand) (*dto.CustomerDTO, error)
	GetFunc    func(ctx context.Context, id uint) (*dto.CustomerDTO, error)
	DeleteFunc func(ctx context.Context, id uint) error
	UpdateFunc func(ctx context.Context, cmd catalog.UpdateCustomerCommand) (*dto.CustomerDTO, error)
}

func (m *mockCustomerService) Update(ctx context.Context, cmd catalog.UpdateCustomerCommand) (*dto.CustomerDTO, error) {
	return m.UpdateFunc(ctx, cmd)
}

func (m *mockCustomerService) Create(ctx context.Context, cmd catalog.CreateCustomerCommand) (*dto.CustomerDTO, error) {
	return m.CreateFunc(ctx, cmd)
}

func (m *mockCustomerService) Get(ctx context.Context, id uint) (*dto.CustomerDTO, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockCustomerService) Delete(ctx context.Context, id uint) error {
	return m.DeleteFunc(ctx, id)
}

type mockEmployeeService struct {
	CreateFunc func(ctx context.Context, cmd catalog.CreateEmployeeCommand) (*dto.EmployeeDTO, error)
	ListFunc   func(ctx context.Context, page, limit int) (*dto.Page[*dto.EmployeeDTO], error)
	UpdateFunc func(ctx context.Context, cmd catalog.UpdateEmployeeCommand) (*dto.EmployeeDTO, error)
}

func (m *mockEmployeeService) Update(ctx context.Context, cmd catalog.UpdateEmployeeCommand) (*dto.EmployeeDTO, error) {
	return m.UpdateFunc(ctx, cmd)
}

type mockServiceCatalog struct {
	UpdateFunc func(ctx context.Context, cmd catalog.UpdateServiceCommand) (*dto.ServiceDTO, error)
}

func (m *mockServiceCatalog) Create(ctx context.Context, cmd catalog.CreateServiceCommand) (*dto.ServiceDTO, error) {
	return &dto.ServiceDTO{ID: 1, ServiceType: cmd.ServiceType}, nil
}

func (m *mockServiceCatalog) Get(ctx context.Context, id uint) (*dto.ServiceDTO, error) {
	return &dto.ServiceDTO{ID: id}, nil
}

func (m *mockServiceCatalog) List(ctx context.Context, page, limit int) (*dto.Page[*dto.ServiceDTO], error) {
	return &dto.Page[*dto.ServiceDTO]{}, nil
}

func (m *mockServiceCatalog) Update(ctx context.Context, cmd catalog.UpdateServiceCommand) (*dto.ServiceDTO, error) {
	return m.UpdateFunc(ctx, cmd)
}

func (m *mockEmployeeService) Create(ctx context.Context, cmd catalog.CreateEmployeeCommand) (*dto.EmployeeDTO, error) {
	return m.CreateFunc(ctx, cmd)
}

func (m *mockEmployeeService) Get(ctx context.Context, id uint) (*dto.EmployeeDTO, error) {
	return &dto.EmployeeDTO{ID: id}, nil
}

func (m *mockEmployeeService) List(ctx context.Context, page, limit int) (*dto.Page[*dto.EmployeeDTO], error) {
	return m.ListFunc(ctx, page, limit)
}

type mockInventoryService struct {
	ListFunc   func(ctx context.Context, deleted bool, page, limit int) (*dto.Page[*dto.InventoryDTO], error)
	CreateFunc func(ctx context.Context, cmd catalog.CreateInventoryCommand) (*dto.InventoryDTO, error)
}

func (m *mockInventoryService) Create(ctx context.Context, cmd catalog.CreateInventoryCommand) (*dto.InventoryDTO, error) {
	return m.CreateFunc(ctx, cmd)
}

func (m *mockInventoryService) Get(ctx context.Context, id uint) (*dto.InventoryDTO, error) {
	return nil, errors.NewNotFoundError("inventory not found")
}

func (m *mockInventoryService) List(ctx context.Context, deleted bool, page, limit int) (*dto.Page[*dto.InventoryDTO], error) {
	return m.ListFunc(ctx, deleted, page, limit)
}

func (m *mockInventoryService) Delete(ctx context.Context, id uint) error { return nil }

type mockPartService struct {
	ListFunc         func(ctx context.Context, q catalog.ListPartsQuery) (*dto.Page[*dto.PartDTO], error)
	UpdateStatusFunc func(ctx context.Context, id uint, status string) (*dto.PartDTO, error)
}

func (m *mockPartService) Create(ctx context.Context, cmd catalog.CreatePartCommand) (*dto.PartDTO, error) {
	return &dto.PartDTO{ID: 1, SerialNumber: cmd.SerialNumber, InventoryID: cmd.InventoryID, Status: "available"}, nil
}

func (m *mockPartService) Get(ctx context.Context, id uint) (*dto.PartDTO, error) {
	return &dto.PartDTO{ID: id}, nil
}

func (m *mockPartService) List(ctx context.Context, q catalog.ListPartsQuery) (*dto.Page[*dto.PartDTO], error) {
	return m.ListFunc(ctx, q)
}

func (m *mockPartService) UpdateStatus(ctx context.Context, id uint, status string) (*dto.PartDTO, error) {
	return m.UpdateStatusFunc(ctx, id, status)
}

func TestCustomerHandler_Create(t *testing.T) {
	svc := &mockCustomerService{
		CreateFunc: func(ctx context.Context, cmd catalog.CreateCustomerCommand) (*dto.CustomerDTO, error) {
			if cmd.Email == "taken@example.com" {
				return nil, errors.NewConflictError("customer already exists", "duplicate email")
			}
			return &dto.CustomerDTO{ID: 1, Name: cmd.Name, Email: cmd.Email}, nil
		},
	}
	h := NewCustomerHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/customers", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "secret123",
	})
	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/customers", map[string]any{
		"name": "Ana", "email": "taken@example.com", "password": "secret123",
	})
	h.Create(c)
	assert.Equal(t, http.StatusConflict, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/customers", map[string]any{
		"name": "Ana", "email": "not-an-email", "password": "secret123",
	})
	h.Create(c)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCustomerHandler_Delete_WithTickets(t *testing.T) {
	svc := &mockCustomerService{
		DeleteFunc: func(ctx context.Context, id uint) error {
			return errors.NewConflictError("customer has service tickets")
		},
	}
	h := NewCustomerHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/customers/1", nil)
	testutil.SetURLParam(c, "id", "1")
	h.Delete(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCustomerHandler_Update(t *testing.T) {
	var got catalog.UpdateCustomerCommand
	svc := &mockCustomerService{
		UpdateFunc: func(ctx context.Context, cmd catalog.UpdateCustomerCommand) (*dto.CustomerDTO, error) {
			got = cmd
			return &dto.CustomerDTO{ID: cmd.CustomerID, Phone: *cmd.Phone}, nil
		},
	}
	h := NewCustomerHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewRawRequestContext(http.MethodPatch, "/customers/5", `{"phone":"555-0199"}`)
	testutil.SetURLParam(c, "id", "5")
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), got.CustomerID)
	assert.Nil(t, got.Name)
	assert.Nil(t, got.Email)
	require.NotNil(t, got.Phone)
	assert.Equal(t, "555-0199", *got.Phone)
}

func TestCustomerHandler_Update_RejectsReadOnlyFields(t *testing.T) {
	called := false
	svc := &mockCustomerService{
		UpdateFunc: func(ctx context.Context, cmd catalog.UpdateCustomerCommand) (*dto.CustomerDTO, error) {
			called = true
			return &dto.CustomerDTO{}, nil
		},
	}
	h := NewCustomerHandler(svc, testutil.NewMockLogger())

	for _, body := range []string{`{"id":9,"name":"Dana"}`, `{"password":"hunter22"}`, `{}`} {
		c, w := testutil.NewRawRequestContext(http.MethodPatch, "/customers/5", body)
		testutil.SetURLParam(c, "id", "5")
		h.Update(c)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
	}
	assert.False(t, called)
}

func TestEmployeeHandler_Update_RoleIsNotPatchable(t *testing.T) {
	called := false
	svc := &mockEmployeeService{
		UpdateFunc: func(ctx context.Context, cmd catalog.UpdateEmployeeCommand) (*dto.EmployeeDTO, error) {
			called = true
			return &dto.EmployeeDTO{ID: cmd.EmployeeID}, nil
		},
	}
	h := NewEmployeeHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewRawRequestContext(http.MethodPatch, "/employees/2", `{"name":"Sam","role":"admin"}`)
	testutil.SetURLParam(c, "id", "2")
	h.Update(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, called)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Contains(t, resp.Error.Details, "role cannot be updated")
}

func TestEmployeeHandler_Update(t *testing.T) {
	var got catalog.UpdateEmployeeCommand
	svc := &mockEmployeeService{
		UpdateFunc: func(ctx context.Context, cmd catalog.UpdateEmployeeCommand) (*dto.EmployeeDTO, error) {
			got = cmd
			return &dto.EmployeeDTO{ID: cmd.EmployeeID, Role: "mechanic"}, nil
		},
	}
	h := NewEmployeeHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewRawRequestContext(http.MethodPatch, "/employees/2", `{"salary":"61000.00"}`)
	testutil.SetURLParam(c, "id", "2")
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Salary)
	assert.Equal(t, "61000.00", *got.Salary)
}

func TestServiceHandler_Update(t *testing.T) {
	var got catalog.UpdateServiceCommand
	svc := &mockServiceCatalog{
		UpdateFunc: func(ctx context.Context, cmd catalog.UpdateServiceCommand) (*dto.ServiceDTO, error) {
			got = cmd
			return &dto.ServiceDTO{ID: cmd.ServiceID, BasePrice: *cmd.BasePrice}, nil
		},
	}
	h := NewServiceHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewRawRequestContext(http.MethodPatch, "/services/3", `{"base_price":"89.99"}`)
	testutil.SetURLParam(c, "id", "3")
	h.Update(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), got.ServiceID)

	c, w = testutil.NewRawRequestContext(http.MethodPatch, "/services/3", `{"id":4}`)
	testutil.SetURLParam(c, "id", "3")
	h.Update(c)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEmployeeHandler_Create_RejectsUnknownRole(t *testing.T) {
	called := false
	svc := &mockEmployeeService{
		CreateFunc: func(ctx context.Context, cmd catalog.CreateEmployeeCommand) (*dto.EmployeeDTO, error) {
			called = true
			return &dto.EmployeeDTO{ID: 1}, nil
		},
	}
	h := NewEmployeeHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/employees", map[string]any{
		"name": "Sam", "email": "sam@shop.test", "password": "secret123", "salary": "52000.00", "role": "owner",
	})
	h.Create(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, called)
}

func TestEmployeeHandler_List(t *testing.T) {
	var gotPage, gotLimit int
	svc := &mockEmployeeService{
		ListFunc: func(ctx context.Context, page, limit int) (*dto.Page[*dto.EmployeeDTO], error) {
			gotPage, gotLimit = page, limit
			return &dto.Page[*dto.EmployeeDTO]{Items: []*dto.EmployeeDTO{{ID: 1}}, Total: 1, Page: page, Limit: limit}, nil
		},
	}
	h := NewEmployeeHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/employees", nil)
	testutil.SetQueryParams(c, map[string]string{"limit": "500"})
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, gotPage)
	assert.Equal(t, 100, gotLimit)
}

func TestInventoryHandler_List_Deleted(t *testing.T) {
	var gotDeleted bool
	inv := &mockInventoryService{
		ListFunc: func(ctx context.Context, deleted bool, page, limit int) (*dto.Page[*dto.InventoryDTO], error) {
			gotDeleted = deleted
			return &dto.Page[*dto.InventoryDTO]{Page: page, Limit: limit}, nil
		},
	}
	h := NewInventoryHandler(inv, &mockPartService{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/inventory", nil)
	testutil.SetQueryParams(c, map[string]string{"deleted": "true"})
	h.List(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotDeleted)

	c, w = testutil.NewTestContext(http.MethodGet, "/inventory", nil)
	testutil.SetQueryParams(c, map[string]string{"deleted": "maybe"})
	h.List(c)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestInventoryHandler_Create_NegativeStock(t *testing.T) {
	inv := &mockInventoryService{}
	h := NewInventoryHandler(inv, &mockPartService{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/inventory", map[string]any{
		"name": "Brake pad", "inventory_number": "BP-1", "price": "40.00", "quantity_in_stock": -1,
	})
	h.Create(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestInventoryHandler_Get_NotFound(t *testing.T) {
	h := NewInventoryHandler(&mockInventoryService{}, &mockPartService{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/inventory/3", nil)
	testutil.SetURLParam(c, "id", "3")
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInventoryHandler_Parts(t *testing.T) {
	var gotQuery catalog.ListPartsQuery
	parts := &mockPartService{
		ListFunc: func(ctx context.Context, q catalog.ListPartsQuery) (*dto.Page[*dto.PartDTO], error) {
			gotQuery = q
			return &dto.Page[*dto.PartDTO]{Items: []*dto.PartDTO{{ID: 1, Status: "available"}}, Total: 1, Page: q.Page, Limit: q.Limit}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uint, status string) (*dto.PartDTO, error) {
			return &dto.PartDTO{ID: id, Status: status}, nil
		},
	}
	h := NewInventoryHandler(&mockInventoryService{}, parts, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/inventory/serialized-parts", nil)
	testutil.SetQueryParams(c, map[string]string{"status": "available", "inventory_id": "2"})
	h.ListParts(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "available", gotQuery.Status)
	require.NotNil(t, gotQuery.InventoryID)
	assert.Equal(t, uint(2), *gotQuery.InventoryID)

	c, w = testutil.NewTestContext(http.MethodPatch, "/inventory/serialized-parts/5", map[string]any{"status": "defective"})
	testutil.SetURLParam(c, "id", "5")
	h.UpdatePartStatus(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var part dto.PartDTO
	require.NoError(t, json.Unmarshal(resp.Data, &part))
	assert.Equal(t, "defective", part.Status)

	c, w = testutil.NewTestContext(http.MethodPatch, "/inventory/serialized-parts/5", map[string]any{"status": "lost"})
	testutil.SetURLParam(c, "id", "5")
	h.UpdatePartStatus(c)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestInventoryHandler_CreatePart(t *testing.T) {
	h := NewInventoryHandler(&mockInventoryService{}, &mockPartService{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/inventory/serialized-parts", map[string]any{
		"serial_number": "BP-1-0001", "inventory_id": 2,
	})
	h.CreatePart(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}
