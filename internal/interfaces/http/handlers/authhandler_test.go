package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehq/repairshop/internal/application/auth"
	"github.com/garagehq/repairshop/internal/interfaces/http/handlers/testutil"
	"github.com/garagehq/repairshop/internal/shared/errors"
)

type mockLoginUC struct {
	got    auth.LoginCommand
	result *auth.LoginResult
	err    error
}

func (m *mockLoginUC) Execute(_ context.Context, cmd auth.LoginCommand) (*auth.LoginResult, error) {
	m.got = cmd
	return m.result, m.err
}

func TestAuthHandler_Login_Success(t *testing.T) {
	uc := &mockLoginUC{result: &auth.LoginResult{AccessToken: "tok", TokenType: "Bearer", ExpiresIn: 3600, EmployeeID: 4, Role: "mechanic"}}
	h := NewAuthHandler(uc, &mockCustomerLoginUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/employees/login", map[string]string{
		"email": "sam@shop.test", "password": "secret123",
	})
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sam@shop.test", uc.got.Email)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var result auth.LoginResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, "tok", result.AccessToken)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	uc := &mockLoginUC{err: errors.NewInvalidCredentialsError()}
	h := NewAuthHandler(uc, &mockCustomerLoginUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/employees/login", map[string]string{
		"email": "sam@shop.test", "password": "wrong",
	})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "invalid_credentials", resp.Error.Type)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	uc := &mockLoginUC{}
	h := NewAuthHandler(uc, &mockCustomerLoginUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/employees/login", map[string]string{"email": "sam@shop.test"})
	h.Login(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, uc.got.Email)
}

type mockCustomerLoginUC struct {
	got    auth.LoginCommand
	result *auth.CustomerLoginResult
	err    error
}

func (m *mockCustomerLoginUC) Execute(_ context.Context, cmd auth.LoginCommand) (*auth.CustomerLoginResult, error) {
	m.got = cmd
	return m.result, m.err
}

func TestAuthHandler_CustomerLogin(t *testing.T) {
	uc := &mockCustomerLoginUC{result: &auth.CustomerLoginResult{AccessToken: "ctok", TokenType: "Bearer", ExpiresIn: 3600, CustomerID: 8}}
	h := NewAuthHandler(&mockLoginUC{}, uc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/customers/login", map[string]string{
		"email": "dana@example.com", "password": "secret123",
	})
	h.CustomerLogin(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dana@example.com", uc.got.Email)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var result auth.CustomerLoginResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, uint(8), result.CustomerID)
}

func TestAuthHandler_CustomerLogin_InvalidCredentials(t *testing.T) {
	uc := &mockCustomerLoginUC{err: errors.NewInvalidCredentialsError()}
	h := NewAuthHandler(&mockLoginUC{}, uc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/customers/login", map[string]string{
		"email": "dana@example.com", "password": "wrong",
	})
	h.CustomerLogin(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
