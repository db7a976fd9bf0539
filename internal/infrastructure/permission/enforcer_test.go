package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/garagehq/repairshop/internal/shared/authorization"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	e, err := NewEnforcer(db, logger.NewLogger())
	require.NoError(t, err)
	require.NoError(t, InitDefaultPolicies(e, logger.NewLogger()))
	return e
}

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e := newTestEnforcer(t)

	tests := []struct {
		role, resource, action string
		want                   bool
	}{
		{"mechanic", authorization.ResourceTickets, authorization.ActionWrite, true},
		{"mechanic", authorization.ResourceTickets, authorization.ActionDelete, false},
		{"mechanic", authorization.ResourceInventory, authorization.ActionWrite, false},
		{"manager", authorization.ResourceTickets, authorization.ActionWrite, true},
		{"manager", authorization.ResourceTickets, authorization.ActionDelete, true},
		{"manager", authorization.ResourceEmployees, authorization.ActionWrite, false},
		{"admin", authorization.ResourceEmployees, authorization.ActionWrite, true},
		{"admin", authorization.ResourceTickets, authorization.ActionRead, true},
		{"stranger", authorization.ResourceTickets, authorization.ActionRead, false},
	}
	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.resource+"/"+tt.action, func(t *testing.T) {
			ok, err := e.Allowed(tt.role, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestInitDefaultPolicies_Idempotent(t *testing.T) {
	e := newTestEnforcer(t)
	require.NoError(t, InitDefaultPolicies(e, logger.NewLogger()))
	require.NoError(t, e.LoadPolicy())

	ok, err := e.Allowed("manager", authorization.ResourceCustomers, authorization.ActionDelete)
	require.NoError(t, err)
	assert.True(t, ok)
}
