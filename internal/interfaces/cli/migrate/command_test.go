package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garagehq/repairshop/internal/infrastructure/config"
)

func TestGooseStrategy_RejectsSQLite(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"

	strategy, err := gooseStrategy(cfg)
	assert.Nil(t, strategy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only supported for mysql")
}

func TestGooseStrategy_MySQL(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = "mysql"

	strategy, err := gooseStrategy(cfg)
	require.NoError(t, err)
	assert.Equal(t, "goose", strategy.GetName())
}

func TestNewCommand_Subcommands(t *testing.T) {
	cmd := NewCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down", "status", "create"}, names)
}
