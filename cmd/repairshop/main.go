package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/garagehq/repairshop/internal/interfaces/cli/migrate"
	"github.com/garagehq/repairshop/internal/interfaces/cli/seed"
	"github.com/garagehq/repairshop/internal/interfaces/cli/server"
)

// @title Repair Shop API
// @version 1.0
// @description Service tickets, catalog and inventory for an auto repair shop.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "repairshop",
		Short: "Repair shop service-ticket API",
		Long:  `repairshop serves the service-ticket HTTP API and ships database migration and fixture tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
