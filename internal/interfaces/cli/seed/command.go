package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	catalogApp "github.com/garagehq/repairshop/internal/application/catalog"
	"github.com/garagehq/repairshop/internal/infrastructure/auth"
	"github.com/garagehq/repairshop/internal/infrastructure/config"
	"github.com/garagehq/repairshop/internal/infrastructure/database"
	"github.com/garagehq/repairshop/internal/infrastructure/migration"
	"github.com/garagehq/repairshop/internal/infrastructure/repository"
	"github.com/garagehq/repairshop/internal/infrastructure/seed"
	"github.com/garagehq/repairshop/internal/shared/constants"
	shareddb "github.com/garagehq/repairshop/internal/shared/db"
	"github.com/garagehq/repairshop/internal/shared/logger"
)

const defaultFixtureFile = "configs/seed.yaml"

var (
	env  string
	file string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load catalog fixtures",
		Long:  `Create customers, employees, services and inventory from a YAML fixture file. Records that already exist are skipped.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&file, "file", "f", defaultFixtureFile, "Path to the fixture file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	fixtures, err := seed.LoadFile(file)
	if err != nil {
		return err
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close(db)

	if err := migration.NewManager(db, false).Migrate(db); err != nil {
		return err
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	stockRepo := repository.NewInventoryRepository(db)

	seeder := seed.NewSeeder(
		catalogApp.NewCustomerService(
			repository.NewCustomerRepository(db),
			repository.NewServiceTicketRepository(db),
			shareddb.NewTransactionManager(db),
			hasher,
			log,
		),
		catalogApp.NewEmployeeService(repository.NewEmployeeRepository(db), hasher, log),
		catalogApp.NewServiceCatalog(repository.NewServiceRepository(db), log),
		catalogApp.NewInventoryService(stockRepo, log),
		catalogApp.NewPartService(repository.NewSerializedPartRepository(db), stockRepo, log),
		log.Named("seed"),
	)

	summary, err := seeder.Run(cmd.Context(), fixtures)
	if err != nil {
		return fmt.Errorf("seeding failed after %d records: %w", summary.Created, err)
	}

	log.Infow("seeding completed", "file", file, "created", summary.Created, "skipped", summary.Skipped)
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s: %d created, %d skipped\n", file, summary.Created, summary.Skipped)
	return nil
}
