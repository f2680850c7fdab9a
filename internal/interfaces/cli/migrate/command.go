package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"prognosis/internal/infrastructure/config"
	"prognosis/internal/infrastructure/database"
	"prognosis/internal/infrastructure/migration"
	"prognosis/internal/infrastructure/persistence/seeds"
	"prognosis/internal/shared/logger"
)

var (
	env          string
	strategyName string
	steps        int
	seedFile     string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and seeding master data.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&strategyName, "strategy", "s", "", "Migration strategy (automigrate, golang-migrate, goose); defaults by environment")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed master data",
		Long:  `Load customer and error code master data from a YAML seed file. Existing rows are left untouched.`,
		RunE:  runSeed,
	}

	cmd.Flags().StringVarP(&seedFile, "file", "f", "./configs/seeds.yaml", "Path to the seed file")

	return cmd
}

func initEnv() (logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return log, nil
}

// selectStrategy resolves the --strategy flag, falling back to the
// environment default from the migration manager.
func selectStrategy() (migration.Strategy, error) {
	switch strategyName {
	case "":
		return migration.NewManager(env).GetStrategy(), nil
	case "automigrate":
		return migration.NewGormAutoMigrateStrategy(), nil
	case "golang-migrate":
		scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts")
		if err != nil {
			return nil, fmt.Errorf("failed to get scripts path: %w", err)
		}
		return migration.NewGolangMigrateStrategy(scriptsPath), nil
	case "goose":
		scriptsPath, err := filepath.Abs("./internal/infrastructure/migration/scripts/goose")
		if err != nil {
			return nil, fmt.Errorf("failed to get scripts path: %w", err)
		}
		return migration.NewGooseStrategy(scriptsPath), nil
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", strategyName)
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := selectStrategy()
	if err != nil {
		return err
	}

	log.Info("running up migrations", "environment", env, "strategy", strategy.GetName())

	if err := strategy.Migrate(database.Get()); err != nil {
		log.Error("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := selectStrategy()
	if err != nil {
		return err
	}

	log.Info("running down migrations", "environment", env, "steps", steps)

	switch s := strategy.(type) {
	case *migration.GooseStrategy:
		if err := s.MigrateDown(database.Get(), steps); err != nil {
			log.Error("down migration failed", "error", err)
			return fmt.Errorf("down migration failed: %w", err)
		}
	case *migration.GolangMigrateStrategy:
		if err := s.MigrateDown(database.Get(), steps); err != nil {
			log.Error("down migration failed", "error", err)
			return fmt.Errorf("down migration failed: %w", err)
		}
	default:
		return fmt.Errorf("down migration is not supported with strategy %q", strategy.GetName())
	}

	log.Info("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := selectStrategy()
	if err != nil {
		return err
	}

	gooseStrategy, ok := strategy.(*migration.GooseStrategy)
	if !ok {
		return fmt.Errorf("status check is only supported with the goose strategy")
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment: %s\n", env)

	if err := gooseStrategy.Status(database.Get()); err != nil {
		log.Error("failed to get migration status", "error", err)
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Info("seeding master data", "file", seedFile)

	seed, err := seeds.Load(seedFile)
	if err != nil {
		log.Error("failed to load seed file", "error", err)
		return err
	}

	if err := seeds.Apply(database.Get(), seed); err != nil {
		log.Error("failed to apply seeds", "error", err)
		return err
	}

	log.Info("master data seeded successfully")
	return nil
}
