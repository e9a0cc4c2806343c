package migrate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trackd/internal/infrastructure/config"
	"trackd/internal/infrastructure/database"
	"trackd/internal/infrastructure/migration"
	"trackd/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply the database schema for all registered models.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log.Infow("running migrations", "environment", env, "database", cfg.Database.Database)

	if err := migration.Run(database.Get()); err != nil {
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}
