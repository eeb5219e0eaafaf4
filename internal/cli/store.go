package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/adyen/ecommerce-e2e/internal/config"
	"github.com/adyen/ecommerce-e2e/internal/database"
	"github.com/adyen/ecommerce-e2e/internal/repository"
	"github.com/adyen/ecommerce-e2e/internal/services"
)

// OpenRunService returns a run service backed by Postgres when
// POSTGRES_HOSTNAME is set, and by memory otherwise. The returned func
// releases the store.
func OpenRunService(getenv func(string) string, log logrus.FieldLogger) (services.RunService, func() error, error) {
	if !config.PostgresConfigured(getenv) {
		log.Debug("POSTGRES_HOSTNAME not set, keeping run results in memory")
		return services.NewRunService(repository.NewMemoryRunRepository()), func() error { return nil }, nil
	}

	pgConfig, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("missing required Postgres configuration: %w", err)
	}
	if err := database.Connect(pgConfig); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.WithField("host", pgConfig.Host).Info("connected to database")

	if err := database.RunMigrations(log); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return services.NewRunService(repository.NewRunRepository()), database.Close, nil
}
