package main

import (
	"fmt"

	"github.com/spf13/cobra"

	catalogrepo "painting_estimator_backend/internal/catalog/repository"
	"painting_estimator_backend/platform/db"
	"painting_estimator_backend/platform/validator"
)

type databaseConfig struct{ url string }

func (c databaseConfig) GetDatabaseURL() string  { return c.url }
func (c databaseConfig) IsDatabaseEnabled() bool { return c.url != "" }

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the task catalog",
	}

	cmd.AddCommand(catalogImportCmd())
	return cmd
}

func catalogImportCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the Postgres catalog with the contents of a YAML file",
		Long: `Validates the YAML catalog, applies pending migrations and replaces every
row of catalog_tasks in one transaction.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalogPath, _ := cmd.Flags().GetString("catalog")
			log := cliLogger(cmd)
			ctx := cmd.Context()
			val := validator.New()

			records, err := catalogrepo.NewFileSource(catalogPath, val).Load(ctx)
			if err != nil {
				return err
			}

			pool, err := db.NewPool(ctx, databaseConfig{url: databaseURL})
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			applied, err := db.RunMigrations(ctx, pool)
			if err != nil {
				return err
			}
			log.Info("database migrations complete", "applied", applied)

			if err := catalogrepo.New(pool, val).Replace(ctx, records); err != nil {
				return err
			}
			log.Info("catalog imported", "records", len(records), "source", catalogPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres connection URL")
	_ = cmd.MarkFlagRequired("database-url")
	return cmd
}
