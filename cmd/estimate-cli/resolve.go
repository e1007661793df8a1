package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	catalogrepo "painting_estimator_backend/internal/catalog/repository"
	catalogsvc "painting_estimator_backend/internal/catalog/service"
	"painting_estimator_backend/platform/validator"
)

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <phrase>",
		Short: "Show how a spoken phrase maps to the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogPath, _ := cmd.Flags().GetString("catalog")
			ctx := cmd.Context()

			ix, err := catalogrepo.LoadIndex(ctx, catalogrepo.NewFileSource(catalogPath, validator.New()))
			if err != nil {
				return err
			}

			res, err := catalogsvc.New(ix, cliLogger(cmd)).Resolve(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}
