package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"painting_estimator_backend/platform/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "estimate-cli",
		Short: "Drive intake conversations and price painting estimates offline",
		Long: `estimate-cli runs a transcript through the intake conversation, prices the
collected room against a task catalog and prints the estimate as JSON.`,
		SilenceUsage: true,
	}

	// Global flags
	root.PersistentFlags().String("catalog", "catalog.yaml", "catalog YAML file")
	root.PersistentFlags().String("env", "production", "log mode (development for text logs)")

	root.AddCommand(runCmd())
	root.AddCommand(resolveCmd())
	root.AddCommand(catalogCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cliLogger logs to stderr so stdout carries only results.
func cliLogger(cmd *cobra.Command) *logger.Logger {
	env, _ := cmd.Flags().GetString("env")
	return logger.NewWithWriter(env, cmd.ErrOrStderr())
}
