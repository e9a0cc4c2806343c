package main

import (
	"os"

	"github.com/spf13/cobra"

	"trackd/internal/interfaces/cli/migrate"
	"trackd/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trackd",
		Short: "trackd - an issue tracking service",
		Long:  `trackd is an issue tracking service with per-tracker access control, ticket event logs, notification fan-out, and webhook delivery.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
