package main

import (
	"os"

	"github.com/spf13/cobra"

	"prognosis/internal/interfaces/cli/migrate"
	"prognosis/internal/interfaces/cli/server"
	"prognosis/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prognosis",
		Short: "Prognosis - vehicle diagnostic ticketing service",
		Long:  `Prognosis ingests vehicle diagnostic alerts into support tickets and serves the ticket query API.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
