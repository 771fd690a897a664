package main

import (
	"os"

	"github.com/spf13/cobra"

	"beacon/internal/interfaces/cli/migrate"
	"beacon/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "beacon",
		Short: "Beacon - influencer outreach campaign backend",
		Long:  `Beacon is the campaign assistant backend with built-in server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
