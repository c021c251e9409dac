package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.eggybyte.com/genex/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show genex version information",
	// Printing the version needs neither configuration nor a logger.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersionInfo())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = version.GetVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}
