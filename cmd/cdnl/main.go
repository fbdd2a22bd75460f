// Command cdnl is the CLI entry point wrapping internal/core: solve a
// single instance, serve it over a long-running incremental session, print
// the build version, or benchmark an instance suite.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cdnl",
		Short: "cdnl",
		Long:  `cdnl is a conflict-driven nogood learning solver for normal logic programs compiled to CNF.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newBenchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
