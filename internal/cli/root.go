// Package cli wires the pkid command tree, adapted from the teacher's
// cobra-based internal/cli package.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "pkid",
	Short: "pkid - Token Curated Registry and Root-of-Trust registry harness",
	Long: `pkid wires a Token Curated Registry engine and a Root-of-Trust
registry engine over an in-memory ledger for local experimentation. It is
not a node: there is no networking, consensus, or RPC surface here.`,
	Version: "0.1.0-dev",
}

// Execute runs the root command. Called once from cmd/pkid/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path (TOML)")
}
