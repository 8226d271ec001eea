package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NodleCode/PKI/internal/config"
	"github.com/NodleCode/PKI/internal/harness"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "build the engines from config, restore the last checkpoint, and report status",
	RunE:  runE,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runE(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}

	h, err := harness.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	restored, err := h.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("loading checkpoint: %w", err)
	}
	if restored {
		fmt.Fprintln(cmd.OutOrStdout(), "restored state from the last checkpoint")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "starting from empty state")
	}

	if err := h.SaveSnapshot(ctx); err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "checkpoint written; engines ready")
	return nil
}
