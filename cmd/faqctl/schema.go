package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yanqian/smart-faq/internal/bootstrap"
)

// schemaCmd creates the vector index schema when it does not exist yet.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Ensure the vector index schema exists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		idx, cleanup, err := bootstrap.VectorIndex(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("open vector index: %w", err)
		}
		defer cleanup()
		if err := idx.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema ready (backend=%s dim=%d)\n", cfg.FAQ.IndexBackend, idx.Dimension())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
