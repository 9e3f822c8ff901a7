package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/smart-faq/internal/domain/faq"
)

// askCmd answers a single question through the full cache and retrieval path.
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, cleanup, err := newService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		resp, err := svc.Answer(ctx, faq.Request{Question: strings.Join(args, " ")})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
