package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanqian/smart-faq/internal/domain/faq"
	"github.com/yanqian/smart-faq/internal/infra/corpus"
)

var (
	ingestFile   string
	ingestObject string
)

// ingestCmd loads question/answer pairs from a local file or object storage.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Embed and store FAQ records",
	Long:  `Reads a JSON array of {"question", "answer"} items from --file or --object and writes them to the vector index.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (ingestFile == "") == (ingestObject == "") {
			return errors.New("exactly one of --file or --object is required")
		}
		ctx := cmd.Context()
		svc, cleanup, err := newService(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		var report faq.IngestReport
		if ingestObject != "" {
			report, err = svc.IngestFromObject(ctx, ingestObject)
		} else {
			report, err = ingestLocal(cmd, svc)
		}
		if err != nil {
			return err
		}
		if err := printJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if report.Failed > 0 {
			return fmt.Errorf("%d of %d items failed", report.Failed, len(report.Items))
		}
		return nil
	},
}

func ingestLocal(cmd *cobra.Command, svc faq.Service) (faq.IngestReport, error) {
	f, err := os.Open(ingestFile)
	if err != nil {
		return faq.IngestReport{}, err
	}
	defer f.Close()
	items, err := corpus.DecodeItems(f)
	if err != nil {
		return faq.IngestReport{}, fmt.Errorf("decode %s: %w", ingestFile, err)
	}
	return svc.Ingest(cmd.Context(), items)
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "local JSON file")
	ingestCmd.Flags().StringVar(&ingestObject, "object", "", "object key in the configured bucket")
	rootCmd.AddCommand(ingestCmd)
}
