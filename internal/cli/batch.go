package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/catalystscan/catalystscan/internal/pipeline"
	"github.com/catalystscan/catalystscan/internal/summary"
	"github.com/catalystscan/catalystscan/internal/worker"
)

var (
	concurrency  int
	batchOutDir  string
	batchTimeout time.Duration
	batchNoCache bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Extract catalysts from multiple filings in parallel",
	Long: `Batch processes a manifest of filings concurrently:
- Read filings from the manifest, one per line:
    <path>,<exchange>,<filing_type>[,<doc_id>[,<filing_date>]]
- Process documents in parallel with a configurable worker count
- Within a document, classification batches stay sequential
- Write one result JSON per filing plus a run summary

Example:
  catalystscan batch filings.csv
  catalystscan batch filings.csv --concurrency 4 --output-dir ./results`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent documents (default: from config)")
	batchCmd.Flags().StringVar(&batchOutDir, "output-dir", "", "output directory for results (default: from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", time.Hour, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the result cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Documents = concurrency
	}
	if batchOutDir != "" {
		cfg.Output.Dir = batchOutDir
	}
	if batchNoCache {
		cfg.Cache.Enabled = false
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}
	writer, err := pipeline.NewWriter(cfg.Output.Dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "⚙️  Reading manifest %s...\n", manifest)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Documents)
	results, err := processor.ProcessManifest(ctx, manifest)
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processed %d filings with %d workers\n\n", len(results), cfg.Concurrency.Documents)

	builder := summary.NewBuilder()
	failureCount := 0

	for _, result := range results {
		docID := result.Filing.DocIDOrStem()
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", docID, result.Error)
			continue
		}

		builder.Add(result.Result.Records, result.Result.Status == "skipped")
		if _, err := writer.Write(result.Filing, result.Result); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: write result: %v\n", docID, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s: %d records (%s)\n", docID, result.Result.Count, result.Result.Status)
	}

	runSummary := builder.Build()
	if err := writeSummary(cfg.Output.Dir, runSummary); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Documents: %d\n", runSummary.Documents)
	fmt.Fprintf(os.Stderr, "  Records:   %d\n", runSummary.Records)
	fmt.Fprintf(os.Stderr, "  Skipped:   %d\n", runSummary.Skipped)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", cfg.Output.Dir)
	return nil
}

// writeSummary persists the run summary next to the per-filing results
func writeSummary(dir string, s summary.Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	path := dir + "/summary.json"
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	return nil
}
