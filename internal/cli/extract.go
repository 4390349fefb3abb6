package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/catalystscan/catalystscan/internal/model"
	"github.com/catalystscan/catalystscan/internal/pipeline"
)

var (
	exchangeFlag   string
	filingTypeFlag string
	docIDFlag      string
	tickerFlag     string
	filingDateFlag string
	outputDirFlag  string
	timeoutFlag    time.Duration
	noCacheFlag    bool
	providerFlag   string
	modelFlag      string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract catalyst disclosures from a single filing",
	Long: `Extract processes one filing document end to end:
- Segment the PDF or HTML into labeled sections
- Prefilter sentences with the filing type's keyword taxonomy
- Classify candidate batches with the configured language model
- Normalize results into validated catalyst records

Example:
  catalystscan extract annual_report.pdf --exchange ASX --filing-type ANNUAL --ticker BHP --filing-date 2026-06-30
  catalystscan extract 10q.html --exchange SEC --filing-type 10-Q --doc-id ACME_2026-06-30_10Q
  catalystscan extract deck.pdf --exchange ASX --filing-type INVESTOR_PRESENTATION --provider ollama --model llama3`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&exchangeFlag, "exchange", "ASX", "exchange the filing was lodged with (ASX, SEC)")
	extractCmd.Flags().StringVar(&filingTypeFlag, "filing-type", "", "filing type (ANNUAL, QUARTERLY, INVESTOR_PRESENTATION, 10-Q)")
	extractCmd.Flags().StringVar(&docIDFlag, "doc-id", "", "document id (default: derived from ticker or file name)")
	extractCmd.Flags().StringVar(&tickerFlag, "ticker", "", "listing ticker, used to derive the document id")
	extractCmd.Flags().StringVar(&filingDateFlag, "filing-date", "", "filing date, YYYY-MM-DD")
	extractCmd.Flags().StringVar(&outputDirFlag, "output-dir", "", "output directory for result JSON (default: from config)")
	extractCmd.Flags().DurationVar(&timeoutFlag, "timeout", 15*time.Minute, "overall extraction timeout")
	extractCmd.Flags().BoolVar(&noCacheFlag, "no-cache", false, "disable the result cache")

	extractCmd.Flags().StringVar(&providerFlag, "provider", "", "LLM provider (openai, anthropic, ollama)")
	extractCmd.Flags().StringVar(&modelFlag, "model", "", "LLM model name")

	_ = extractCmd.MarkFlagRequired("filing-type")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
	defer cancel()

	filing, err := buildFiling(args[0])
	if err != nil {
		return err
	}

	cfg, err := extractConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	result, err := p.Process(ctx, filing)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	writer, err := pipeline.NewWriter(cfg.Output.Dir)
	if err != nil {
		return err
	}
	path, err := writer.Write(filing, result)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ %s: %d records (%s)\n", filing.DocIDOrStem(), result.Count, result.Status)
	fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	return nil
}

// buildFiling assembles filing metadata from CLI flags
func buildFiling(path string) (model.Filing, error) {
	exchange, err := model.ParseExchange(exchangeFlag)
	if err != nil {
		return model.Filing{}, err
	}
	filingType, err := model.ParseFilingType(filingTypeFlag)
	if err != nil {
		return model.Filing{}, err
	}

	filing := model.Filing{
		DocID:      docIDFlag,
		Exchange:   exchange,
		FilingType: filingType,
		FilingDate: filingDateFlag,
		SourcePath: path,
	}
	if filing.DocID == "" {
		if tickerFlag != "" {
			filing.DocID = model.MakeDocID(tickerFlag, filingDateFlag, filingType)
		} else {
			filing.DocID = filing.DocIDOrStem()
		}
	}
	return filing, nil
}

// extractConfig loads configuration and applies extract's flag overrides
func extractConfig() (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if providerFlag != "" {
		cfg.LLM.Provider = providerFlag
		cfg.LLM.APIKey = "" // re-resolve for the overridden provider
	}
	if modelFlag != "" {
		cfg.LLM.Model = modelFlag
	}
	if outputDirFlag != "" {
		cfg.Output.Dir = outputDirFlag
	}
	if noCacheFlag {
		cfg.Cache.Enabled = false
	}
	if providerFlag != "" {
		if err := resolveAPIKey(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// resolveAPIKey fills the provider credential from the environment
func resolveAPIKey(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
