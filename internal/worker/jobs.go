package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/catalystscan/catalystscan/internal/model"
	"github.com/catalystscan/catalystscan/internal/pipeline"
)

// Processor defines the interface for extracting one filing
type Processor interface {
	Process(ctx context.Context, filing model.Filing) (*pipeline.Result, error)
}

// ExtractJob runs one filing through the pipeline
type ExtractJob struct {
	Filing    model.Filing
	Processor Processor
}

// Execute executes the extraction job
func (j *ExtractJob) Execute(ctx context.Context) Result {
	result, err := j.Processor.Process(ctx, j.Filing)
	return &ExtractResult{
		Filing: j.Filing,
		Result: result,
		Error:  err,
	}
}

// ExtractResult represents the result of an extraction job
type ExtractResult struct {
	Filing model.Filing
	Result *pipeline.Result
	Error  error
}

// GetError returns the error from the extraction result
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple filings concurrently. Concurrency
// applies across documents; within a document batches stay sequential.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessFilings processes multiple filings concurrently
func (b *BatchProcessor) ProcessFilings(ctx context.Context, filings []model.Filing) []*ExtractResult {
	if len(filings) == 0 {
		return []*ExtractResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, f := range filings {
		pool.Submit(&ExtractJob{Filing: f, Processor: b.processor})
	}

	results := pool.Wait()

	extractResults := make([]*ExtractResult, len(results))
	for i, result := range results {
		extractResults[i] = result.(*ExtractResult)
	}
	return extractResults
}

// ProcessManifest reads a filing manifest and processes every entry
func (b *BatchProcessor) ProcessManifest(ctx context.Context, path string) ([]*ExtractResult, error) {
	filings, err := ReadManifest(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return b.ProcessFilings(ctx, filings), nil
}

// ReadManifest reads filings from a manifest file. Each line is
//
//	<path>,<exchange>,<filing_type>[,<doc_id>[,<filing_date>[,<ticker>]]]
//
// A blank doc_id is derived from the ticker and filing date when a
// ticker is present, otherwise from the file name. Empty lines and
// lines starting with # are skipped; duplicate source paths keep the
// first entry.
func ReadManifest(path string) ([]model.Filing, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = file.Close() }()

	var filings []model.Filing
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		filing, err := parseManifestLine(line)
		if err != nil {
			return nil, fmt.Errorf("manifest line %d: %w", lineNum, err)
		}
		if !seen[filing.SourcePath] {
			seen[filing.SourcePath] = true
			filings = append(filings, filing)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}
	return filings, nil
}

func parseManifestLine(line string) (model.Filing, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return model.Filing{}, fmt.Errorf("expected <path>,<exchange>,<filing_type>, got %q", line)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	exchange, err := model.ParseExchange(fields[1])
	if err != nil {
		return model.Filing{}, err
	}
	filingType, err := model.ParseFilingType(fields[2])
	if err != nil {
		return model.Filing{}, err
	}

	filing := model.Filing{
		SourcePath: fields[0],
		Exchange:   exchange,
		FilingType: filingType,
	}
	if len(fields) > 3 && fields[3] != "" {
		filing.DocID = fields[3]
	}
	if len(fields) > 4 && fields[4] != "" {
		filing.FilingDate = fields[4]
	}
	if filing.DocID == "" {
		if len(fields) > 5 && fields[5] != "" {
			filing.DocID = model.MakeDocID(fields[5], filing.FilingDate, filingType)
		} else {
			filing.DocID = filing.DocIDOrStem()
		}
	}
	return filing, nil
}
