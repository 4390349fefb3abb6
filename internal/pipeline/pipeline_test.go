package pipeline

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/catalystscan/catalystscan/internal/classify"
	"github.com/catalystscan/catalystscan/internal/llm"
	"github.com/catalystscan/catalystscan/internal/model"
	"github.com/catalystscan/catalystscan/internal/strategy"
)

var numberedLine = regexp.MustCompile(`(?m)^\d+\. (.+)$`)

// echoProvider returns every numbered sentence in the prompt as a kept
// item, so record counts mirror candidate counts deterministically
type echoProvider struct {
	calls int
	fail  bool
}

func (p *echoProvider) Name() string { return "echo" }

func (p *echoProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *echoProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.calls++
	if p.fail {
		return nil, errors.New("echo provider down")
	}

	var items []map[string]interface{}
	for _, m := range numberedLine.FindAllStringSubmatch(req.Prompt, -1) {
		items = append(items, map[string]interface{}{
			"text":          m[1],
			"impact":        "HIGH",
			"tone":          "positive",
			"forecast_type": "guidance",
			"score":         8,
		})
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return &llm.CompletionResponse{Text: string(data), Model: "echo"}, nil
}

func testPipeline(t *testing.T, provider llm.Provider) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Classify.CallDelay = time.Millisecond
	cfg.Classify.RetryDelay = time.Millisecond

	stage := classify.NewStage(provider, cfg.Classify)
	return NewPipelineWith(strategy.NewRegistry(), stage, nil, cfg)
}

func writeFilingHTML(t *testing.T, sentences int) model.Filing {
	t.Helper()
	var b strings.Builder
	b.WriteString("<html><body><p>Item 2. Management's Discussion and Analysis</p>")
	for i := 0; i < sentences; i++ {
		fmt.Fprintf(&b, "<p>The company expects project %d to deliver growth. </p>", i)
	}
	b.WriteString("</body></html>")

	path := filepath.Join(t.TempDir(), "10q.html")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return model.Filing{
		DocID:      "ACME_2026-06-30_10Q",
		Exchange:   model.ExchangeSEC,
		FilingType: model.FilingSEC10Q,
		SourcePath: path,
	}
}

func TestProcessEndToEnd(t *testing.T) {
	provider := &echoProvider{}
	p := testPipeline(t, provider)

	result, err := p.Process(context.Background(), writeFilingHTML(t, 12))
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}

	if result.Status != "ok" {
		t.Errorf("status = %q, want ok", result.Status)
	}
	if result.Count != 12 || len(result.Records) != 12 {
		t.Fatalf("count = %d, records = %d, want 12", result.Count, len(result.Records))
	}
	// 12 candidates plan to 2 batches.
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls)
	}

	for i, rec := range result.Records {
		if want := fmt.Sprintf("s%d", i+1); rec.SentenceID != want {
			t.Errorf("record %d sentence_id = %q, want %q", i, rec.SentenceID, want)
		}
		if rec.ForecastType != model.ForecastHints {
			// SEC strategy maps unmatched free-text labels to HINTS and
			// has no guidance substring rule.
			t.Errorf("record %d forecast_type = %v, want HINTS", i, rec.ForecastType)
		}
		if rec.DocID != "ACME_2026-06-30_10Q" {
			t.Errorf("record %d doc_id = %q", i, rec.DocID)
		}
	}
}

func writeAnnualHTML(t *testing.T, sentences int) model.Filing {
	t.Helper()
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < sentences; i++ {
		fmt.Fprintf(&b, "<p>The board expects to issue updated production guidance for project %d. </p>", i)
	}
	b.WriteString("</body></html>")

	path := filepath.Join(t.TempDir(), "annual.html")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return model.Filing{
		DocID:      "ACME_2026-06-30_ANNUAL",
		Exchange:   model.ExchangeASX,
		FilingType: model.FilingASXAnnual,
		SourcePath: path,
	}
}

func TestProcessAnnualGuidanceEndToEnd(t *testing.T) {
	provider := &echoProvider{}
	p := testPipeline(t, provider)

	result, err := p.Process(context.Background(), writeAnnualHTML(t, 12))
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}

	if result.Status != "ok" {
		t.Errorf("status = %q, want ok", result.Status)
	}
	if result.Count != 12 || len(result.Records) != 12 {
		t.Fatalf("count = %d, records = %d, want 12", result.Count, len(result.Records))
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls)
	}

	for i, rec := range result.Records {
		if want := fmt.Sprintf("s%d", i+1); rec.SentenceID != want {
			t.Errorf("record %d sentence_id = %q, want %q", i, rec.SentenceID, want)
		}
		// The annual variant maps "guidance" labels to the enum directly.
		if rec.ForecastType != model.ForecastGuidance {
			t.Errorf("record %d forecast_type = %v, want GUIDANCE", i, rec.ForecastType)
		}
	}
}

func TestProcessBatchFailureYieldsNoItems(t *testing.T) {
	p := testPipeline(t, &echoProvider{fail: true})

	result, err := p.Process(context.Background(), writeFilingHTML(t, 4))
	if err != nil {
		t.Fatalf("Process() error: %v, batch failures must not propagate", err)
	}
	if result.Status != "no_items" {
		t.Errorf("status = %q, want no_items", result.Status)
	}
	if len(result.Records) != 0 {
		t.Errorf("records = %d, want 0", len(result.Records))
	}
}

func TestProcessMissingDocumentSkips(t *testing.T) {
	p := testPipeline(t, &echoProvider{})

	filing := model.Filing{
		DocID:      "GONE",
		Exchange:   model.ExchangeSEC,
		FilingType: model.FilingSEC10Q,
		SourcePath: filepath.Join(t.TempDir(), "absent.html"),
	}

	result, err := p.Process(context.Background(), filing)
	if err != nil {
		t.Fatalf("Process() error: %v, missing documents must not propagate", err)
	}
	if result.Status != "skipped" {
		t.Errorf("status = %q, want skipped", result.Status)
	}
	if result.Records == nil {
		t.Error("records must never be nil")
	}
}

func TestProcessNoStrategyPropagates(t *testing.T) {
	p := testPipeline(t, &echoProvider{})

	filing := model.Filing{
		DocID:      "X",
		Exchange:   model.ExchangeASX,
		FilingType: model.FilingSEC10Q, // not a registered pair
		SourcePath: "whatever.pdf",
	}

	_, err := p.Process(context.Background(), filing)
	if !errors.Is(err, strategy.ErrNoStrategy) {
		t.Errorf("err = %v, want ErrNoStrategy", err)
	}
}

func TestProcessInvalidFiling(t *testing.T) {
	p := testPipeline(t, &echoProvider{})

	_, err := p.Process(context.Background(), model.Filing{SourcePath: "x.pdf"})
	if err == nil {
		t.Error("Process() with incomplete filing metadata should fail")
	}
}

func TestWriterTruncatesLongText(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatal(err)
	}

	rec, err := model.NewCatalystDisclosure(model.CatalystDisclosure{
		DocID:      "LONG",
		SentenceID: "s1",
		Score:      5,
		Text:       strings.Repeat("y", 600),
	})
	if err != nil {
		t.Fatal(err)
	}

	filing := model.Filing{DocID: "LONG", Exchange: model.ExchangeASX, FilingType: model.FilingASXAnnual}
	path, err := w.Write(filing, &Result{Records: []model.CatalystDisclosure{rec}, Count: 1, Status: "ok"})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Records []struct {
			RecordID string `json:"record_id"`
			Text     string `json:"text"`
		} `json:"records"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(doc.Records))
	}
	if len(doc.Records[0].Text) != 383 || !strings.HasSuffix(doc.Records[0].Text, "...") {
		t.Errorf("stored text length = %d, want truncated preview", len(doc.Records[0].Text))
	}

	// The id is derived from the full sentence text, not the stored preview.
	sum := sha1.Sum([]byte("LONG|s1|" + strings.Repeat("y", 600)))
	if want := hex.EncodeToString(sum[:]); doc.Records[0].RecordID != want {
		t.Errorf("record_id = %q, want %q", doc.Records[0].RecordID, want)
	}
}
