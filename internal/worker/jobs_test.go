package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/catalystscan/catalystscan/internal/model"
	"github.com/catalystscan/catalystscan/internal/pipeline"
)

// fakeProcessor implements Processor
type fakeProcessor struct {
	err error
}

func (f *fakeProcessor) Process(ctx context.Context, filing model.Filing) (*pipeline.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.Result{Records: []model.CatalystDisclosure{}, Status: "ok"}, nil
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filings.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadManifest(t *testing.T) {
	path := writeManifest(t, `# catalyst filings
/data/acme_annual.pdf, ASX, ANNUAL, ACME_2026_ANNUAL, 2026-06-30

/data/acme_10q.html, SEC, 10-Q
/data/acme_annual.pdf, ASX, ANNUAL
`)

	filings, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest() error: %v", err)
	}

	// Comment and blank lines are skipped, the duplicate path keeps the
	// first entry.
	if len(filings) != 2 {
		t.Fatalf("got %d filings, want 2", len(filings))
	}

	first := filings[0]
	if first.DocID != "ACME_2026_ANNUAL" || first.FilingDate != "2026-06-30" {
		t.Errorf("first filing = %+v", first)
	}
	if first.Exchange != model.ExchangeASX || first.FilingType != model.FilingASXAnnual {
		t.Errorf("first filing dispatch pair = (%s, %s)", first.Exchange, first.FilingType)
	}

	second := filings[1]
	if second.FilingType != model.FilingSEC10Q {
		t.Errorf("10-Q synonym resolved to %q", second.FilingType)
	}
	if second.DocID != "acme_10q" {
		t.Errorf("default doc_id = %q, want file stem", second.DocID)
	}
}

func TestReadManifestTickerDerivesDocID(t *testing.T) {
	path := writeManifest(t, `/data/q3.pdf, ASX, QUARTERLY, , 2026-09-30, bhp
/data/deck.pdf, ASX, INVESTOR_PRESENTATION, DECK_77, 2026-09-30, bhp
`)

	filings, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest() error: %v", err)
	}
	if len(filings) != 2 {
		t.Fatalf("got %d filings, want 2", len(filings))
	}

	if filings[0].DocID != "BHP_2026-09-30_QUARTERLY" {
		t.Errorf("derived doc_id = %q, want BHP_2026-09-30_QUARTERLY", filings[0].DocID)
	}
	// An explicit doc_id wins over the ticker.
	if filings[1].DocID != "DECK_77" {
		t.Errorf("doc_id = %q, want DECK_77", filings[1].DocID)
	}
}

func TestReadManifestBadLine(t *testing.T) {
	for _, content := range []string{
		"/data/a.pdf, ASX\n",
		"/data/a.pdf, NYSE, ANNUAL\n",
		"/data/a.pdf, ASX, 8-K\n",
	} {
		path := writeManifest(t, content)
		if _, err := ReadManifest(path); err == nil {
			t.Errorf("ReadManifest(%q) should fail", content)
		}
	}
}

func TestProcessFilings(t *testing.T) {
	filings := []model.Filing{
		{DocID: "A", Exchange: model.ExchangeASX, FilingType: model.FilingASXAnnual, SourcePath: "a.pdf"},
		{DocID: "B", Exchange: model.ExchangeASX, FilingType: model.FilingASXAnnual, SourcePath: "b.pdf"},
		{DocID: "C", Exchange: model.ExchangeASX, FilingType: model.FilingASXAnnual, SourcePath: "c.pdf"},
	}

	results := NewBatchProcessor(&fakeProcessor{}, 2).ProcessFilings(context.Background(), filings)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("%s: unexpected error: %v", r.Filing.DocID, r.GetError())
		}
	}
}

func TestProcessFilingsErrorsCarried(t *testing.T) {
	wantErr := errors.New("dispatch failed")
	filings := []model.Filing{
		{DocID: "A", Exchange: model.ExchangeASX, FilingType: model.FilingASXAnnual, SourcePath: "a.pdf"},
	}

	results := NewBatchProcessor(&fakeProcessor{err: wantErr}, 1).ProcessFilings(context.Background(), filings)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if !errors.Is(results[0].GetError(), wantErr) {
		t.Errorf("err = %v, want %v", results[0].GetError(), wantErr)
	}
}

func TestProcessFilingsEmpty(t *testing.T) {
	results := NewBatchProcessor(&fakeProcessor{}, 4).ProcessFilings(context.Background(), nil)
	if results == nil || len(results) != 0 {
		t.Errorf("results = %v, want empty non-nil", results)
	}
}
