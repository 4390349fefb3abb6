package pipeline

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/catalystscan/catalystscan/internal/model"
)

// Writer persists extraction results as one JSON document per filing
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir, creating it if needed
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// outputDocument is the on-disk shape of one filing's results
type outputDocument struct {
	DocID       string         `json:"doc_id"`
	Exchange    model.Exchange `json:"exchange"`
	FilingType  string         `json:"filing_type"`
	GeneratedAt time.Time      `json:"generated_at"`
	Status      string         `json:"status"`
	Count       int            `json:"count"`
	Records     []outputRecord `json:"records"`
}

// outputRecord wraps a disclosure with a stable id and truncates long
// sentence text for storage
type outputRecord struct {
	RecordID string `json:"record_id"`
	model.CatalystDisclosure
}

// Write stores one filing's result as <doc_id>.json and returns the
// written path
func (w *Writer) Write(filing model.Filing, result *Result) (string, error) {
	doc := outputDocument{
		DocID:       filing.DocIDOrStem(),
		Exchange:    filing.Exchange,
		FilingType:  string(filing.FilingType),
		GeneratedAt: time.Now().UTC(),
		Status:      result.Status,
		Count:       result.Count,
		Records:     make([]outputRecord, 0, len(result.Records)),
	}
	for _, rec := range result.Records {
		// The id covers the full sentence text; truncation is storage-only.
		id := recordID(rec)
		rec.Text = rec.TextPreview()
		doc.Records = append(doc.Records, outputRecord{
			RecordID:           id,
			CatalystDisclosure: rec,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	path := filepath.Join(w.dir, doc.DocID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}
	return path, nil
}

// recordID derives a stable identifier from the fields that make a
// record unique within a run
func recordID(rec model.CatalystDisclosure) string {
	h := sha1.Sum([]byte(rec.DocID + "|" + rec.SentenceID + "|" + rec.Text))
	return hex.EncodeToString(h[:])
}
