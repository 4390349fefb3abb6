package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Filing identifies one source document to be processed. It is produced
// by the ingestion side and consumed read-only by the pipeline.
type Filing struct {
	DocID      string     `json:"doc_id"`
	Exchange   Exchange   `json:"exchange"`
	FilingType FilingType `json:"filing_type"`
	FilingDate string     `json:"filing_date,omitempty"`
	SourcePath string     `json:"source_path"`
}

// Validate checks the fields the pipeline cannot work without
func (f Filing) Validate() error {
	if f.DocID == "" {
		return fmt.Errorf("filing: doc_id is required")
	}
	if f.Exchange == "" {
		return fmt.Errorf("filing: exchange is required")
	}
	if f.FilingType == "" {
		return fmt.Errorf("filing: filing_type is required")
	}
	return nil
}

// MakeDocID derives a stable document id from listing metadata.
// Missing ticker falls back to "DOC", missing date to today.
func MakeDocID(ticker, filingDate string, filingType FilingType) string {
	t := strings.ToUpper(ticker)
	if t == "" {
		t = "DOC"
	}
	d := filingDate
	if d == "" {
		d = time.Now().Format("2006-01-02")
	}
	ft := strings.ToUpper(string(filingType))
	ft = strings.NewReplacer(" ", "", "/", "").Replace(ft)

	id := fmt.Sprintf("%s_%s_%s", t, d, ft)
	if len(id) > 64 {
		id = id[:64]
	}
	return id
}

// DocIDOrStem returns the filing's doc id, falling back to the source
// file's base name without extension
func (f Filing) DocIDOrStem() string {
	if f.DocID != "" {
		return f.DocID
	}
	base := filepath.Base(f.SourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
