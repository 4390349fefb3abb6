// Package segment turns a raw filing document into an ordered list of
// labeled sections. Segmenters are deterministic for a fixed input and
// rule set and never call the remote model.
package segment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/catalystscan/catalystscan/internal/model"
)

// ErrDocumentNotFound is returned when the source path does not exist.
// This is the only fatal segmentation error; unreadable or corrupt
// documents yield an empty section list instead.
var ErrDocumentNotFound = errors.New("document not found")

// Segmenter splits one document into ordered sections
type Segmenter interface {
	Segment(path string) ([]model.Section, error)
}

// ForPath selects a segmenter by file extension
func ForPath(path string, rules Rules) (Segmenter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPDF(rules), nil
	case ".html", ".htm":
		return NewHTML(rules), nil
	default:
		return nil, fmt.Errorf("unsupported document format: %s", filepath.Ext(path))
	}
}

// statSource maps a missing path to ErrDocumentNotFound
func statSource(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}
