package segment

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const tenQ = `<html><body>
<p>Item 1. Financial Statements</p>
<p>The statements are attached.</p>
<p>Item 2. Management's Discussion and Analysis</p>
<p>We expect revenue to grow next quarter.</p>
<p>Item 4. Controls and Procedures</p>
<p>Controls were effective.</p>
<p>SIGNATURES</p>
<p>Signed by the registrant.</p>
</body></html>`

func TestHTMLSegmentItems(t *testing.T) {
	path := writeTemp(t, "filing.html", tenQ)

	sections, err := NewHTML(Rules{}).Segment(path)
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}

	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}
	if !strings.Contains(sections[1].Heading, "Management's Discussion") {
		t.Errorf("section 1 heading = %q", sections[1].Heading)
	}
	if !strings.Contains(sections[1].Text, "expect revenue to grow") {
		t.Errorf("section 1 text = %q", sections[1].Text)
	}
	// Content after SIGNATURES never reaches a section.
	for _, s := range sections {
		if strings.Contains(s.Text, "registrant") {
			t.Errorf("signature block leaked into section %q", s.Heading)
		}
	}
}

func TestHTMLSegmentKeepFilter(t *testing.T) {
	path := writeTemp(t, "filing.html", tenQ)

	rules := Rules{KeepHeadingSubstrings: []string{"management's discussion and analysis"}}
	sections, err := NewHTML(rules).Segment(path)
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}

	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if !strings.Contains(sections[0].Heading, "Item 2.") {
		t.Errorf("heading = %q, want the MD&A item", sections[0].Heading)
	}
}

func TestHTMLSegmentFallback(t *testing.T) {
	path := writeTemp(t, "noitems.html",
		`<html><body><p>No recognizable headers here, just narrative text.</p></body></html>`)

	sections, err := NewHTML(Rules{FallbackWords: 4}).Segment(path)
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}

	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0].Heading != "FULL_DOCUMENT" {
		t.Errorf("heading = %q, want FULL_DOCUMENT", sections[0].Heading)
	}
	if got := len(strings.Fields(sections[0].Text)); got != 4 {
		t.Errorf("fallback word count = %d, want 4", got)
	}
}

func TestHTMLSegmentSkipsTables(t *testing.T) {
	path := writeTemp(t, "tables.html", `<html><body>
<p>Item 2. Outlook</p>
<p>Revenue should improve.</p>
<table><tr><td>1,234,567</td></tr></table>
</body></html>`)

	sections, err := NewHTML(Rules{}).Segment(path)
	if err != nil {
		t.Fatalf("Segment() error: %v", err)
	}
	for _, s := range sections {
		if strings.Contains(s.Text, "1,234,567") {
			t.Error("table content should not appear in section text")
		}
	}
}

func TestSegmentMissingDocument(t *testing.T) {
	_, err := NewHTML(Rules{}).Segment(filepath.Join(t.TempDir(), "absent.html"))
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestForPath(t *testing.T) {
	if _, err := ForPath("report.pdf", Rules{}); err != nil {
		t.Errorf("ForPath(.pdf) error: %v", err)
	}
	if _, err := ForPath("report.HTM", Rules{}); err != nil {
		t.Errorf("ForPath(.HTM) error: %v", err)
	}
	if _, err := ForPath("report.docx", Rules{}); err == nil {
		t.Error("ForPath(.docx) should fail")
	}
}
