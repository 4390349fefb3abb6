package segment

import (
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestPageLinesGrouping(t *testing.T) {
	// Two visual lines: a title at Y=700 in 14pt, body glyphs at Y=684
	// in 10pt, deliberately out of X order.
	texts := []pdf.Text{
		{S: "growth.", X: 120, Y: 684, FontSize: 10},
		{S: "Outlook", X: 50, Y: 700, FontSize: 14},
		{S: "We expect ", X: 50, Y: 684, FontSize: 10},
		{S: " and Guidance", X: 110, Y: 700, FontSize: 14},
	}

	lines := pageLines(texts)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].text != "Outlook and Guidance" {
		t.Errorf("line 0 = %q", lines[0].text)
	}
	if lines[1].text != "We expect growth." {
		t.Errorf("line 1 = %q", lines[1].text)
	}
	if lines[0].size != 14 || lines[1].size != 10 {
		t.Errorf("sizes = %v, %v", lines[0].size, lines[1].size)
	}
}

func TestDominantFontSize(t *testing.T) {
	lines := []pdfLine{
		{size: 10.1}, {size: 9.9}, {size: 10.0},
		{size: 14}, {size: 10.2},
	}
	// Rounded to the nearest half point, 10.0 dominates.
	if got := dominantFontSize(lines); got != 10.0 {
		t.Errorf("dominantFontSize() = %v, want 10.0", got)
	}
}

func TestIsTitle(t *testing.T) {
	tests := []struct {
		text string
		size float64
		body float64
		want bool
	}{
		{"Outlook and Guidance", 14, 10, true},
		{"OPERATIONS REVIEW", 10, 10, true},               // all caps at body size
		{"We expect growth next year.", 14, 10, false},    // trailing period
		{"We expect growth", 10, 10, false},               // body size, mixed case
		{"A line that rambles on with far too many words to plausibly be a heading at all", 14, 10, false},
	}

	for _, tt := range tests {
		if got := isTitle(tt.text, tt.size, tt.body); got != tt.want {
			t.Errorf("isTitle(%q, %v, %v) = %v, want %v", tt.text, tt.size, tt.body, got, tt.want)
		}
	}
}

func TestPDFSegmentMissingDocument(t *testing.T) {
	_, err := NewPDF(Rules{}).Segment(filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Error("expected error for missing document")
	}
}

func TestPDFSegmentCorruptDocument(t *testing.T) {
	path := writeTemp(t, "corrupt.pdf", "not a pdf at all")

	sections, err := NewPDF(Rules{}).Segment(path)
	if err != nil {
		t.Fatalf("corrupt document must not error, got %v", err)
	}
	if len(sections) != 0 {
		t.Errorf("sections = %v, want empty", sections)
	}
}
