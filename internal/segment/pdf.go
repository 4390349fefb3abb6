package segment

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/phuslu/log"

	"github.com/catalystscan/catalystscan/internal/model"
)

// yTolerance groups glyphs into the same visual line
const yTolerance = 2.0

// PDF segments a filing by layout: lines set in a larger font than the
// document's body text are treated as section titles, and narrative
// lines accumulate under the current title
type PDF struct {
	rules Rules
}

// NewPDF creates a PDF segmenter with the given rules
func NewPDF(rules Rules) *PDF {
	return &PDF{rules: rules}
}

// Segment parses the document into heading-labeled sections. A corrupt
// PDF yields an empty list; only a missing path is an error.
func (p *PDF) Segment(path string) ([]model.Section, error) {
	if err := statSource(path); err != nil {
		return nil, err
	}

	lines, err := readLines(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("pdf: unreadable document, skipping")
		return []model.Section{}, nil
	}
	if len(lines) == 0 {
		return []model.Section{}, nil
	}

	body := dominantFontSize(lines)

	var (
		sections []model.Section
		current  []string
		heading  = "Unknown"
	)
	flush := func() {
		if len(current) > 0 {
			sections = append(sections, model.Section{Heading: heading, Text: strings.Join(current, "\n")})
			current = nil
		}
	}

	for _, ln := range lines {
		text := strings.TrimSpace(ln.text)
		if text == "" {
			continue
		}
		if isTitle(text, ln.size, body) {
			flush()
			heading = text
		} else {
			current = append(current, text)
		}
	}
	flush()

	return p.rules.Apply(sections), nil
}

type pdfLine struct {
	text string
	size float64
}

// readLines extracts visual lines in reading order across all pages.
// The pdf library panics on some malformed streams, so extraction runs
// behind a recover.
func readLines(path string) (lines []pdfLine, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = fmt.Errorf("panic during pdf extraction: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		lines = append(lines, pageLines(page.Content().Text)...)
	}
	return lines, nil
}

// pageLines sorts glyphs top-to-bottom, left-to-right and groups them
// by baseline
func pageLines(texts []pdf.Text) []pdfLine {
	if len(texts) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > yTolerance {
			return sorted[i].Y > sorted[j].Y // PDF origin is bottom-left
		}
		return sorted[i].X < sorted[j].X
	})

	var (
		lines   []pdfLine
		buf     strings.Builder
		curY    = sorted[0].Y
		curSize = sorted[0].FontSize
	)
	flush := func() {
		if buf.Len() > 0 {
			lines = append(lines, pdfLine{text: buf.String(), size: curSize})
			buf.Reset()
		}
	}

	for _, t := range sorted {
		if math.Abs(t.Y-curY) > yTolerance {
			flush()
			curY = t.Y
			curSize = t.FontSize
		}
		if t.FontSize > curSize {
			curSize = t.FontSize
		}
		buf.WriteString(t.S)
	}
	flush()
	return lines
}

// dominantFontSize finds the most frequent size, which is taken as the
// body text size
func dominantFontSize(lines []pdfLine) float64 {
	counts := make(map[float64]int)
	for _, ln := range lines {
		counts[math.Round(ln.size*2)/2]++
	}
	var best float64
	bestCount := -1
	for size, count := range counts {
		if count > bestCount || (count == bestCount && size < best) {
			best = size
			bestCount = count
		}
	}
	return best
}

// isTitle classifies a line as a section title: short, larger than
// body text or fully capitalized, and not a running sentence
func isTitle(text string, size, body float64) bool {
	words := strings.Fields(text)
	if len(words) == 0 || len(words) > 12 || len(text) > 90 {
		return false
	}
	if strings.HasSuffix(text, ".") {
		return false
	}
	if size > body+0.5 {
		return true
	}
	return isAllCaps(text)
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
