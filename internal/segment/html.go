package segment

import (
	"os"
	"regexp"
	"strings"

	"github.com/phuslu/log"
	"golang.org/x/net/html"

	"github.com/catalystscan/catalystscan/internal/model"
)

var (
	itemHeaderPattern = regexp.MustCompile(`(?im)^[ \t]*(item[ \t]+\d+[A-Za-z]?\.?[ \t]+.*)$`)
	signaturesPattern = regexp.MustCompile(`(?im)^[ \t]*SIGNATURES?[ \t]*$`)
)

const defaultFallbackWords = 5000

// HTML segments a regulatory HTML filing by slicing visible text
// between "Item N." headers, stopping at the SIGNATURES marker
type HTML struct {
	rules Rules
}

// NewHTML creates an HTML segmenter with the given rules
func NewHTML(rules Rules) *HTML {
	return &HTML{rules: rules}
}

// Segment parses the document and returns its item sections. A corrupt
// or unparseable document yields an empty list; only a missing path is
// an error.
func (h *HTML) Segment(path string) ([]model.Section, error) {
	if err := statSource(path); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("html: unreadable document, skipping")
		return []model.Section{}, nil
	}

	doc, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("html: parse failed, skipping")
		return []model.Section{}, nil
	}

	text := visibleText(doc)
	sections := h.sliceItems(text)

	if len(sections) == 0 {
		sections = []model.Section{h.fallbackSection(text)}
	}

	return h.rules.Apply(sections), nil
}

// sliceItems cuts the text between consecutive item headers, ending at
// the SIGNATURES marker or end of document
func (h *HTML) sliceItems(text string) []model.Section {
	matches := itemHeaderPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	sigEnd := len(text)
	if loc := signaturesPattern.FindStringIndex(text); loc != nil {
		sigEnd = loc[0]
	}

	var sections []model.Section
	for i, m := range matches {
		heading := strings.TrimSpace(text[m[2]:m[3]])
		start := m[1]
		end := sigEnd
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		if end < start {
			continue
		}
		content := strings.TrimSpace(text[start:end])
		if content == "" || !h.rules.keeps(heading) {
			continue
		}
		sections = append(sections, model.Section{Heading: heading, Text: content})
	}
	return sections
}

// fallbackSection bounds candidate volume when no item headers exist
func (h *HTML) fallbackSection(text string) model.Section {
	limit := h.rules.FallbackWords
	if limit <= 0 {
		limit = defaultFallbackWords
	}
	words := strings.Fields(text)
	if len(words) > limit {
		words = words[:limit]
	}
	return model.Section{Heading: "FULL_DOCUMENT", Text: strings.Join(words, " ")}
}

// visibleText extracts text nodes, skipping non-narrative markup.
// Tables, figures and images carry financial statements and layout the
// prefilter should never see.
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "table", "figure", "img":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString("\n")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
