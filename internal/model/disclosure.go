package model

import (
	"fmt"
	"strings"
)

// Entity is an unvalidated pass-through of an entity string the
// classifier attached to a sentence
type Entity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Text  string `json:"text"`
}

// NewEntity wraps a raw entity string in the standard triple
func NewEntity(value string) Entity {
	return Entity{Type: "entity", Value: value, Text: value}
}

// Section is one labeled slice of a source document. The heading is
// used only for filtering and stop detection, never persisted.
type Section struct {
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// CatalystDisclosure is the terminal record of the pipeline: one
// validated forward-looking statement with its classification metadata.
// Records are immutable after construction.
type CatalystDisclosure struct {
	DocID      string     `json:"doc_id"`
	Exchange   Exchange   `json:"exchange"`
	FilingType FilingType `json:"filing_type"`
	FilingDate string     `json:"filing_date,omitempty"`
	SourceFile string     `json:"source_file,omitempty"`

	SentenceID     string `json:"sentence_id"`
	Text           string `json:"text"`
	ForwardLooking bool   `json:"forward_looking"`

	ForecastType ForecastType `json:"forecast_type"`
	Tone         Tone         `json:"tone"`
	Impact       Impact       `json:"impact"`
	Score        int          `json:"score"`

	CategoriesMatched []string `json:"categories_matched"`
	Entities          []Entity `json:"entities"`
	Flag              string   `json:"flag,omitempty"`
}

// NewCatalystDisclosure validates and constructs a record. Text is
// whitespace-normalized and matched categories are deduplicated in
// insertion order. A score outside [1,10] fails construction.
func NewCatalystDisclosure(d CatalystDisclosure) (CatalystDisclosure, error) {
	if d.Score < 1 || d.Score > 10 {
		return CatalystDisclosure{}, fmt.Errorf("score out of range [1,10]: %d", d.Score)
	}
	if d.SentenceID == "" {
		return CatalystDisclosure{}, fmt.Errorf("sentence_id is required")
	}
	d.Text = CleanText(d.Text)
	d.CategoriesMatched = dedupeStrings(d.CategoriesMatched)
	d.ForwardLooking = true
	if d.Flag == "" {
		d.Flag = "ok"
	}
	return d, nil
}

// TextPreview truncates long sentences for display and storage,
// leaving the in-memory record intact
func (d CatalystDisclosure) TextPreview() string {
	s := strings.TrimSpace(d.Text)
	if len(s) > 400 {
		return s[:380] + "..."
	}
	return s
}

// CleanText joins non-blank lines with single spaces, squashing the
// newline and tab runs PDF extraction tends to leave behind
func CleanText(v string) string {
	if v == "" {
		return ""
	}
	var parts []string
	for _, line := range strings.Split(v, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}

func dedupeStrings(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
