// Package strategy bundles everything that varies per (exchange,
// filing type): segmentation rules, keyword taxonomy, prompt template
// and normalization defaults. The pipeline itself is a single
// parametrized flow; variants are data, not code.
package strategy

import (
	"fmt"
	"strings"

	"github.com/catalystscan/catalystscan/internal/model"
	"github.com/catalystscan/catalystscan/internal/normalize"
	"github.com/catalystscan/catalystscan/internal/prefilter"
	"github.com/catalystscan/catalystscan/internal/segment"
)

// Strategy is one concrete pipeline configuration
type Strategy struct {
	Exchange   model.Exchange
	FilingType model.FilingType

	// SectionRules post-filter the segmenter's output
	SectionRules segment.Rules

	// Taxonomy drives the candidate prefilter
	Taxonomy []prefilter.Category

	// MinSentenceLen excludes fragments at prefilter time (0 = any length)
	MinSentenceLen int

	// PromptTemplate has two placeholders: the allowed forecast-type list
	// and the numbered sentence block
	PromptTemplate string

	// Normalize is the variant's normalization rule table
	Normalize normalize.Rules

	matcher *prefilter.Matcher
}

// New finalizes a strategy, building its keyword matcher from the
// taxonomy. Every strategy owns its matcher; there is no process-wide
// matcher state.
func New(s Strategy) *Strategy {
	s.matcher = prefilter.NewMatcher(s.Taxonomy)
	return &s
}

// Key identifies the strategy in logs and cache keys
func (s *Strategy) Key() string {
	return fmt.Sprintf("%s/%s", s.Exchange, s.FilingType)
}

// Matcher returns the strategy's keyword matcher
func (s *Strategy) Matcher() *prefilter.Matcher {
	return s.matcher
}

// Prompt renders the classification instruction for one numbered batch
func (s *Strategy) Prompt(numbered string) string {
	return fmt.Sprintf(s.PromptTemplate, allowedForecastTypes(), numbered)
}

// allowedForecastTypes renders the enum list embedded in every prompt
func allowedForecastTypes() string {
	types := model.AllForecastTypes()
	quoted := make([]string, 0, len(types))
	for _, ft := range types {
		quoted = append(quoted, fmt.Sprintf("%q", string(ft)))
	}
	return strings.Join(quoted, ", ")
}
