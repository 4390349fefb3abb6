// Package prefilter bounds the volume of text sent to the remote
// classifier: it keeps only sentences matching a keyword taxonomy.
// Recall-biased; false positives are corrected by the classification
// stage.
package prefilter

import "strings"

// Category is one thematic keyword group of a strategy's taxonomy
type Category struct {
	Name     string
	Keywords []string
}

// Matcher matches sentences against a keyword taxonomy with
// case-insensitive substring matching. Each strategy owns its own
// matcher, built from its taxonomy at construction time.
type Matcher struct {
	categories []matcherCategory
}

type matcherCategory struct {
	name     string
	keywords []string
}

// NewMatcher builds a matcher from taxonomy categories. Keyword order
// inside a category does not matter; category order determines the
// order of matched category names.
func NewMatcher(categories []Category) *Matcher {
	m := &Matcher{categories: make([]matcherCategory, 0, len(categories))}
	for _, c := range categories {
		mc := matcherCategory{name: c.Name, keywords: make([]string, 0, len(c.Keywords))}
		for _, kw := range c.Keywords {
			mc.keywords = append(mc.keywords, strings.ToLower(kw))
		}
		m.categories = append(m.categories, mc)
	}
	return m
}

// match returns the names of categories with at least one keyword
// present in the sentence, in taxonomy order
func (m *Matcher) match(sentence string) []string {
	lower := strings.ToLower(sentence)
	var matched []string
	for _, c := range m.categories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, c.name)
				break // one hit per category is enough
			}
		}
	}
	return matched
}

// Matches reports whether any keyword of any category is present
func (m *Matcher) Matches(sentence string) bool {
	return len(m.match(sentence)) > 0
}
