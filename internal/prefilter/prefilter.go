package prefilter

import (
	"strings"

	"github.com/catalystscan/catalystscan/internal/model"
)

// Candidates concatenates section texts, splits them into sentences and
// keeps keyword matches. Deduplication is exact-string and preserves
// first-seen order, so the result is deterministic and idempotent.
// minLen excludes fragments shorter than or equal to the limit; zero
// disables the length check.
func Candidates(sections []model.Section, m *Matcher, minLen int) []string {
	var texts []string
	for _, sec := range sections {
		texts = append(texts, sec.Text)
	}
	all := strings.Join(texts, "\n")

	seen := make(map[string]bool)
	candidates := []string{}
	for _, s := range SplitSentences(all) {
		if minLen > 0 && len(s) <= minLen {
			continue
		}
		if !m.Matches(s) {
			continue
		}
		if !seen[s] {
			seen[s] = true
			candidates = append(candidates, s)
		}
	}
	return candidates
}

// SplitSentences splits text on sentence terminators followed by
// whitespace. Newlines are treated as spaces first, so sentences broken
// across PDF lines are reassembled.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on abbreviations
			if i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\t') {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
