package segment

import (
	"regexp"
	"strings"

	"github.com/catalystscan/catalystscan/internal/model"
)

// Rules post-filters segmented sections. Filings are structured
// front-to-back with boilerplate trailing the material content, so the
// first stop match discards everything from that heading onward.
type Rules struct {
	// StopAfter halts segmentation at the first matching heading
	StopAfter []*regexp.Regexp

	// StopSubstring halts at the first heading containing this
	// case-insensitive substring (used alongside or instead of StopAfter)
	StopSubstring string

	// Drop removes sections whose heading matches (boilerplate: director
	// bios, registry addresses, disclaimers)
	Drop []*regexp.Regexp

	// DropExact removes sections whose trimmed heading matches exactly
	DropExact map[string]bool

	// KeepHeadingSubstrings, when non-empty, restricts HTML item sections
	// to headings containing one of these case-insensitive substrings
	KeepHeadingSubstrings []string

	// FallbackWords bounds the synthetic single-section fallback when an
	// HTML document has no recognizable item headers
	FallbackWords int
}

// CompilePatterns builds case-insensitive regexps from pattern strings
func CompilePatterns(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile("(?i)"+p))
	}
	return out
}

// Apply filters sections in order: the first stop-trigger heading ends
// the document, drop-matched headings are removed entirely
func (r Rules) Apply(sections []model.Section) []model.Section {
	cleaned := make([]model.Section, 0, len(sections))
	for _, sec := range sections {
		h := strings.TrimSpace(sec.Heading)
		if r.stops(h) {
			break
		}
		if r.drops(h) {
			continue
		}
		cleaned = append(cleaned, sec)
	}
	return cleaned
}

func (r Rules) stops(heading string) bool {
	for _, p := range r.StopAfter {
		if p.MatchString(heading) {
			return true
		}
	}
	if r.StopSubstring != "" &&
		strings.Contains(strings.ToLower(heading), strings.ToLower(r.StopSubstring)) {
		return true
	}
	return false
}

func (r Rules) drops(heading string) bool {
	if r.DropExact[heading] {
		return true
	}
	for _, p := range r.Drop {
		if p.MatchString(heading) {
			return true
		}
	}
	return false
}

// keeps reports whether an HTML item heading passes the keep filter
func (r Rules) keeps(heading string) bool {
	if len(r.KeepHeadingSubstrings) == 0 {
		return true
	}
	lower := strings.ToLower(heading)
	for _, s := range r.KeepHeadingSubstrings {
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
