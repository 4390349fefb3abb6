package prefilter

import (
	"reflect"
	"testing"

	"github.com/catalystscan/catalystscan/internal/model"
)

func testMatcher() *Matcher {
	return NewMatcher([]Category{
		{Name: "Guidance", Keywords: []string{"guidance", "forecast"}},
		{Name: "Deals", Keywords: []string{"binding contract", "MOU"}},
	})
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic terminators",
			text: "Revenue grew. Will it continue? Guidance raised!",
			want: []string{"Revenue grew.", "Will it continue?", "Guidance raised!"},
		},
		{
			name: "newlines rejoined",
			text: "The board expects\nrevenue growth. Next item.",
			want: []string{"The board expects revenue growth.", "Next item."},
		},
		{
			name: "trailing remainder without terminator",
			want: []string{"unterminated fragment"},
			text: "unterminated fragment",
		},
		{
			name: "decimal not split",
			text: "Margin of 3.5 percent expected. Done.",
			want: []string{"Margin of 3.5 percent expected.", "Done."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCandidatesKeepsMatches(t *testing.T) {
	sections := []model.Section{
		{Heading: "Outlook", Text: "FY26 guidance was raised. The office moved to Perth."},
		{Heading: "Deals", Text: "A binding contract was signed. Weather was mild."},
	}

	got := Candidates(sections, testMatcher(), 0)
	want := []string{
		"FY26 guidance was raised.",
		"A binding contract was signed.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}
}

func TestCandidatesDedupePreservesOrder(t *testing.T) {
	sections := []model.Section{
		{Text: "FY26 guidance was raised. A binding contract was signed. FY26 guidance was raised."},
	}

	got := Candidates(sections, testMatcher(), 0)
	want := []string{
		"FY26 guidance was raised.",
		"A binding contract was signed.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}

	// Idempotent: running over the same input again yields the same list.
	again := Candidates(sections, testMatcher(), 0)
	if !reflect.DeepEqual(got, again) {
		t.Errorf("second run = %v, want %v", again, got)
	}
}

func TestCandidatesMinLen(t *testing.T) {
	sections := []model.Section{
		{Text: "MOU signed. The company reaffirmed its full year earnings guidance today."},
	}

	got := Candidates(sections, testMatcher(), 20)
	want := []string{"The company reaffirmed its full year earnings guidance today."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates(minLen=20) = %v, want %v", got, want)
	}
}

func TestCandidatesEmptyNotNil(t *testing.T) {
	got := Candidates(nil, testMatcher(), 0)
	if got == nil {
		t.Fatal("Candidates() returned nil, want empty slice")
	}
}

func TestMatcherCategoryOrder(t *testing.T) {
	m := NewMatcher([]Category{
		{Name: "B", Keywords: []string{"beta"}},
		{Name: "A", Keywords: []string{"alpha"}},
	})

	got := m.match("alpha and beta appear here")
	// Taxonomy order, not alphabetical, and one hit per category.
	want := []string{"B", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("match() = %v, want %v", got, want)
	}
}

func TestMatcherCaseInsensitive(t *testing.T) {
	m := testMatcher()
	if !m.Matches("GUIDANCE reaffirmed") {
		t.Error("expected case-insensitive keyword match")
	}
	if m.Matches("nothing relevant here") {
		t.Error("unexpected match")
	}
}
