package model

import (
	"strings"
	"testing"
)

func TestParseFilingTypeSynonyms(t *testing.T) {
	tests := []struct {
		in   string
		want FilingType
	}{
		{"ANNUAL", FilingASXAnnual},
		{"asx_annual", FilingASXAnnual},
		{"Quarterly", FilingASXQuarterly},
		{"INVESTOR_PRESENTATION", FilingASXInvestor},
		{"10-Q", FilingSEC10Q},
		{"10q", FilingSEC10Q},
		{"SEC_10Q", FilingSEC10Q},
	}

	for _, tt := range tests {
		got, err := ParseFilingType(tt.in)
		if err != nil {
			t.Errorf("ParseFilingType(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilingType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFilingType("8-K"); err == nil {
		t.Error("ParseFilingType(8-K) should fail")
	}
}

func TestParseExchange(t *testing.T) {
	if got, err := ParseExchange(" asx "); err != nil || got != ExchangeASX {
		t.Errorf("ParseExchange(asx) = %v, %v", got, err)
	}
	if _, err := ParseExchange("NYSE"); err == nil {
		t.Error("ParseExchange(NYSE) should fail")
	}
}

func TestParseImpactMediumAlias(t *testing.T) {
	got, err := ParseImpact("medium")
	if err != nil || got != ImpactMed {
		t.Errorf("ParseImpact(medium) = %v, %v; want MED", got, err)
	}
}

func TestFilingValidate(t *testing.T) {
	valid := Filing{DocID: "X", Exchange: ExchangeASX, FilingType: FilingASXAnnual}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	for _, f := range []Filing{
		{Exchange: ExchangeASX, FilingType: FilingASXAnnual},
		{DocID: "X", FilingType: FilingASXAnnual},
		{DocID: "X", Exchange: ExchangeASX},
	} {
		if err := f.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", f)
		}
	}
}

func TestMakeDocID(t *testing.T) {
	got := MakeDocID("acme", "2026-06-30", FilingASXAnnual)
	if got != "ACME_2026-06-30_ANNUAL" {
		t.Errorf("MakeDocID() = %q", got)
	}

	fallback := MakeDocID("", "2026-06-30", FilingSEC10Q)
	if !strings.HasPrefix(fallback, "DOC_") {
		t.Errorf("MakeDocID with empty ticker = %q, want DOC_ prefix", fallback)
	}

	long := MakeDocID(strings.Repeat("A", 80), "2026-06-30", FilingASXAnnual)
	if len(long) != 64 {
		t.Errorf("MakeDocID length = %d, want capped at 64", len(long))
	}
}

func TestDocIDOrStem(t *testing.T) {
	f := Filing{SourcePath: "/data/filings/acme_annual_2026.pdf"}
	if got := f.DocIDOrStem(); got != "acme_annual_2026" {
		t.Errorf("DocIDOrStem() = %q", got)
	}

	f.DocID = "EXPLICIT"
	if got := f.DocIDOrStem(); got != "EXPLICIT" {
		t.Errorf("DocIDOrStem() = %q, want EXPLICIT", got)
	}
}

func TestNewCatalystDisclosure(t *testing.T) {
	rec, err := NewCatalystDisclosure(CatalystDisclosure{
		SentenceID:        "s1",
		Score:             7,
		Text:              "Line one\n\n  Line two  ",
		CategoriesMatched: []string{"Deals", "Deals"},
	})
	if err != nil {
		t.Fatalf("NewCatalystDisclosure() error: %v", err)
	}
	if rec.Text != "Line one Line two" {
		t.Errorf("text = %q", rec.Text)
	}
	if len(rec.CategoriesMatched) != 1 {
		t.Errorf("categories = %v", rec.CategoriesMatched)
	}
	if !rec.ForwardLooking || rec.Flag != "ok" {
		t.Errorf("defaults not applied: %+v", rec)
	}

	for _, score := range []int{0, 11, -3} {
		if _, err := NewCatalystDisclosure(CatalystDisclosure{SentenceID: "s1", Score: score}); err == nil {
			t.Errorf("score %d should be rejected", score)
		}
	}
	if _, err := NewCatalystDisclosure(CatalystDisclosure{Score: 5}); err == nil {
		t.Error("missing sentence_id should be rejected")
	}
}

func TestTextPreview(t *testing.T) {
	short := CatalystDisclosure{Text: "short"}
	if short.TextPreview() != "short" {
		t.Errorf("TextPreview() = %q", short.TextPreview())
	}

	long := CatalystDisclosure{Text: strings.Repeat("x", 500)}
	preview := long.TextPreview()
	if len(preview) != 383 || !strings.HasSuffix(preview, "...") {
		t.Errorf("TextPreview() length = %d, suffix ok = %v", len(preview), strings.HasSuffix(preview, "..."))
	}
}
