package model

import (
	"fmt"
	"strings"
)

// Exchange identifies the stock exchange a filing was lodged with
type Exchange string

const (
	ExchangeASX Exchange = "ASX"
	ExchangeSEC Exchange = "SEC"
)

// ParseExchange normalizes an exchange name (case-insensitive)
func ParseExchange(s string) (Exchange, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASX":
		return ExchangeASX, nil
	case "SEC":
		return ExchangeSEC, nil
	default:
		return "", fmt.Errorf("unknown exchange: %q (supported: ASX, SEC)", s)
	}
}

// FilingType is the canonical filing type key used for strategy dispatch
type FilingType string

const (
	FilingASXAnnual    FilingType = "annual"
	FilingASXQuarterly FilingType = "quarterly"
	FilingASXInvestor  FilingType = "investor"
	FilingSEC10Q       FilingType = "SEC_10Q"
)

// filingSynonyms maps common spellings to canonical filing types.
// Callers pass whatever the ingestion side produced ("ASX_ANNUAL",
// "10-Q", ...); dispatch always happens on the canonical key.
var filingSynonyms = map[string]FilingType{
	"ANNUAL":                FilingASXAnnual,
	"ASX_ANNUAL":            FilingASXAnnual,
	"QUARTERLY":             FilingASXQuarterly,
	"ASX_QUARTERLY":         FilingASXQuarterly,
	"INVESTOR":              FilingASXInvestor,
	"INVESTOR_PRESENTATION": FilingASXInvestor,
	"ASX_INVESTOR":          FilingASXInvestor,
	"10-Q":                  FilingSEC10Q,
	"10Q":                   FilingSEC10Q,
	"SEC_10Q":               FilingSEC10Q,
}

// ParseFilingType resolves a filing type string, accepting synonyms
func ParseFilingType(s string) (FilingType, error) {
	if ft, ok := filingSynonyms[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return ft, nil
	}
	return "", fmt.Errorf("unknown filing type: %q", s)
}

// Impact is the classifier's materiality estimate for a catalyst
type Impact string

const (
	ImpactHigh Impact = "HIGH"
	ImpactMed  Impact = "MED"
	ImpactLow  Impact = "LOW"
)

// ParseImpact coerces a free-text impact value (case-insensitive)
func ParseImpact(s string) (Impact, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return ImpactHigh, nil
	case "MED", "MEDIUM":
		return ImpactMed, nil
	case "LOW":
		return ImpactLow, nil
	default:
		return "", fmt.Errorf("invalid impact: %q", s)
	}
}

// Tone is the classifier's sentiment estimate for a catalyst
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneCautious Tone = "cautious"
)

// ParseTone coerces a free-text tone value (case-insensitive)
func ParseTone(s string) (Tone, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return TonePositive, nil
	case "neutral":
		return ToneNeutral, nil
	case "cautious":
		return ToneCautious, nil
	default:
		return "", fmt.Errorf("invalid tone: %q", s)
	}
}

// ForecastType categorizes what kind of forward-looking statement a
// catalyst is
type ForecastType string

const (
	ForecastIntent      ForecastType = "INTENT"      // plan / intention / will / aims
	ForecastTiming      ForecastType = "TIMING"      // timeline, schedule, soon
	ForecastContractual ForecastType = "CONTRACTUAL" // contracts, JV, MOU, deals
	ForecastGuidance    ForecastType = "GUIDANCE"    // revenue/EBITDA guidance, forecast
	ForecastRegulatory  ForecastType = "REGULATORY"  // approvals, filings, FDA, ASX
	ForecastStrategy    ForecastType = "STRATEGY"    // growth strategy, expansion
	ForecastHints       ForecastType = "HINTS"       // vague forward commentary
	ForecastMilestones  ForecastType = "MILESTONES"
	ForecastDeals       ForecastType = "DEALS"
)

// AllForecastTypes returns each forecast type in declaration order,
// used when building classification prompts
func AllForecastTypes() []ForecastType {
	return []ForecastType{
		ForecastIntent, ForecastTiming, ForecastContractual,
		ForecastGuidance, ForecastRegulatory, ForecastStrategy,
		ForecastHints, ForecastMilestones, ForecastDeals,
	}
}
