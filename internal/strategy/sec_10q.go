package strategy

import (
	"github.com/catalystscan/catalystscan/internal/model"
	"github.com/catalystscan/catalystscan/internal/normalize"
	"github.com/catalystscan/catalystscan/internal/prefilter"
	"github.com/catalystscan/catalystscan/internal/segment"
)

// SEC 10-Q filings arrive as EDGAR HTML. Segmentation keys on the
// "Item N." headers and keeps only the sections analysts actually mine
// for catalysts; everything else (exhibits, signatures, controls) is
// noise at this filing cadence.

var secKeepSections = []string{
	"risk factors",
	"management's discussion and analysis",
	"md&a",
	"results of operations",
	"forward-looking statements",
	"business",
	"regulation fd disclosure",
	"other events",
	"outlook",
	"item 1.01",
	"item 2.01",
	"item 2.02",
	"item 5.02",
}

var secTaxonomy = []prefilter.Category{
	{Name: "Timing & Immediacy", Keywords: []string{
		"imminent", "near-term", "upcoming", "expected shortly", "anticipated",
		"targeted for", "inbound interest", "execution phase",
	}},
	{Name: "Contractual Catalysts", Keywords: []string{
		"agreement", "binding", "term sheets", "contracts", "pending", "negotiation",
		"renewal", "submitted", "proposal", "acquisition", "partnership", "discussions",
		"expected to commence", "finalizing", "tender",
	}},
	{Name: "Forward-Looking Hints", Keywords: []string{
		"anticipate", "expect", "outlook", "projected", "forecasted", "opportunities",
		"pipeline", "strategic review", "advanced discussions", "expansion", "significant",
	}},
	{Name: "Regulatory & Compliance", Keywords: []string{
		"clearance", "licensing", "approval", "deployment", "advanced",
		"submission", "regulatory approval", "FDA", "TGA", "review", "assay results",
	}},
}

const sec10QPrompt = `You are an expert financial analyst analyzing SEC filings (10-Q, 10-K, 8-K).
You will receive a numbered list of candidate sentences.

Task:
- KEEP only true forward-looking statements (future plans, projections, deals, regulatory actions, milestones, timelines, approvals, etc.)
- DROP anything that is historical, current status, vague, or not actionable.
- For each kept sentence, return a JSON object with:
  - text: original sentence
  - impact: "LOW" | "MED" | "HIGH"
  - tone: "positive" | "neutral" | "cautious"
  - forecast_type: one of [%[1]s]
  - score: 1-10 (confidence)
  - entities: list of short strings
Output ONLY a valid JSON array. No markdown, no explanation.
Input:
%[2]s`

func newSEC10Q() *Strategy {
	return New(Strategy{
		Exchange:   model.ExchangeSEC,
		FilingType: model.FilingSEC10Q,
		SectionRules: segment.Rules{
			KeepHeadingSubstrings: secKeepSections,
			FallbackWords:         5000,
		},
		Taxonomy:       secTaxonomy,
		MinSentenceLen: 20,
		PromptTemplate: sec10QPrompt,
		Normalize: normalize.Rules{
			Default: model.ForecastHints,
		},
	})
}
