package strategy

import (
	"github.com/catalystscan/catalystscan/internal/model"
	"github.com/catalystscan/catalystscan/internal/normalize"
	"github.com/catalystscan/catalystscan/internal/prefilter"
	"github.com/catalystscan/catalystscan/internal/segment"
)

// ASX quarterly activity reports: PDF, everything from the attached
// Appendix 4C/5B cash flow report onward is discarded.

var quarterlyTaxonomy = []prefilter.Category{
	{Name: "timing_and_immediacy", Keywords: []string{
		"imminent", "near-term", "upcoming", "expected shortly", "anticipated",
		"targeted for", "inbound interest", "execution phase",
	}},
	{Name: "contractual_catalysts", Keywords: []string{
		"agreement", "binding", "term sheets", "contracts", "pending", "negotiation",
		"renewal", "submitted", "proposal", "acquisition", "partnership", "discussions",
		"expected to commence", "finalizing", "tender",
	}},
	{Name: "forward_looking_hints", Keywords: []string{
		"anticipate", "expect", "outlook", "projected", "forecasted", "opportunities",
		"pipeline", "strategic review", "advanced discussions", "expansion", "significant",
	}},
	{Name: "Regulatory & Compliance", Keywords: []string{
		"clearance", "licensing", "approval", "deployment", "advanced",
		"submission", "regulatory approval", "FDA", "TGA", "review", "assay results",
	}},
}

const quarterlyPrompt = `You are an expert financial analyst.
You will receive a numbered list of candidate sentences extracted from a company's report.

Task:
- From the input sentences, KEEP ONLY those that are true forward-looking statements (plans, projections, forecasts, upcoming actions, regulatory submissions, pending deals, milestones, deployments, approvals, or explicitly scheduled future events).
- DROP sentences that only describe present or past facts, are vague, or offer no actionable forward-looking insight.
- For each KEPT sentence, output a JSON object with the following fields:
  - text: the original sentence (string)
  - impact: one of ["LOW","MED","HIGH"]
  - tone: one of ["positive","neutral","cautious"]
  - forecast_type: one of [%[1]s]
  - score: integer between 1 and 10
  - entities: a list of short strings

Requirements:
- Output MUST be a single JSON array of objects.
- No explanations, no markdown.
- Keep the sentence text EXACTLY as in input.

Input sentences:
%[2]s

Return ONLY the JSON array.`

func newASXQuarterly() *Strategy {
	return New(Strategy{
		Exchange:   model.ExchangeASX,
		FilingType: model.FilingASXQuarterly,
		SectionRules: segment.Rules{
			StopSubstring: "quarterly cash flow report",
			DropExact: map[string]bool{
				"Tenement Interest Notes:":     true,
				"Competent Person’s Statement": true,
			},
		},
		Taxonomy:       quarterlyTaxonomy,
		PromptTemplate: quarterlyPrompt,
		Normalize: normalize.Rules{
			Default: model.ForecastHints,
		},
	})
}
