package strategy

import (
	"github.com/catalystscan/catalystscan/internal/model"
	"github.com/catalystscan/catalystscan/internal/normalize"
	"github.com/catalystscan/catalystscan/internal/prefilter"
	"github.com/catalystscan/catalystscan/internal/segment"
)

// ASX annual reports: PDF, segmentation stops at the audit/notes
// sections since everything after is statutory boilerplate.

var annualStopAfter = segment.CompilePatterns([]string{
	`Auditor.?s?.? Independence Declaration`,
	`Notes to the Financial Statements`,
	`Notes to the Consolidated Financial Statements`,
	`Independent Auditor.?s?.? Report`,
	`Corporate Governance Statement`,
})

var annualDropHeadings = segment.CompilePatterns([]string{
	`Corporate\s+Directory`,
	`^Directors$`,
	`Company\s+Secretar(y|ies)`,
	`Registered\s+Office`,
	`Auditors?`,
	`Share\s+Registry`,
	`Website`,
	`Information\s+on\s+Directors`,
	`Information\s+on\s+Company\s+Secretaries`,
	`Board\s+of\s+Directors`,
	`Remuneration\s+Report`,
	`Non[- ]audit\s+services`,
	`Proceedings\s+on\s+behalf\s+of\s+Company`,
	`Indemnification`,
	`Insurance\s+premiums`,
	`^Share\s+options$`,
	`^Options$`,
	`Warrants`,
	`Rounding\s+of\s+amounts`,
	`Meetings\s+of\s+Directors`,
	`Loan\s+from\s+Directors`,
	`Number\s+of\s+shares\s+held`,
	`Number\s+of\s+listed\s+options`,
	`^Performance\s+Rights$`,
	`Incentive|Sale\s+Bonus\s+Pool|Termination`,
	`Voting.*Annual\s+General\s+Meeting`,
})

var annualTaxonomy = []prefilter.Category{
	{Name: "Intent Verbs", Keywords: []string{
		"expected shortly", "expected to", "expect to", "plan to", "planned to",
		"intends to", "intend to", "inbound interest",
		"anticipates", "anticipate", "anticipated",
		"targeting", "targets", "targeted", "finalizing",
	}},
	{Name: "Timeline", Keywords: []string{
		"over the next", "in fy", "in h1", "in h2", "year end",
		"during", "near-term", "imminent", "upcoming", "expected in",
		"targeted for", "scheduled for", "execution phase",
	}},
	{Name: "Guidance", Keywords: []string{
		"guidance", "forecast", "outlook", "projected", "opportunities",
		"cash flow positive", "capital raise", "funding secured", "forecasted",
	}},
	{Name: "Milestones", Keywords: []string{
		"licensing", "clearance", "approval",
		"resource upgrade", "fda", "deployment", "advanced",
		"regulatory approval", "submission", "tender", "review",
	}},
	{Name: "Deals", Keywords: []string{
		"agreement expected", "term sheets", "binding", "contracts",
		"mou", "jv", "partnership", "submitted", "pending", "acquisition",
		"negotiation", "commercial launch", "renewal", "proposal", "discussions",
		"expected to commence",
	}},
	{Name: "Strategy", Keywords: []string{
		"strategy", "strategic review", "significant", "advanced discussions",
		"expansion", "growth strategy", "finalizing", "pipeline",
	}},
}

const annualPrompt = `You are an expert financial analyst.
You will receive a numbered list of candidate sentences extracted from a company's annual report.

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
  - categories_matched: list of strings

Requirements:
- Output MUST be a single JSON array of objects.
- No explanations, no markdown.
- Keep the sentence text EXACTLY as in input.

Input sentences:
%[2]s

Return ONLY the JSON array.`

func newASXAnnual() *Strategy {
	return New(Strategy{
		Exchange:   model.ExchangeASX,
		FilingType: model.FilingASXAnnual,
		SectionRules: segment.Rules{
			StopAfter: annualStopAfter,
			Drop:      annualDropHeadings,
		},
		Taxonomy:       annualTaxonomy,
		PromptTemplate: annualPrompt,
		Normalize: normalize.Rules{
			MatchGuidance:  true,
			MatchStrategy:  true,
			Default:        model.ForecastHints,
			KeepCategories: true,
		},
	})
}
