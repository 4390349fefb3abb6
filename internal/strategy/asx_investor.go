package strategy

import (
	"github.com/catalystscan/catalystscan/internal/model"
	"github.com/catalystscan/catalystscan/internal/normalize"
	"github.com/catalystscan/catalystscan/internal/prefilter"
	"github.com/catalystscan/catalystscan/internal/segment"
)

// ASX investor presentations: PDF slide decks. Headings are noisy, so
// the drop list is broad (technical geology slides, bios, disclaimers)
// and the forecast type derives from the matched keyword category
// rather than the model's free-text label.

var investorDropHeadings = segment.CompilePatterns([]string{
	`Disclaimer`,
	`Competent\s+Person`,
	`Board|Director|Chairman|CEO|COO|CFO|Management`,
	`Corporate\s+(Snapshot|Overview|Directory|Structure)`,
	`About\s+.*`,
	`Registered\s+Office`,
	`Principal\s+Place`,
	`Investor\s+Relations`,
	`Website`,
	`Financial\s+Snapshot`,
	`Inferred\s+Mineral|JORC|Metallurgy|Assay|Drill|Resource|Geochemistry|Infrastructure`,
	`T\s*cell|CAR[- ]?T|Immune|Mechanism|Safety\s+Profile`,
	`Supply|Demand|Market\s+Fundamentals`,
	`Contact|Appendix|Legal|Notice`,
})

var investorTaxonomy = []prefilter.Category{
	{Name: "Intent Verbs", Keywords: []string{
		"expected shortly", "expected to", "expect to", "plan to", "planned to",
		"intends to", "intend to", "inbound interest",
		"anticipates", "anticipate", "anticipated",
		"targeting", "targets", "targeted", "finalizing",
	}},
	{Name: "Timeline", Keywords: []string{
		"over the next", "in FY", "in H1", "in H2", "accelerated", "year end",
		"during", "near-term", "imminent", "upcoming", "expected in",
		"targeted for", "scheduled for", "execution phase",
	}},
	{Name: "Guidance", Keywords: []string{
		"guidance", "forecast", "outlook", "projected", "opportunities",
		"cash flow positive", "capital raise", "funding secured", "forecasted",
	}},
	{Name: "Milestones", Keywords: []string{
		"licensing", "clearance", "approval",
		"resource upgrade", "FDA", "deployment", "advanced",
		"regulatory approval", "submission", "tender", "review",
	}},
	{Name: "Deals", Keywords: []string{
		"agreement expected", "term sheets", "binding", "contracts",
		"MOU", "JV", "partnership", "submitted", "pending", "acquisition",
		"negotiation", "commercial launch", "renewal", "proposal", "discussions",
		"expected to commence",
	}},
	{Name: "Strategy", Keywords: []string{
		"strategy", "strategic review", "significant", "advanced discussions",
		"expansion", "growth strategy", "finalizing", "pipeline",
	}},
}

const investorPrompt = `You are an expert financial analyst.
You will receive a numbered list of candidate sentences extracted from an ASX investor report.

Task:
- KEEP ONLY true forward-looking statements.
- DROP sentences that describe only past/present facts or vague commentary.
- For each KEPT sentence, output JSON with:
  - text
  - impact (LOW, MED, HIGH)
  - tone (positive, neutral, cautious)
  - forecast_type (one of [%[1]s])
  - score (1-10)
  - entities (list)
  - categories_matched (list)

Output: A single JSON array only.

Input sentences:
%[2]s`

func newASXInvestor() *Strategy {
	return New(Strategy{
		Exchange:   model.ExchangeASX,
		FilingType: model.FilingASXInvestor,
		SectionRules: segment.Rules{
			Drop: investorDropHeadings,
		},
		Taxonomy:       investorTaxonomy,
		PromptTemplate: investorPrompt,
		Normalize: normalize.Rules{
			CategoryMap: map[string]model.ForecastType{
				"Intent Verbs": model.ForecastIntent,
				"Timeline":     model.ForecastTiming,
				"Guidance":     model.ForecastGuidance,
				"Milestones":   model.ForecastMilestones,
				"Deals":        model.ForecastDeals,
				"Strategy":     model.ForecastStrategy,
			},
			CategoryDefault: model.ForecastStrategy,
			KeepCategories:  true,
		},
	})
}
