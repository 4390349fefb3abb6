// Package normalize converts raw classifier items into validated
// CatalystDisclosure records. Any failure drops only the offending
// item; the batch and document continue.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/catalystscan/catalystscan/internal/classify"
	"github.com/catalystscan/catalystscan/internal/model"
)

// Rules holds the per-strategy normalization table: which substring
// rules apply to the model's free-text forecast type and what the
// default is when nothing matches.
type Rules struct {
	// MatchGuidance enables the "guidance" substring rule
	MatchGuidance bool

	// MatchStrategy enables the "strategy" substring rule
	MatchStrategy bool

	// Default is used when no substring rule matches and CategoryMap is nil
	Default model.ForecastType

	// CategoryMap, when set, derives the default from the first matched
	// category instead of Default
	CategoryMap map[string]model.ForecastType

	// CategoryDefault applies when CategoryMap is set but the first
	// category is absent or unmapped
	CategoryDefault model.ForecastType

	// KeepCategories carries categories_matched into the record
	KeepCategories bool
}

// ForecastType maps the model's free-text forecast label to the
// canonical enum. Rules run in fixed order; the first match wins.
func (r Rules) ForecastType(rawType string, categories []string) model.ForecastType {
	raw := strings.ToLower(rawType)

	switch {
	case strings.Contains(raw, "contract"):
		return model.ForecastContractual
	case strings.Contains(raw, "regul"):
		return model.ForecastRegulatory
	case strings.Contains(raw, "time"), strings.Contains(raw, "sched"):
		return model.ForecastTiming
	}
	if r.MatchGuidance && strings.Contains(raw, "guidance") {
		return model.ForecastGuidance
	}
	if r.MatchStrategy && strings.Contains(raw, "strategy") {
		return model.ForecastStrategy
	}

	if r.CategoryMap != nil {
		if len(categories) > 0 {
			if ft, ok := r.CategoryMap[categories[0]]; ok {
				return ft
			}
		}
		return r.CategoryDefault
	}
	return r.Default
}

// Record builds one validated record from a raw item. The caller
// advances its sequence counter only when Record succeeds.
func Record(item classify.RawItem, filing model.Filing, rules Rules, globalIdx int) (model.CatalystDisclosure, error) {
	tone, err := model.ParseTone(orDefault(item.Tone, "neutral"))
	if err != nil {
		return model.CatalystDisclosure{}, err
	}

	impact, err := model.ParseImpact(orDefault(item.Impact, "MED"))
	if err != nil {
		return model.CatalystDisclosure{}, err
	}

	score, err := coerceScore(item.Score)
	if err != nil {
		return model.CatalystDisclosure{}, err
	}

	categories := []string{}
	if rules.KeepCategories {
		categories = item.CategoriesMatched
	}

	entities := make([]model.Entity, 0, len(item.Entities))
	for _, e := range item.Entities {
		entities = append(entities, model.NewEntity(entityString(e)))
	}

	return model.NewCatalystDisclosure(model.CatalystDisclosure{
		DocID:      filing.DocIDOrStem(),
		Exchange:   filing.Exchange,
		FilingType: filing.FilingType,
		FilingDate: filing.FilingDate,
		SourceFile: filing.SourcePath,

		SentenceID: fmt.Sprintf("s%d", globalIdx),
		Text:       item.Text,

		ForecastType: rules.ForecastType(item.ForecastType, item.CategoriesMatched),
		Tone:         tone,
		Impact:       impact,
		Score:        score,

		CategoriesMatched: categories,
		Entities:          entities,
	})
}

// coerceScore accepts the integer the prompt asks for, plus the numeric
// strings models emit anyway. Missing score defaults to 5; the [1,10]
// range is enforced at record construction.
func coerceScore(v interface{}) (int, error) {
	switch s := v.(type) {
	case nil:
		return 5, nil
	case float64:
		return int(s), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("non-numeric score: %q", s)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("invalid score type: %T", v)
	}
}

func entityString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
