// Package summary aggregates extraction results across a run into the
// counts an analyst scans first: how many catalysts, how material, and
// which entities keep showing up.
package summary

import (
	"sort"
	"strings"

	"github.com/catalystscan/catalystscan/internal/model"
)

// Summary holds aggregate statistics over one or more filings
type Summary struct {
	Documents int `json:"documents"`
	Records   int `json:"records"`
	Skipped   int `json:"skipped"`

	ByImpact       map[model.Impact]int       `json:"by_impact"`
	ByTone         map[model.Tone]int         `json:"by_tone"`
	ByForecastType map[model.ForecastType]int `json:"by_forecast_type"`

	AverageScore float64       `json:"average_score"`
	TopEntities  []EntityCount `json:"top_entities"`
}

// EntityCount is one entity and how many records mention it
type EntityCount struct {
	Entity string `json:"entity"`
	Count  int    `json:"count"`
}

// Builder accumulates per-document results into a run summary
type Builder struct {
	summary  Summary
	scoreSum int
	entities map[string]int
}

// NewBuilder creates an empty summary builder
func NewBuilder() *Builder {
	return &Builder{
		summary: Summary{
			ByImpact:       make(map[model.Impact]int),
			ByTone:         make(map[model.Tone]int),
			ByForecastType: make(map[model.ForecastType]int),
		},
		entities: make(map[string]int),
	}
}

// Add folds one document's records into the summary
func (b *Builder) Add(records []model.CatalystDisclosure, skipped bool) {
	b.summary.Documents++
	if skipped {
		b.summary.Skipped++
	}

	for _, rec := range records {
		b.summary.Records++
		b.summary.ByImpact[rec.Impact]++
		b.summary.ByTone[rec.Tone]++
		b.summary.ByForecastType[rec.ForecastType]++
		b.scoreSum += rec.Score

		for _, e := range rec.Entities {
			name := strings.TrimSpace(e.Value)
			if name != "" {
				b.entities[name]++
			}
		}
	}
}

// Build finalizes the summary. Top entities are ordered by count
// descending, name ascending for ties, capped at ten.
func (b *Builder) Build() Summary {
	s := b.summary
	if s.Records > 0 {
		s.AverageScore = float64(b.scoreSum) / float64(s.Records)
	}

	counts := make([]EntityCount, 0, len(b.entities))
	for name, n := range b.entities {
		counts = append(counts, EntityCount{Entity: name, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Entity < counts[j].Entity
	})
	if len(counts) > 10 {
		counts = counts[:10]
	}
	s.TopEntities = counts
	return s
}
