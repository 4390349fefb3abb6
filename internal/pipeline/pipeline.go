// Package pipeline orchestrates the full extraction flow for one
// filing: segment, prefilter, batch, classify, normalize. Failures are
// contained at the smallest possible scope. A bad item is dropped, a
// bad batch contributes zero items, a missing document yields an empty
// result. Only dispatch and configuration errors reach the caller.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phuslu/log"

	"github.com/catalystscan/catalystscan/internal/batch"
	"github.com/catalystscan/catalystscan/internal/cache"
	"github.com/catalystscan/catalystscan/internal/classify"
	"github.com/catalystscan/catalystscan/internal/llm"
	"github.com/catalystscan/catalystscan/internal/model"
	"github.com/catalystscan/catalystscan/internal/normalize"
	"github.com/catalystscan/catalystscan/internal/prefilter"
	"github.com/catalystscan/catalystscan/internal/segment"
	"github.com/catalystscan/catalystscan/internal/strategy"
)

// Pipeline runs the extraction flow for filings dispatched through a
// strategy registry
type Pipeline struct {
	registry *strategy.Registry
	stage    *classify.Stage
	cache    cache.Cache
	cacheTTL model.CacheConfig
	config   *model.Config
}

// Result is the outcome for one filing. Records is never nil.
type Result struct {
	Records []model.CatalystDisclosure `json:"records"`
	Count   int                        `json:"count"`
	Status  string                     `json:"status"` // ok, no_items, skipped, cached
}

// NewPipeline wires the pipeline from configuration. The provider is
// built from cfg.LLM; a nil provider (empty provider name) fails fast
// because classification is not optional here.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	if provider == nil {
		return nil, errors.New("llm provider is required (set llm.provider)")
	}

	p := &Pipeline{
		registry: strategy.NewRegistry(),
		stage:    classify.NewStage(provider, cfg.Classify),
		cacheTTL: cfg.Cache,
		config:   cfg,
	}
	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		p.cache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}
	return p, nil
}

// NewPipelineWith builds a pipeline from pre-constructed parts, used
// in tests and by callers that manage the provider themselves
func NewPipelineWith(registry *strategy.Registry, stage *classify.Stage, c cache.Cache, cfg *model.Config) *Pipeline {
	return &Pipeline{registry: registry, stage: stage, cache: c, cacheTTL: cfg.Cache, config: cfg}
}

// Process extracts catalyst disclosures from one filing. The returned
// error is non-nil only for dispatch failures (invalid filing metadata
// or no registered strategy); document-level problems produce an empty
// result with the reason logged.
func (p *Pipeline) Process(ctx context.Context, filing model.Filing) (*Result, error) {
	if err := filing.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filing: %w", err)
	}

	strat, err := p.registry.Resolve(filing.Exchange, filing.FilingType)
	if err != nil {
		return nil, err
	}
	docID := filing.DocIDOrStem()

	if cached, ok := p.cachedResult(filing.SourcePath, strat.Key()); ok {
		log.Info().Str("doc_id", docID).Msg("pipeline: cache hit")
		return cached, nil
	}

	sections, err := p.segmentFiling(filing, strat)
	if err != nil {
		// Missing or unsupported document: skip, do not fail the caller.
		log.Warn().Str("doc_id", docID).Err(err).Msg("pipeline: document skipped")
		return &Result{Records: []model.CatalystDisclosure{}, Status: "skipped"}, nil
	}

	candidates := prefilter.Candidates(sections, strat.Matcher(), strat.MinSentenceLen)
	if len(candidates) == 0 {
		log.Info().Str("doc_id", docID).Msg("pipeline: no candidate sentences")
		return &Result{Records: []model.CatalystDisclosure{}, Status: "no_items"}, nil
	}

	batches := batch.Split(candidates)
	log.Info().
		Str("doc_id", docID).
		Str("strategy", strat.Key()).
		Int("sections", len(sections)).
		Int("candidates", len(candidates)).
		Int("batches", len(batches)).
		Msg("pipeline: classifying")

	records := p.classifyBatches(ctx, filing, strat, batches, docID)

	result := &Result{Records: records, Count: len(records), Status: "ok"}
	if len(records) == 0 {
		result.Status = "no_items"
	}
	p.storeResult(filing.SourcePath, strat.Key(), result)
	return result, nil
}

// classifyBatches runs batches sequentially and normalizes their
// items. The sequence counter is global across batches and advances
// only when an item survives normalization.
func (p *Pipeline) classifyBatches(ctx context.Context, filing model.Filing, strat *strategy.Strategy, batches [][]string, docID string) []model.CatalystDisclosure {
	records := []model.CatalystDisclosure{}
	seq := 0

	for i, b := range batches {
		prompt := strat.Prompt(classify.NumberSentences(b))
		items := p.stage.ClassifyBatch(ctx, prompt, docID, i+1, len(batches))

		for _, item := range items {
			rec, err := normalize.Record(item, filing, strat.Normalize, seq+1)
			if err != nil {
				log.Warn().
					Str("doc_id", docID).
					Int("batch", i+1).
					Err(err).
					Msg("pipeline: item dropped")
				continue
			}
			seq++
			records = append(records, rec)
		}
	}
	return records
}

// segmentFiling picks a segmenter for the source path and runs it with
// the strategy's section rules
func (p *Pipeline) segmentFiling(filing model.Filing, strat *strategy.Strategy) ([]model.Section, error) {
	seg, err := segment.ForPath(filing.SourcePath, strat.SectionRules)
	if err != nil {
		return nil, err
	}
	return seg.Segment(filing.SourcePath)
}

func (p *Pipeline) cachedResult(path, strategyKey string) (*Result, bool) {
	if p.cache == nil {
		return nil, false
	}
	key, err := cache.ResultKey(path, strategyKey)
	if err != nil {
		return nil, false
	}
	data, ok := p.cache.Get(key)
	if !ok {
		return nil, false
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false
	}
	if r.Records == nil {
		r.Records = []model.CatalystDisclosure{}
	}
	r.Status = "cached"
	return &r, true
}

func (p *Pipeline) storeResult(path, strategyKey string, r *Result) {
	if p.cache == nil {
		return
	}
	key, err := cache.ResultKey(path, strategyKey)
	if err != nil {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	if err := p.cache.Set(key, data, p.cacheTTL.TTL); err != nil {
		log.Warn().Err(err).Msg("pipeline: cache store failed")
	}
}
