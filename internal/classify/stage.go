// Package classify sends candidate batches to the remote model and
// converts its free-text answer into raw item dictionaries. The model
// is an opaque, best-effort classifier; everything it returns is parsed
// defensively.
package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/time/rate"

	"github.com/catalystscan/catalystscan/internal/llm"
	"github.com/catalystscan/catalystscan/internal/model"
)

// Stage invokes the remote model with bounded retries and a mandatory
// pacing delay between successive calls. The delay is part of the
// contract with the remote service, not an incidental sleep.
type Stage struct {
	provider   llm.Provider
	limiter    *rate.Limiter
	retries    int
	retryDelay time.Duration
}

// NewStage creates a classification stage on top of a provider
func NewStage(provider llm.Provider, cfg model.ClassifyConfig) *Stage {
	retries := cfg.Retries
	if retries <= 0 {
		retries = 3
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = 1500 * time.Millisecond
	}
	callDelay := cfg.CallDelay
	if callDelay <= 0 {
		callDelay = time.Second
	}

	return &Stage{
		provider:   provider,
		limiter:    rate.NewLimiter(rate.Every(callDelay), 1),
		retries:    retries,
		retryDelay: retryDelay,
	}
}

// NumberSentences renders a batch as the 1-based numbered list the
// prompt template expects
func NumberSentences(batch []string) string {
	var b strings.Builder
	for i, s := range batch {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ClassifyBatch sends one prompt and returns the parsed items. A batch
// that exhausts its retry budget or returns unparseable output
// contributes zero items; it never aborts the document.
func (s *Stage) ClassifyBatch(ctx context.Context, prompt, docID string, batchNum, batchCount int) []RawItem {
	resp, err := s.complete(ctx, prompt)
	if err != nil {
		log.Error().
			Str("doc_id", docID).
			Int("batch", batchNum).
			Int("batches", batchCount).
			Err(err).
			Msg("classify: batch failed after retries")
		return []RawItem{}
	}

	items := ParseItems(resp.Text)
	log.Debug().
		Str("doc_id", docID).
		Int("batch", batchNum).
		Int("items", len(items)).
		Int("tokens", resp.TokensUsed).
		Msg("classify: batch complete")
	return items
}

// complete runs one model call with pacing and bounded retries
func (s *Stage) complete(ctx context.Context, prompt string) (*llm.CompletionResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		resp, err := s.provider.Complete(ctx, llm.CompletionRequest{Prompt: prompt})
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt < s.retries {
			log.Warn().
				Int("attempt", attempt).
				Int("retries", s.retries).
				Err(err).
				Msg("classify: model call failed, retrying")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}
	}
	return nil, fmt.Errorf("model call failed after %d attempts: %w", s.retries, lastErr)
}
