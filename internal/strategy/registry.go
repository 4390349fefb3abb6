package strategy

import (
	"errors"
	"fmt"

	"github.com/catalystscan/catalystscan/internal/model"
)

// ErrNoStrategy indicates a configuration error: no strategy is
// registered for the requested (exchange, filing type) pair. Unlike
// data errors this is surfaced to the caller immediately.
var ErrNoStrategy = errors.New("no strategy registered")

type registryKey struct {
	exchange   model.Exchange
	filingType model.FilingType
}

// Registry maps (exchange, filing type) pairs to pipeline strategies
type Registry struct {
	strategies map[registryKey]*Strategy
}

// NewRegistry creates a registry with the built-in strategies
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[registryKey]*Strategy)}
	r.Register(newASXAnnual())
	r.Register(newASXQuarterly())
	r.Register(newASXInvestor())
	r.Register(newSEC10Q())
	return r
}

// Register adds a strategy, replacing any previous registration for
// the same pair
func (r *Registry) Register(s *Strategy) {
	r.strategies[registryKey{s.Exchange, s.FilingType}] = s
}

// Resolve returns the strategy for a canonical (exchange, filing type)
// pair. Synonym normalization happens in model.ParseExchange and
// model.ParseFilingType before lookup.
func (r *Registry) Resolve(exchange model.Exchange, filingType model.FilingType) (*Strategy, error) {
	s, ok := r.strategies[registryKey{exchange, filingType}]
	if !ok {
		return nil, fmt.Errorf("%w for (%s, %s)", ErrNoStrategy, exchange, filingType)
	}
	return s, nil
}
