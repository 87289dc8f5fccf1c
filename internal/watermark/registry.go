package watermark

import (
	"slices"
	"sync"
)

// Registry holds strategies in match order. Strategies can be appended but
// never removed or reordered.
type Registry struct {
	mu         sync.RWMutex
	strategies []Strategy
}

func NewRegistry(strategies ...Strategy) *Registry {
	return &Registry{strategies: slices.Clone(strategies)}
}

// DefaultRegistry registers the built-in strategies: Excel, Image, Pdf,
// PowerPoint and Word, in that order.
func DefaultRegistry(adapters Adapters) *Registry {
	return NewRegistry(builtins(adapters)...)
}

// Register appends s after every strategy already registered.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies = append(r.strategies, s)
}

// Match returns the first strategy that supports doc.
func (r *Registry) Match(doc *Document) (Strategy, error) {
	format, err := doc.Format()
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.strategies {
		if s.Supports(doc) {
			return s, nil
		}
	}
	return nil, &UnsupportedFormatError{Format: format}
}

func (r *Registry) Strategies() []Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.strategies)
}
