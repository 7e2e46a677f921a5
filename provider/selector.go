package provider

import (
	"context"
	"sync/atomic"

	"github.com/kbukum/provkit/errors"
)

// Selector picks a provider for a category that has no explicit selection.
// candidates are the category's providers in registration order.
// Implementations check candidates with Registration.UsableFor and return
// its construction errors instead of skipping the candidate.
type Selector interface {
	Select(ctx context.Context, category *Category, candidates []*Registration) (*Registration, error)
}

// FirstUsable picks the earliest registered provider that is usable.
type FirstUsable struct{}

// Select returns the first usable candidate.
func (FirstUsable) Select(ctx context.Context, category *Category, candidates []*Registration) (*Registration, error) {
	for _, p := range candidates {
		ok, err := p.usableFor(ctx, category)
		if err != nil {
			return nil, err
		}
		if ok {
			return p, nil
		}
	}
	return nil, errors.NoUsableProvider(category.Name())
}

// PrioritySelector tries providers in the given priority order
// and returns the first one that is usable.
type PrioritySelector struct {
	// Priority is the ordered list of provider names to try.
	Priority []string
	// Fallback is consulted when no prioritized provider is usable.
	Fallback Selector
}

// Select returns the first usable provider in priority order.
func (s *PrioritySelector) Select(ctx context.Context, category *Category, candidates []*Registration) (*Registration, error) {
	for _, name := range s.Priority {
		for _, p := range candidates {
			if !sameName(p.Name(), name) {
				continue
			}
			ok, err := p.usableFor(ctx, category)
			if err != nil {
				return nil, err
			}
			if ok {
				return p, nil
			}
		}
	}
	if s.Fallback != nil {
		return s.Fallback.Select(ctx, category, candidates)
	}
	return nil, errors.NoUsableProvider(category.Name())
}

// RoundRobinSelector rotates across usable providers. Each call starts one
// position after the previous call's starting point.
type RoundRobinSelector struct {
	counter atomic.Uint64
}

// Select picks the next usable provider in rotation.
func (s *RoundRobinSelector) Select(ctx context.Context, category *Category, candidates []*Registration) (*Registration, error) {
	n := len(candidates)
	if n == 0 {
		return nil, errors.NoUsableProvider(category.Name())
	}
	start := int(s.counter.Add(1)-1) % n
	for i := range n {
		p := candidates[(start+i)%n]
		ok, err := p.usableFor(ctx, category)
		if err != nil {
			return nil, err
		}
		if ok {
			return p, nil
		}
	}
	return nil, errors.NoUsableProvider(category.Name())
}
