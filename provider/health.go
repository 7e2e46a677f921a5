package provider

import (
	"context"
	"fmt"

	"github.com/kbukum/provkit/observability"
)

const healthComponent = "provider-registry"

// CheckHealth reports whether each category can currently be resolved.
// The status is up when every category has a usable provider, down when
// none do, and degraded in between. A registry with no categories is up.
//
// Checking usability may build providers that have no Usable predicate.
func (r *Registry) CheckHealth(ctx context.Context) observability.Health {
	h := observability.Health{Name: healthComponent, Status: observability.HealthStatusUp}

	cats := r.Categories()
	ready := 0
	for _, cat := range cats {
		p := r.effective(ctx, cat)
		if p == nil {
			h.SetDetail(cat.Name(), "none")
			continue
		}
		h.SetDetail(cat.Name(), p.Name())
		ready++
	}

	switch {
	case ready == len(cats):
	case ready == 0:
		h.Status = observability.HealthStatusDown
	default:
		h.Status = observability.HealthStatusDegraded
	}
	h.Message = fmt.Sprintf("%d/%d categories resolvable", ready, len(cats))
	return h
}

// effective returns the usable provider Resolve would pick for cat, or nil.
// Construction errors count as "not resolvable" here; Resolve reports them.
func (r *Registry) effective(ctx context.Context, cat *Category) *Registration {
	r.mu.RLock()
	selected := r.selections[cat]
	r.mu.RUnlock()

	if selected != nil {
		if !selected.Implements(cat) {
			return nil
		}
		if ok, err := selected.usableFor(ctx, cat); err != nil || !ok {
			return nil
		}
		return selected
	}
	p, err := r.selector.Select(ctx, cat, r.candidates(cat))
	if err != nil {
		return nil
	}
	return p
}
