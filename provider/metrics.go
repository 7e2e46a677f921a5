package provider

import (
	"context"

	"github.com/kbukum/provkit/observability"
)

// WithMetrics records registry events and resolve calls on m.
func WithMetrics(m *observability.RegistryMetrics) Option {
	return func(r *Registry) {
		if m == nil {
			return
		}
		r.metrics = m
		r.OnEvent(func(ev Event) { recordEvent(m, ev) })
	}
}

func recordEvent(m *observability.RegistryMetrics, ev Event) {
	ctx := context.Background()
	var category, provider string
	if ev.Category != nil {
		category = ev.Category.Name()
	}
	if ev.Provider != nil {
		provider = ev.Provider.Name()
	}

	switch ev.Kind {
	case EventCategoryRegistered:
		m.RecordCategory(ctx, category)
	case EventProviderRegistered:
		m.RecordProvider(ctx, provider, category)
	case EventProviderSelected:
		m.RecordSelection(ctx, category, provider)
	case EventInstanceCreated:
		m.RecordInstance(ctx, provider, category)
	}
}
