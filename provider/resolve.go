package provider

import (
	"context"
	"time"

	"github.com/kbukum/provkit/errors"
	"github.com/kbukum/provkit/logger"
	"github.com/kbukum/provkit/observability"
)

// Resolve returns the instance of the provider selected for contract's
// category. Without a selection, the registry's Selector picks among the
// category's providers; the default picks the first usable one in
// registration order.
func (r *Registry) Resolve(ctx context.Context, contract Contract) (Base, error) {
	return r.traced(ctx, contract, "category", func(ctx context.Context, cat *Category) (Base, error) {
		r.mu.RLock()
		selected := r.selections[cat]
		r.mu.RUnlock()

		if selected == nil {
			var err error
			selected, err = r.selector.Select(ctx, cat, r.candidates(cat))
			if err != nil {
				return nil, err
			}
			if selected == nil {
				return nil, errors.NoUsableProvider(cat.Name())
			}
		}
		return r.resolveProvider(ctx, cat, selected)
	})
}

// ResolveNamed returns the instance of the provider named name. The name is
// matched among all providers, ignoring case and surrounding space.
func (r *Registry) ResolveNamed(ctx context.Context, contract Contract, name string) (Base, error) {
	return r.traced(ctx, contract, "name", func(ctx context.Context, cat *Category) (Base, error) {
		p, ok := r.ProviderByName(name)
		if !ok {
			return nil, errors.UnknownProviderName(name)
		}
		return r.resolveProvider(ctx, cat, p)
	})
}

// ResolveProvider returns the instance of p for contract's category. p must
// be non-nil, implement the category, belong to this registry and be usable.
func (r *Registry) ResolveProvider(ctx context.Context, contract Contract, p *Registration) (Base, error) {
	return r.traced(ctx, contract, "handle", func(ctx context.Context, cat *Category) (Base, error) {
		return r.resolveProvider(ctx, cat, p)
	})
}

// traced wraps a resolution with a span, metrics and failure logging.
func (r *Registry) traced(ctx context.Context, contract Contract, selector string, fn func(context.Context, *Category) (Base, error)) (Base, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanResolve)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRegistryID, r.ID())
	observability.SetSpanAttribute(ctx, observability.AttrSelector, selector)

	start := time.Now()
	categoryName := contract.String()
	inst, err := func() (Base, error) {
		cat, err := r.categoryFor(contract)
		if err != nil {
			return nil, err
		}
		categoryName = cat.Name()
		observability.SetSpanAttribute(ctx, observability.AttrCategory, categoryName)
		return fn(ctx, cat)
	}()

	if err != nil {
		observability.SetSpanError(ctx, err)
		observability.SetSpanAttribute(ctx, observability.AttrErrorCode, string(errors.CodeOf(err)))
		if r.metrics != nil {
			r.metrics.RecordResolve(ctx, categoryName, "error", time.Since(start))
			r.metrics.RecordResolveError(ctx, categoryName, string(errors.CodeOf(err)))
		}
		r.logFailure("resolve", err, logger.Fields(logger.FieldCategory, categoryName))
		return nil, err
	}
	if r.metrics != nil {
		r.metrics.RecordResolve(ctx, categoryName, "success", time.Since(start))
	}
	return inst, nil
}

// resolveProvider is the path every resolution converges on. Checks run in
// order: nil handle, category membership, registry membership, usability.
// Usability comes last because it may build the instance.
func (r *Registry) resolveProvider(ctx context.Context, cat *Category, p *Registration) (Base, error) {
	if p == nil {
		return nil, errors.NullProvider()
	}
	observability.SetSpanAttribute(ctx, observability.AttrProvider, p.Name())

	if !p.Implements(cat) {
		return nil, errors.ContractMismatch(p.Name(), cat.Name())
	}
	if p.owner != r {
		return nil, errors.ForeignProvider(p.Name())
	}
	usable, err := p.usableFor(ctx, cat)
	if err != nil {
		return nil, err
	}
	if !usable {
		return nil, errors.ProviderNotUsable(p.Name())
	}

	inst, err := r.materialize(ctx, p, cat)
	if err != nil {
		return nil, err
	}
	if !cat.contract.satisfiedBy(inst) {
		return nil, errors.ConstructionTypeMismatch(p.Name(), cat.Name())
	}
	return inst, nil
}

// materialize returns p's instance, building it on first use. Construction
// is serialized per registration, so the strategy runs at most once even
// when callers race. A failed construction caches nothing.
func (r *Registry) materialize(ctx context.Context, p *Registration, cat *Category) (Base, error) {
	if inst, ok := p.Instance(); ok {
		observability.SetSpanAttribute(ctx, observability.AttrCached, true)
		return inst, nil
	}

	inst, created, err := p.owner.build(ctx, p)
	if err != nil {
		return nil, err
	}
	if created {
		p.owner.fire(Event{Kind: EventInstanceCreated, Category: cat, Provider: p})
	}
	return inst, nil
}

// build runs p's strategy under p.mu. created is false when another caller
// finished construction first.
func (r *Registry) build(ctx context.Context, p *Registration) (Base, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if inst, ok := p.Instance(); ok {
		return inst, false, nil
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanMaterialize)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrProvider, p.Name())
	observability.SetSpanAttribute(ctx, observability.AttrStrategy, p.strategy.kind.String())

	inst, err := p.strategy.build(r)
	if err == nil {
		if initer, ok := inst.(Initializable); ok {
			err = initer.Init(ctx)
		}
	}
	if err != nil {
		appErr := errors.ConstructionFailed(p.Name(), err)
		observability.SetSpanError(ctx, appErr)
		r.log.Warn("provider construction failed", logger.MergeWithError(logger.Fields(
			logger.FieldProvider, p.Name(),
			logger.FieldStrategy, p.strategy.kind.String(),
		), err))
		return nil, false, appErr
	}
	p.instance.Store(&instanceBox{v: inst})
	return inst, true, nil
}

// Get resolves contract and asserts the instance to T.
//
//	cache, err := provider.Get[Cache](ctx, reg, CacheContract)
func Get[T any](ctx context.Context, r *Registry, contract Contract) (T, error) {
	inst, err := r.Resolve(ctx, contract)
	return assertInstance[T](inst, err, contract)
}

// GetNamed resolves the provider named name and asserts the instance to T.
func GetNamed[T any](ctx context.Context, r *Registry, contract Contract, name string) (T, error) {
	inst, err := r.ResolveNamed(ctx, contract, name)
	return assertInstance[T](inst, err, contract)
}

func assertInstance[T any](inst Base, err error, contract Contract) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	v, ok := inst.(T)
	if !ok {
		return zero, errors.ConstructionTypeMismatch(inst.Name(), contract.String())
	}
	return v, nil
}
