package provider

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kbukum/provkit/validation"
)

// Descriptor describes a provider to register.
type Descriptor struct {
	// Type is the concrete provider type, usually TypeOf[*MyProvider]().
	Type reflect.Type
	// Name is the provider's unique name. A pre-built instance's non-blank
	// Name() takes precedence.
	Name string
	// Description is optional. When blank, a pre-built instance's
	// Description() is used.
	Description string
	// Implements lists the contracts the provider satisfies. When empty the
	// set is computed from Type against the registered categories.
	Implements []Contract
	// Usable overrides the instance's CanUse. It lets usability be checked
	// without constructing the provider.
	Usable func() bool
	// Strategy says how the instance is obtained.
	Strategy Strategy
}

// For builds a Descriptor for type T.
func For[T any](name string, strategy Strategy) Descriptor {
	return Descriptor{Type: TypeOf[T](), Name: name, Strategy: strategy}
}

// instanceBox lets the cached instance live in an atomic.Pointer.
type instanceBox struct{ v Base }

// Registration is a validated provider stored in a Registry. Its instance is
// built at most once and never replaced, so callers may keep the handle.
type Registration struct {
	id          uuid.UUID
	owner       *Registry
	typ         reflect.Type
	name        string
	description string
	categories  []*Category
	usable      func() bool
	strategy    Strategy

	// mu serializes construction; instance is read without it.
	mu       sync.Mutex
	instance atomic.Pointer[instanceBox]
}

// ID returns the registration's unique identifier.
func (p *Registration) ID() string { return p.id.String() }

// Name returns the provider name.
func (p *Registration) Name() string { return p.name }

// Description returns the provider description, possibly empty.
func (p *Registration) Description() string { return p.description }

// Type returns the concrete provider type.
func (p *Registration) Type() reflect.Type { return p.typ }

// Strategy returns the construction strategy variant.
func (p *Registration) Strategy() StrategyKind { return p.strategy.kind }

// Categories returns the registered categories the provider implements, in
// category registration order.
func (p *Registration) Categories() []*Category {
	out := make([]*Category, len(p.categories))
	copy(out, p.categories)
	return out
}

// Implements reports whether the provider implements category. Categories
// of another registry match when they share the contract.
func (p *Registration) Implements(category *Category) bool {
	if category == nil {
		return false
	}
	for _, c := range p.categories {
		if c == category || c.contract.Equal(category.contract) {
			return true
		}
	}
	return false
}

// Instance returns the cached instance, if one has been built.
func (p *Registration) Instance() (Base, bool) {
	if box := p.instance.Load(); box != nil {
		return box.v, true
	}
	return nil, false
}

// Materialized reports whether the instance exists.
func (p *Registration) Materialized() bool {
	return p.instance.Load() != nil
}

// Usable reports whether the provider can currently be used. Without a
// Usable predicate this reads CanUse from the instance, building it first if
// needed. A provider that fails to build reports false here; resolution
// returns the construction error instead.
func (p *Registration) Usable() bool {
	ok, err := p.usableFor(context.Background(), p.categories[0])
	return err == nil && ok
}

// UsableFor is Usable with construction errors returned. category is
// reported on the InstanceCreated event if this call builds the instance.
func (p *Registration) UsableFor(ctx context.Context, category *Category) (bool, error) {
	return p.usableFor(ctx, category)
}

func (p *Registration) usableFor(ctx context.Context, category *Category) (bool, error) {
	if p.usable != nil {
		return p.usable(), nil
	}
	inst, err := p.owner.materialize(ctx, p, category)
	if err != nil {
		return false, err
	}
	return inst.CanUse(), nil
}

func (p *Registration) String() string { return p.name }

func isNil(v any) bool {
	return validation.New().NotNil("value", v).HasErrors()
}
