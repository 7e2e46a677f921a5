package provider

import (
	"reflect"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/provkit/errors"
	"github.com/kbukum/provkit/logger"
	"github.com/kbukum/provkit/validation"
)

// RegisterProvider validates d and adds it to the registry. Checks run in
// this order: nil type, duplicate type, interface type, missing Base
// methods, no matching category, construction strategy, name, duplicate name.
func (r *Registry) RegisterProvider(d Descriptor) (*Registration, error) {
	reg, err := r.registerProvider(d)
	if err != nil {
		typeName := "<nil>"
		if d.Type != nil {
			typeName = d.Type.String()
		}
		r.logFailure("register_provider", err, logger.Fields(logger.FieldType, typeName))
		return nil, err
	}
	r.fire(Event{Kind: EventProviderRegistered, Provider: reg, Category: reg.categories[0]})
	return reg, nil
}

func (r *Registry) registerProvider(d Descriptor) (*Registration, error) {
	if d.Type == nil {
		return nil, errors.InvalidArgument("type", "is nil")
	}
	typeName := d.Type.String()

	r.mu.RLock()
	_, dup := r.providerByType[d.Type]
	r.mu.RUnlock()
	if dup {
		return nil, errors.DuplicateProvider(typeName)
	}
	if d.Type.Kind() == reflect.Interface {
		return nil, errors.NotAConcreteType(typeName)
	}
	if !d.Type.Implements(baseType) {
		return nil, errors.NotAProvider(typeName)
	}

	categories := r.matchCategories(d)
	if len(categories) == 0 {
		return nil, errors.NoMatchingCategory(typeName)
	}

	if d.Strategy.Kind() == StrategyPreBuilt && !isNil(d.Strategy.instance) {
		if got := reflect.TypeOf(d.Strategy.instance); got != d.Type {
			return nil, errors.InstanceTypeMismatch(typeName, got.String())
		}
	} else if !d.Strategy.canBuild() {
		return nil, errors.NoUsableConstructor(typeName)
	}

	reg := &Registration{
		id:          uuid.New(),
		owner:       r,
		typ:         d.Type,
		name:        strings.TrimSpace(d.Name),
		description: d.Description,
		categories:  categories,
		usable:      d.Usable,
		strategy:    d.Strategy,
	}
	// A pre-built instance is the cached instance from the start. Its Name
	// overrides the descriptor's; its Description fills a blank one.
	if d.Strategy.Kind() == StrategyPreBuilt {
		inst := d.Strategy.instance
		reg.instance.Store(&instanceBox{v: inst})
		if name := strings.TrimSpace(inst.Name()); name != "" {
			reg.name = name
		}
		if reg.description == "" {
			reg.description = inst.Description()
		}
	}
	if err := validation.New().Required("name", reg.name).Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.providerByType[d.Type]; dup {
		return nil, errors.DuplicateProvider(typeName)
	}
	key := nameKey(reg.name)
	if _, dup := r.providerByName[key]; dup {
		return nil, errors.DuplicateProviderName(reg.name)
	}
	r.providers = append(r.providers, reg)
	r.providerByType[d.Type] = reg
	r.providerByName[key] = reg
	return reg, nil
}

// matchCategories returns the registered categories d implements, in
// category registration order.
func (r *Registry) matchCategories(d Descriptor) []*Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Category
	for _, cat := range r.categories {
		if declares(d, cat.contract) {
			out = append(out, cat)
		}
	}
	return out
}

func declares(d Descriptor, contract Contract) bool {
	if len(d.Implements) == 0 {
		return contract.implementedBy(d.Type)
	}
	for _, c := range d.Implements {
		if c.Equal(contract) {
			return true
		}
	}
	return false
}

// Providers returns the providers implementing contract's category in
// registration order. With onlyUsable, providers whose Usable is false are
// left out. An unknown contract yields nil.
func (r *Registry) Providers(contract Contract, onlyUsable bool) []*Registration {
	cat, ok := r.Category(contract)
	if !ok {
		return nil
	}
	candidates := r.candidates(cat)
	if !onlyUsable {
		return candidates
	}
	out := candidates[:0]
	for _, p := range candidates {
		if p.Usable() {
			out = append(out, p)
		}
	}
	return out
}

// AllProviders returns every registered provider in registration order.
func (r *Registry) AllProviders() []*Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Registration, len(r.providers))
	copy(out, r.providers)
	return out
}

// ProviderByName looks up a provider by name, ignoring case and surrounding space.
func (r *Registry) ProviderByName(name string) (*Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providerByName[nameKey(name)]
	return p, ok
}

// candidates snapshots the providers of cat in registration order.
func (r *Registry) candidates(cat *Category) []*Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Registration
	for _, p := range r.providers {
		if p.Implements(cat) {
			out = append(out, p)
		}
	}
	return out
}
