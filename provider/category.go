package provider

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/provkit/errors"
)

// Category is a registered provider category. It is immutable.
type Category struct {
	id          uuid.UUID
	contract    Contract
	name        string
	description string
}

// ID returns the category's registry-unique identifier.
func (c *Category) ID() string { return c.id.String() }

// Contract returns the capability contract of the category.
func (c *Category) Contract() Contract { return c.contract }

// Name returns the category name.
func (c *Category) Name() string { return c.name }

// Description returns the category description, possibly empty.
func (c *Category) Description() string { return c.description }

func (c *Category) String() string { return c.name }

// RegisterCategory registers a provider category for contract. A blank name
// defaults to the category name declared on the contract.
func (r *Registry) RegisterCategory(contract Contract, name, description string) (*Category, error) {
	if contract.IsZero() {
		return nil, errors.InvalidArgument("contract", "is empty")
	}
	if !contract.isInterface() {
		return nil, errors.InvalidArgument("contract", contract.String()+" is not an interface type")
	}

	r.mu.Lock()
	if _, dup := r.categoryByContract[contract.iface]; dup {
		r.mu.Unlock()
		return nil, errors.DuplicateCategory(contract.String())
	}
	if contract.CategoryName() == "" {
		r.mu.Unlock()
		return nil, errors.MissingMetadata(contract.String())
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = contract.CategoryName()
	}
	key := nameKey(name)
	if _, dup := r.categoryByName[key]; dup {
		r.mu.Unlock()
		return nil, errors.DuplicateCategory(name)
	}

	cat := &Category{
		id:          uuid.New(),
		contract:    contract,
		name:        name,
		description: description,
	}
	r.categories = append(r.categories, cat)
	r.categoryByContract[contract.iface] = cat
	r.categoryByName[key] = cat
	r.mu.Unlock()

	r.fire(Event{Kind: EventCategoryRegistered, Category: cat})
	return cat, nil
}

// Categories returns the registered categories in registration order.
func (r *Registry) Categories() []*Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Category, len(r.categories))
	copy(out, r.categories)
	return out
}

// Category looks up the category registered for contract.
func (r *Registry) Category(contract Contract) (*Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cat, ok := r.categoryByContract[contract.iface]
	return cat, ok
}

// CategoryByName looks up a category by name, ignoring case and surrounding space.
func (r *Registry) CategoryByName(name string) (*Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cat, ok := r.categoryByName[nameKey(name)]
	return cat, ok
}

// categoryFor resolves contract to its category or a typed error.
func (r *Registry) categoryFor(contract Contract) (*Category, error) {
	if contract.IsZero() {
		return nil, errors.InvalidArgument("contract", "is empty")
	}
	cat, ok := r.Category(contract)
	if !ok {
		return nil, errors.UnknownCategory(contract.String())
	}
	return cat, nil
}
