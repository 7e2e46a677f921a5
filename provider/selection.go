package provider

import (
	"github.com/kbukum/provkit/errors"
	"github.com/kbukum/provkit/logger"
)

// SetCurrent selects the provider named name for contract's category. The
// name is matched among all registered providers, ignoring case and
// surrounding space; a later call replaces an earlier selection.
//
// The provider is not required to implement the category or be usable at
// this point. Resolution performs those checks.
func (r *Registry) SetCurrent(contract Contract, name string) error {
	cat, p, err := r.setCurrent(contract, name)
	if err != nil {
		r.logFailure("set_current", err, logger.Fields(
			logger.FieldCategory, contract.String(),
			logger.FieldProvider, name,
		))
		return err
	}
	r.fire(Event{Kind: EventProviderSelected, Category: cat, Provider: p})
	return nil
}

func (r *Registry) setCurrent(contract Contract, name string) (*Category, *Registration, error) {
	cat, err := r.categoryFor(contract)
	if err != nil {
		return nil, nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providerByName[nameKey(name)]
	if !ok {
		return nil, nil, errors.UnknownProviderName(name)
	}
	r.selections[cat] = p
	return cat, p, nil
}

// Current returns the provider selected for contract's category, if any.
func (r *Registry) Current(contract Contract) (*Registration, bool) {
	cat, ok := r.Category(contract)
	if !ok {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.selections[cat]
	return p, ok
}
