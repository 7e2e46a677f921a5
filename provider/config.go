package provider

import (
	"slices"

	"github.com/kbukum/provkit/errors"
	"github.com/kbukum/provkit/logger"
)

// Config holds provider selections loaded from configuration.
type Config struct {
	// Selections maps a category name to the provider name to make current.
	Selections map[string]string `mapstructure:"selections" validate:"dive,keys,required,endkeys,required"`
	// Strict makes Apply stop at the first selection that cannot be applied.
	// Otherwise such selections are logged and skipped.
	Strict bool `mapstructure:"strict"`
}

// Apply makes the configured selections current, in category-name order.
// In strict mode the first failure is returned; otherwise failures are
// logged and the remaining selections are still applied.
func (r *Registry) Apply(cfg Config) error {
	names := make([]string, 0, len(cfg.Selections))
	for name := range cfg.Selections {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, categoryName := range names {
		providerName := cfg.Selections[categoryName]
		err := r.applySelection(categoryName, providerName)
		if err == nil {
			continue
		}
		if cfg.Strict {
			return err
		}
		r.log.Warn("skipping configured selection", logger.MergeWithError(logger.Fields(
			logger.FieldCategory, categoryName,
			logger.FieldProvider, providerName,
		), err))
	}
	return nil
}

func (r *Registry) applySelection(categoryName, providerName string) error {
	cat, ok := r.CategoryByName(categoryName)
	if !ok {
		return errors.UnknownCategory(categoryName)
	}
	return r.SetCurrent(cat.Contract(), providerName)
}
