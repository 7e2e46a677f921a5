package provider

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/kbukum/provkit/logger"
)

// Initializable is optionally implemented by providers that need setup
// before handling requests (e.g., open a connection, warm a cache).
// The registry calls Init once, right after construction; a failing Init
// leaves nothing cached.
type Initializable interface {
	Init(ctx context.Context) error
}

// Closeable is optionally implemented by providers that hold resources
// requiring explicit cleanup. Registry.Close calls it.
type Closeable interface {
	Close(ctx context.Context) error
}

// Close closes every built instance that implements Closeable, in reverse
// registration order. All instances are closed even if some fail; the
// errors are joined. Instances stay cached.
func (r *Registry) Close(ctx context.Context) error {
	providers := r.AllProviders()

	var errs []error
	for i := len(providers) - 1; i >= 0; i-- {
		p := providers[i]
		inst, ok := p.Instance()
		if !ok {
			continue
		}
		c, ok := inst.(Closeable)
		if !ok {
			continue
		}
		if err := c.Close(ctx); err != nil {
			r.log.Warn("provider close failed", logger.MergeWithError(
				logger.Fields(logger.FieldProvider, p.Name()), err))
			errs = append(errs, fmt.Errorf("close provider %q: %w", p.Name(), err))
			continue
		}
		r.log.Debug("provider closed", logger.Fields(logger.FieldProvider, p.Name()))
	}
	return stderrors.Join(errs...)
}
