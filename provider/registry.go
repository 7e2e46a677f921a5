package provider

import (
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/provkit/logger"
	"github.com/kbukum/provkit/observability"
)

// Registry holds provider categories, providers, selections and the
// singleton instances built from them.
type Registry struct {
	id uuid.UUID

	mu                 sync.RWMutex
	categories         []*Category
	categoryByContract map[reflect.Type]*Category
	categoryByName     map[string]*Category
	providers          []*Registration
	providerByType     map[reflect.Type]*Registration
	providerByName     map[string]*Registration
	selections         map[*Category]*Registration

	hookMu   sync.RWMutex
	hooks    map[EventKind][]Hook
	anyHooks []Hook

	selector Selector
	log      *logger.Logger
	metrics  *observability.RegistryMetrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// WithSelector sets the policy used when a category has no explicit
// selection. The default is FirstUsable.
func WithSelector(s Selector) Option {
	return func(r *Registry) {
		if s != nil {
			r.selector = s
		}
	}
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		id:                 uuid.New(),
		categoryByContract: make(map[reflect.Type]*Category),
		categoryByName:     make(map[string]*Category),
		providerByType:     make(map[reflect.Type]*Registration),
		providerByName:     make(map[string]*Registration),
		selections:         make(map[*Category]*Registration),
		hooks:              make(map[EventKind][]Hook),
		selector:           FirstUsable{},
		log:                logger.Get("provider"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.WithFields(logger.Fields(logger.FieldRegistryID, r.id.String()))
	return r
}

// ID returns the registry's unique identifier.
func (r *Registry) ID() string { return r.id.String() }
