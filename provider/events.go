package provider

import (
	"fmt"
	"time"

	"github.com/kbukum/provkit/logger"
)

// EventKind names a registry lifecycle transition.
type EventKind string

const (
	EventCategoryRegistered EventKind = "category_registered"
	EventProviderRegistered EventKind = "provider_registered"
	EventProviderSelected   EventKind = "provider_selected"
	EventInstanceCreated    EventKind = "instance_created"
)

// Event is delivered to hooks after the transition it describes.
type Event struct {
	Kind       EventKind
	RegistryID string
	// Category is the registered category, or the category the provider was
	// registered, selected or built for.
	Category *Category
	// Provider is nil for EventCategoryRegistered.
	Provider *Registration
	Time     time.Time
}

// Hook observes registry events. Hooks run synchronously on the goroutine
// that caused the event, with no registry lock held.
type Hook func(Event)

// OnCategoryRegistered adds hooks called after each category registration.
func (r *Registry) OnCategoryRegistered(hooks ...Hook) { r.on(EventCategoryRegistered, hooks) }

// OnProviderRegistered adds hooks called after each provider registration,
// with the provider's first matching category.
func (r *Registry) OnProviderRegistered(hooks ...Hook) { r.on(EventProviderRegistered, hooks) }

// OnProviderSelected adds hooks called after each SetCurrent.
func (r *Registry) OnProviderSelected(hooks ...Hook) { r.on(EventProviderSelected, hooks) }

// OnInstanceCreated adds hooks called after a provider instance is built.
func (r *Registry) OnInstanceCreated(hooks ...Hook) { r.on(EventInstanceCreated, hooks) }

// OnEvent adds hooks called for every event kind, after the kind-specific hooks.
func (r *Registry) OnEvent(hooks ...Hook) {
	r.hookMu.Lock()
	defer r.hookMu.Unlock()
	r.anyHooks = append(r.anyHooks, hooks...)
}

func (r *Registry) on(kind EventKind, hooks []Hook) {
	r.hookMu.Lock()
	defer r.hookMu.Unlock()
	r.hooks[kind] = append(r.hooks[kind], hooks...)
}

// fire delivers ev to kind-specific hooks, then to OnEvent hooks, each group
// in the order the hooks were added.
func (r *Registry) fire(ev Event) {
	ev.RegistryID = r.ID()
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	r.logEvent(ev)

	r.hookMu.RLock()
	specific := append([]Hook(nil), r.hooks[ev.Kind]...)
	general := append([]Hook(nil), r.anyHooks...)
	r.hookMu.RUnlock()

	for _, h := range specific {
		r.callHook(h, ev)
	}
	for _, h := range general {
		r.callHook(h, ev)
	}
}

// callHook isolates the registry from a panicking observer.
func (r *Registry) callHook(h Hook, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("event hook panicked", logger.Fields(
				logger.FieldEvent, string(ev.Kind),
				logger.FieldError, fmt.Sprint(rec),
			))
		}
	}()
	h(ev)
}
