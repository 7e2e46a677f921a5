// Package provider implements a registry of provider categories and the
// providers that implement them.
//
// A category is identified by a Contract: an interface type plus the
// category name declared for it. Providers are concrete types implementing
// Base and one or more registered contracts. Each provider is built at most
// once per registry, on first resolution, using its construction Strategy.
//
//	var CacheContract = provider.ContractOf[Cache]("Cache")
//
//	reg := provider.New()
//	reg.RegisterCategory(CacheContract, "", "key/value caches")
//	reg.RegisterProvider(provider.For[*MemoryCache]("memory", provider.Constructor(NewMemoryCache)))
//	reg.RegisterProvider(provider.For[*DiskCache]("disk", provider.InjectedConstructor(NewDiskCache)))
//
//	reg.SetCurrent(CacheContract, "disk")
//	cache, err := provider.Get[Cache](ctx, reg, CacheContract)
//
// # Resolution
//
// Resolve uses the category's current selection if one was set, otherwise
// the registry's Selector. The default selector, FirstUsable, returns the
// first usable provider in registration order, so the result depends on the
// order providers were registered in. ResolveNamed and ResolveProvider pick
// the provider explicitly. Every path checks that the provider implements
// the category, belongs to the registry and is usable, in that order. A
// provider whose construction fails while its usability is checked makes
// the resolution fail with CONSTRUCTION_FAILED; no other provider is tried.
//
// # Events
//
// Hooks added with OnCategoryRegistered, OnProviderRegistered,
// OnProviderSelected and OnInstanceCreated run synchronously after the
// change they describe, in the order they were added.
//
// # Concurrency
//
// A Registry is safe for concurrent use. Registration is intended for
// startup; construction is serialized per provider. A constructor may
// resolve other categories through the registry it receives but must not
// resolve its own provider.
//
// Opt-in lifecycle:
//   - Initializable: Init runs once after construction
//   - Closeable: Registry.Close closes built instances
package provider
