package provider

import (
	"testing"

	"github.com/kbukum/provkit/errors"
)

func TestRegisterProvider(t *testing.T) {
	r := newTestRegistry(t)

	p := mustRegister(t, r, Descriptor{
		Type:        TypeOf[*memoryCache](),
		Name:        " MemoryCache ",
		Description: "in-process",
		Strategy:    Constructor(newMemoryCache),
	})

	if p.Name() != "MemoryCache" {
		t.Errorf("expected trimmed name, got %q", p.Name())
	}
	if p.Description() != "in-process" {
		t.Errorf("unexpected description %q", p.Description())
	}
	if p.Type() != TypeOf[*memoryCache]() {
		t.Errorf("unexpected type %v", p.Type())
	}
	if p.Strategy() != StrategyZeroArg {
		t.Errorf("expected zero-arg strategy, got %s", p.Strategy())
	}
	if p.Materialized() {
		t.Error("zero-arg provider must not be built at registration")
	}
	cats := p.Categories()
	if len(cats) != 1 || cats[0].Name() != "Cache" {
		t.Errorf("expected [Cache], got %v", cats)
	}
}

func TestRegisterProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
		code errors.ErrorCode
	}{
		{
			name: "nil type",
			desc: Descriptor{Name: "x", Strategy: Constructor(newMemoryCache)},
			code: errors.ErrCodeInvalidArgument,
		},
		{
			name: "duplicate type",
			desc: For[*memoryCache]("Another", Constructor(newMemoryCache)),
			code: errors.ErrCodeDuplicateProvider,
		},
		{
			name: "interface type",
			desc: For[Cache]("iface", Constructor(newMemoryCache)),
			code: errors.ErrCodeNotAConcreteType,
		},
		{
			name: "not a provider",
			desc: For[*notProvider]("np", ZeroArg(func() (Base, error) { return &bareProvider{}, nil })),
			code: errors.ErrCodeNotAProvider,
		},
		{
			name: "no matching category",
			desc: For[*bareProvider]("bare", PreBuilt(&bareProvider{})),
			code: errors.ErrCodeNoMatchingCategory,
		},
		{
			name: "instance type mismatch",
			desc: For[*diskCache]("disk", PreBuilt(newMemoryCache())),
			code: errors.ErrCodeInstanceTypeMismatch,
		},
		{
			name: "no strategy",
			desc: For[*diskCache]("disk", Strategy{}),
			code: errors.ErrCodeNoUsableConstructor,
		},
		{
			name: "nil pre-built instance",
			desc: For[*diskCache]("disk", PreBuilt((*diskCache)(nil))),
			code: errors.ErrCodeNoUsableConstructor,
		},
		{
			name: "nil factory",
			desc: For[*diskCache]("disk", ZeroArg(nil)),
			code: errors.ErrCodeNoUsableConstructor,
		},
		{
			name: "nil injected factory",
			desc: For[*diskCache]("disk", Injected(nil)),
			code: errors.ErrCodeNoUsableConstructor,
		},
		{
			name: "blank name",
			desc: For[*diskCache]("   ", ZeroArg(func() (Base, error) { return &diskCache{}, nil })),
			code: errors.ErrCodeInvalidArgument,
		},
		{
			name: "duplicate name",
			desc: For[*diskCache](" memorycache ", ZeroArg(func() (Base, error) { return &diskCache{}, nil })),
			code: errors.ErrCodeDuplicateProviderName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry(t)
			mustRegister(t, r, For[*memoryCache]("MemoryCache", Constructor(newMemoryCache)))

			_, err := r.RegisterProvider(tt.desc)
			assertCode(t, err, tt.code)

			if got := len(r.Providers(cacheContract, false)); got != 1 {
				t.Errorf("expected only the first provider to be listed, got %d", got)
			}
		})
	}
}

func TestRegisterProviderDuplicateNameTrimmedCaseInsensitive(t *testing.T) {
	r := newTestRegistry(t)
	mustRegister(t, r, For[*memoryCache](" Audi ", Constructor(newMemoryCache)))

	_, err := r.RegisterProvider(For[*diskCache]("audi", ZeroArg(func() (Base, error) {
		return &diskCache{usable: true}, nil
	})))
	assertCode(t, err, errors.ErrCodeDuplicateProviderName)
}

func TestRegisterProviderNoMatchingCategoryIsNotListed(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.RegisterProvider(For[*fileStore]("FileStore", PreBuilt(&fileStore{})))
	assertCode(t, err, errors.ErrCodeNoMatchingCategory)

	// Registering the category afterwards does not revive the rejected provider.
	if _, err := r.RegisterCategory(storeContract, "", ""); err != nil {
		t.Fatalf("RegisterCategory failed: %v", err)
	}
	if got := r.Providers(storeContract, false); len(got) != 0 {
		t.Errorf("expected no Store providers, got %v", got)
	}
	if _, ok := r.ProviderByName("FileStore"); ok {
		t.Error("rejected provider must not be found by name")
	}
}

func TestRegisterProviderPreBuiltSuppliesMetadata(t *testing.T) {
	r := newTestRegistry(t)
	inst := newMemoryCache()

	p := mustRegister(t, r, Descriptor{Type: TypeOf[*memoryCache](), Strategy: PreBuilt(inst)})

	if p.Name() != "MemoryCache" {
		t.Errorf("expected name from instance, got %q", p.Name())
	}
	if p.Description() != "in-process map" {
		t.Errorf("expected description from instance, got %q", p.Description())
	}
	got, ok := p.Instance()
	if !ok || got != inst {
		t.Error("expected the pre-built instance to be cached at registration")
	}
}

func TestRegisterProviderMatchesEveryCategory(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.RegisterCategory(storeContract, "", ""); err != nil {
		t.Fatalf("RegisterCategory failed: %v", err)
	}

	var first *Category
	r.OnProviderRegistered(func(ev Event) { first = ev.Category })

	p := mustRegister(t, r, For[hybrid]("Hybrid", PreBuilt(hybrid{})))

	cats := p.Categories()
	if len(cats) != 2 || cats[0].Name() != "Cache" || cats[1].Name() != "Store" {
		t.Errorf("expected [Cache Store], got %v", cats)
	}
	if first == nil || first.Name() != "Cache" {
		t.Errorf("expected event for first matching category Cache, got %v", first)
	}
}

func TestRegisterProviderExplicitImplements(t *testing.T) {
	r := newTestRegistry(t)
	if _, err := r.RegisterCategory(storeContract, "", ""); err != nil {
		t.Fatalf("RegisterCategory failed: %v", err)
	}

	p := mustRegister(t, r, Descriptor{
		Type:       TypeOf[hybrid](),
		Name:       "Hybrid",
		Implements: []Contract{storeContract},
		Strategy:   PreBuilt(hybrid{}),
	})

	if len(p.Categories()) != 1 || p.Categories()[0].Name() != "Store" {
		t.Errorf("expected only Store, got %v", p.Categories())
	}
	if got := r.Providers(cacheContract, false); len(got) != 0 {
		t.Errorf("expected no Cache providers, got %v", got)
	}
}

func TestProvidersFiltersAndOrders(t *testing.T) {
	r := newTestRegistry(t)
	mustRegister(t, r, Descriptor{
		Type:     TypeOf[*diskCache](),
		Name:     "DiskCache",
		Usable:   usableIf(false),
		Strategy: ZeroArg(func() (Base, error) { return &diskCache{}, nil }),
	})
	mustRegister(t, r, For[*memoryCache]("MemoryCache", Constructor(newMemoryCache)))
	mustRegister(t, r, For[*redisCache]("RedisCache", InjectedConstructor(func(reg *Registry) *redisCache {
		return &redisCache{reg: reg}
	})))

	all := r.Providers(cacheContract, false)
	if len(all) != 3 {
		t.Fatalf("expected 3 providers, got %d", len(all))
	}
	want := []string{"DiskCache", "MemoryCache", "RedisCache"}
	for i, p := range all {
		if p.Name() != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], p.Name())
		}
	}

	usable := r.Providers(cacheContract, true)
	if len(usable) != 2 || usable[0].Name() != "MemoryCache" || usable[1].Name() != "RedisCache" {
		t.Errorf("expected [MemoryCache RedisCache], got %v", usable)
	}

	if got := r.Providers(storeContract, false); got != nil {
		t.Errorf("expected nil for unknown category, got %v", got)
	}
}

func TestProviderByName(t *testing.T) {
	r := newTestRegistry(t)
	p := mustRegister(t, r, For[*memoryCache]("MemoryCache", Constructor(newMemoryCache)))

	got, ok := r.ProviderByName("  memorycache")
	if !ok || got != p {
		t.Errorf("expected lookup to ignore case and space, got %v, %v", got, ok)
	}
	if _, ok := r.ProviderByName("disk"); ok {
		t.Error("expected unknown name to miss")
	}
}

func TestUsableReadsInstanceWithoutPredicate(t *testing.T) {
	r := newTestRegistry(t)
	inst := &diskCache{usable: true}
	p := mustRegister(t, r, For[*diskCache]("DiskCache", PreBuilt(inst)))

	if !p.Usable() {
		t.Fatal("expected usable while CanUse is true")
	}
	inst.usable = false
	if p.Usable() {
		t.Error("expected usability to follow CanUse live")
	}
}

func TestRegisterProviderPreBuiltNameWins(t *testing.T) {
	r := newTestRegistry(t)

	p := mustRegister(t, r, For[*memoryCache]("Alias", PreBuilt(newMemoryCache())))
	if p.Name() != "MemoryCache" {
		t.Errorf("expected the instance name, got %q", p.Name())
	}
	if _, ok := r.ProviderByName("Alias"); ok {
		t.Error("descriptor name must not be registered when the instance names itself")
	}

	// A blank instance name falls back to the descriptor.
	q := mustRegister(t, r, For[*lifecycleCache]("Fallback", PreBuilt(&lifecycleCache{})))
	if q.Name() != "Fallback" {
		t.Errorf("expected descriptor name for unnamed instance, got %q", q.Name())
	}
}
