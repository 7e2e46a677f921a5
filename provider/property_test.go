package provider

import (
	"context"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/kbukum/provkit/errors"
	"github.com/kbukum/provkit/logger"
)

// cacheDescriptors are five distinct concrete Cache types, so any subset can
// be registered in one registry.
func cacheDescriptors(names []string, usable []bool) []Descriptor {
	strategies := []Descriptor{
		{Type: TypeOf[*memoryCache](), Strategy: Constructor(newMemoryCache)},
		{Type: TypeOf[*diskCache](), Strategy: ZeroArg(func() (Base, error) { return &diskCache{}, nil })},
		{Type: TypeOf[*redisCache](), Strategy: InjectedConstructor(func(r *Registry) *redisCache { return &redisCache{reg: r} })},
		{Type: TypeOf[hybrid](), Strategy: ZeroArg(func() (Base, error) { return hybrid{}, nil })},
		{Type: TypeOf[*lifecycleCache](), Strategy: ZeroArg(func() (Base, error) { return &lifecycleCache{name: "lc"}, nil })},
	}
	out := make([]Descriptor, len(names))
	for i := range names {
		d := strategies[i]
		d.Name = names[i]
		d.Usable = usableIf(usable[i])
		out[i] = d
	}
	return out
}

// TestProviderNamesUniqueProperty checks that no two registered providers
// share a trimmed, case-folded name.
func TestProviderNamesUniqueProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(rt, "n")
		names := make([]string, n)
		usable := make([]bool, n)
		for i := range n {
			base := rapid.SampledFrom([]string{"audi", "bmw", "fiat"}).Draw(rt, "name")
			pad := rapid.SampledFrom([]string{"", " ", "  "}).Draw(rt, "pad")
			if rapid.Bool().Draw(rt, "upper") {
				base = strings.ToUpper(base)
			}
			names[i] = pad + base + pad
			usable[i] = true
		}

		r := New(WithLogger(logger.Nop()))
		if _, err := r.RegisterCategory(cacheContract, "", ""); err != nil {
			rt.Fatalf("RegisterCategory failed: %v", err)
		}

		seen := map[string]bool{}
		for _, d := range cacheDescriptors(names, usable) {
			_, err := r.RegisterProvider(d)
			key := nameKey(d.Name)
			if seen[key] {
				if errors.CodeOf(err) != errors.ErrCodeDuplicateProviderName {
					rt.Fatalf("expected duplicate name error for %q, got %v", d.Name, err)
				}
				continue
			}
			if err != nil {
				rt.Fatalf("RegisterProvider(%q) failed: %v", d.Name, err)
			}
			seen[key] = true
		}

		keys := map[string]bool{}
		for _, p := range r.Providers(cacheContract, false) {
			k := nameKey(p.Name())
			if keys[k] {
				rt.Fatalf("duplicate registered name %q", p.Name())
			}
			keys[k] = true
		}
	})
}

// TestResolvePolicyProperty checks that Resolve honours a selection when one
// is set and otherwise picks the first usable provider in registration order.
func TestResolvePolicyProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		n := rapid.IntRange(1, 5).Draw(rt, "n")
		names := []string{"p0", "p1", "p2", "p3", "p4"}[:n]
		usable := make([]bool, n)
		for i := range n {
			usable[i] = rapid.Bool().Draw(rt, "usable")
		}

		r := New(WithLogger(logger.Nop()))
		if _, err := r.RegisterCategory(cacheContract, "", ""); err != nil {
			rt.Fatalf("RegisterCategory failed: %v", err)
		}
		regs := make([]*Registration, n)
		for i, d := range cacheDescriptors(names, usable) {
			p, err := r.RegisterProvider(d)
			if err != nil {
				rt.Fatalf("RegisterProvider failed: %v", err)
			}
			regs[i] = p
		}

		selected := rapid.IntRange(-1, n-1).Draw(rt, "selected")
		if selected >= 0 {
			if err := r.SetCurrent(cacheContract, strings.ToUpper(names[selected])); err != nil {
				rt.Fatalf("SetCurrent failed: %v", err)
			}
		}

		inst, err := r.Resolve(ctx, cacheContract)

		var want *Registration
		switch {
		case selected >= 0:
			want = regs[selected]
			if !usable[selected] {
				if errors.CodeOf(err) != errors.ErrCodeProviderNotUsable {
					rt.Fatalf("expected PROVIDER_NOT_USABLE, got %v", err)
				}
				return
			}
		default:
			for i := range n {
				if usable[i] {
					want = regs[i]
					break
				}
			}
			if want == nil {
				if errors.CodeOf(err) != errors.ErrCodeNoUsableProvider {
					rt.Fatalf("expected NO_USABLE_PROVIDER_FOUND, got %v", err)
				}
				return
			}
		}

		if err != nil {
			rt.Fatalf("Resolve failed: %v", err)
		}
		got, _ := want.Instance()
		if inst != got {
			rt.Fatalf("expected instance of %s", want.Name())
		}
	})
}

// TestInstanceStableProperty checks that repeated resolution in any mix of
// entry points returns one instance per provider.
func TestInstanceStableProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		r := New(WithLogger(logger.Nop()))
		if _, err := r.RegisterCategory(cacheContract, "", ""); err != nil {
			rt.Fatalf("RegisterCategory failed: %v", err)
		}
		builds := 0
		p, err := r.RegisterProvider(For[*memoryCache]("MemoryCache", ZeroArg(func() (Base, error) {
			builds++
			return newMemoryCache(), nil
		})))
		if err != nil {
			rt.Fatalf("RegisterProvider failed: %v", err)
		}

		var first Base
		calls := rapid.IntRange(1, 20).Draw(rt, "calls")
		for range calls {
			var inst Base
			switch rapid.IntRange(0, 2).Draw(rt, "entry") {
			case 0:
				inst, err = r.Resolve(ctx, cacheContract)
			case 1:
				inst, err = r.ResolveNamed(ctx, cacheContract, "memorycache")
			default:
				inst, err = r.ResolveProvider(ctx, cacheContract, p)
			}
			if err != nil {
				rt.Fatalf("resolve failed: %v", err)
			}
			if first == nil {
				first = inst
			} else if inst != first {
				rt.Fatal("resolution returned a different instance")
			}
		}
		if builds != 1 {
			rt.Fatalf("expected 1 construction, got %d", builds)
		}
	})
}
