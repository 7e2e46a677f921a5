package provider

import "fmt"

// StrategyKind enumerates how a provider instance is obtained.
type StrategyKind int

const (
	// StrategyNone means no construction path was supplied.
	StrategyNone StrategyKind = iota
	// StrategyPreBuilt uses an instance supplied at registration.
	StrategyPreBuilt
	// StrategyZeroArg calls a constructor that takes no arguments.
	StrategyZeroArg
	// StrategyInjected calls a constructor that receives the owning registry.
	StrategyInjected
)

// String returns the strategy name.
func (k StrategyKind) String() string {
	switch k {
	case StrategyPreBuilt:
		return "prebuilt"
	case StrategyZeroArg:
		return "zero-arg"
	case StrategyInjected:
		return "injected"
	default:
		return "none"
	}
}

// Strategy is the construction policy of a registration. Build one with
// PreBuilt, ZeroArg or Injected; the zero Strategy has no construction path.
type Strategy struct {
	kind     StrategyKind
	instance Base
	zeroArg  func() (Base, error)
	injected func(*Registry) (Base, error)
}

// PreBuilt uses instance as the provider's singleton.
func PreBuilt(instance Base) Strategy {
	return Strategy{kind: StrategyPreBuilt, instance: instance}
}

// ZeroArg builds the provider by calling fn on first resolution.
func ZeroArg(fn func() (Base, error)) Strategy {
	return Strategy{kind: StrategyZeroArg, zeroArg: fn}
}

// Injected builds the provider by calling fn with the owning registry on
// first resolution. Any other settings the provider needs are fn's to default.
func Injected(fn func(*Registry) (Base, error)) Strategy {
	return Strategy{kind: StrategyInjected, injected: fn}
}

// Constructor adapts a typed, infallible zero-argument constructor.
//
//	provider.Constructor(NewMemoryCache)
func Constructor[T Base](fn func() T) Strategy {
	if fn == nil {
		return ZeroArg(nil)
	}
	return ZeroArg(func() (Base, error) { return fn(), nil })
}

// InjectedConstructor adapts a typed, infallible registry-receiving constructor.
func InjectedConstructor[T Base](fn func(*Registry) T) Strategy {
	if fn == nil {
		return Injected(nil)
	}
	return Injected(func(r *Registry) (Base, error) { return fn(r), nil })
}

// Kind returns the strategy variant.
func (s Strategy) Kind() StrategyKind { return s.kind }

// canBuild reports whether the strategy has a usable construction path.
func (s Strategy) canBuild() bool {
	switch s.kind {
	case StrategyPreBuilt:
		return !isNil(s.instance)
	case StrategyZeroArg:
		return s.zeroArg != nil
	case StrategyInjected:
		return s.injected != nil
	default:
		return false
	}
}

// build produces a new instance. Pre-built strategies return their instance.
func (s Strategy) build(r *Registry) (Base, error) {
	var (
		inst Base
		err  error
	)
	switch s.kind {
	case StrategyPreBuilt:
		inst = s.instance
	case StrategyZeroArg:
		inst, err = s.zeroArg()
	case StrategyInjected:
		inst, err = s.injected(r)
	default:
		return nil, fmt.Errorf("no construction path")
	}
	if err != nil {
		return nil, err
	}
	if isNil(inst) {
		return nil, fmt.Errorf("%s constructor returned nil", s.kind)
	}
	return inst, nil
}
