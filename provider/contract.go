package provider

import (
	"reflect"
	"strings"
)

// Base is implemented by every provider type.
type Base interface {
	// Name is the provider's unique display name.
	Name() string
	// Description is optional and may be empty.
	Description() string
	// CanUse reports whether the provider can currently serve requests.
	CanUse() bool
}

var baseType = reflect.TypeFor[Base]()

// Contract identifies a provider category. It wraps an interface type and the
// category name declared for it. Contracts compare by interface type only.
type Contract struct {
	iface    reflect.Type
	category string
}

// ContractOf declares a contract for interface I with a category name.
//
//	var CacheContract = provider.ContractOf[Cache]("Cache")
func ContractOf[I any](category string) Contract {
	return Contract{
		iface:    reflect.TypeFor[I](),
		category: strings.TrimSpace(category),
	}
}

// IsZero reports whether the contract is empty.
func (c Contract) IsZero() bool { return c.iface == nil }

// Type returns the contract's interface type.
func (c Contract) Type() reflect.Type { return c.iface }

// CategoryName returns the declared category name, possibly empty.
func (c Contract) CategoryName() string { return c.category }

// Equal reports whether both contracts denote the same interface.
func (c Contract) Equal(other Contract) bool { return c.iface == other.iface }

func (c Contract) String() string {
	if c.iface == nil {
		return "<nil contract>"
	}
	return c.iface.String()
}

func (c Contract) isInterface() bool {
	return c.iface != nil && c.iface.Kind() == reflect.Interface
}

// implementedBy reports whether values of type t satisfy the contract.
func (c Contract) implementedBy(t reflect.Type) bool {
	return t != nil && c.isInterface() && t.Implements(c.iface)
}

// satisfiedBy reports whether the dynamic type of v satisfies the contract.
func (c Contract) satisfiedBy(v any) bool {
	return v != nil && c.implementedBy(reflect.TypeOf(v))
}

// TypeOf returns the type descriptor of T for use in a Descriptor.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
