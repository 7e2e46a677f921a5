// Package blog declares the BlogProvider category and an in-memory provider
// for it.
package blog

import (
	"github.com/kbukum/provkit/provider"
)

// CategoryName is the name the blog contract declares.
const CategoryName = "BlogProvider"

// Provider is implemented by blog backends.
type Provider interface {
	provider.Base
	// PostCount returns the number of published posts.
	PostCount() int
}

// Contract identifies the blog category.
var Contract = provider.ContractOf[Provider](CategoryName)

// Register adds the blog category to r.
func Register(r *provider.Registry) (*provider.Category, error) {
	return r.RegisterCategory(Contract, "", "blog post storage")
}
