package provider

import (
	"strings"

	"golang.org/x/text/cases"
)

// nameKey normalizes a category or provider name for uniqueness checks and
// lookups: surrounding space is ignored and case is folded.
func nameKey(name string) string {
	// cases.Caser is stateful, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(name))
}

// sameName reports whether two names collide under nameKey.
func sameName(a, b string) bool {
	return nameKey(a) == nameKey(b)
}
