package effects

import "strings"

// DefaultEasing is the global fallback curve when neither the step nor the
// effect definition names one.
const DefaultEasing = "ease"

// namedEasings are the curves the host primitive understands by name.
var namedEasings = map[string]struct{}{
	"linear":      {},
	"ease":        {},
	"ease-in":     {},
	"ease-out":    {},
	"ease-in-out": {},
	"step-start":  {},
	"step-end":    {},
}

// ValidEasing reports whether the string names a known curve or carries a
// raw easing function (cubic-bezier or steps) passed through verbatim.
func ValidEasing(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if _, ok := namedEasings[s]; ok {
		return true
	}
	return strings.HasPrefix(s, "cubic-bezier(") || strings.HasPrefix(s, "steps(")
}

// ResolveEasing applies the fallback chain: the step's explicit easing, then
// the definition's default, then the global default. Unknown strings are
// treated as absent.
func ResolveEasing(stepEasing, definitionEasing string) string {
	if ValidEasing(stepEasing) {
		return strings.TrimSpace(stepEasing)
	}
	if ValidEasing(definitionEasing) {
		return strings.TrimSpace(definitionEasing)
	}
	return DefaultEasing
}
