package binding

import (
	"fmt"
	"strings"
)

// Strategy selects the source whose binding context the action mirrors.
// It is fixed when the binding is built; changing the markup attribute has
// no retroactive effect on live bindings.
type Strategy int

const (
	// StrategyElement mirrors the target element's binding context.
	StrategyElement Strategy = iota
	// StrategyPage mirrors the containing page's binding context.
	StrategyPage
)

// ParseStrategy reads the markup spelling of a strategy, case-insensitively.
// The empty string selects StrategyElement.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "", "element":
		return StrategyElement, nil
	case "page":
		return StrategyPage, nil
	default:
		return 0, fmt.Errorf("unknown binding context strategy %q (valid: element, page)", s)
	}
}

func (s Strategy) String() string {
	switch s {
	case StrategyPage:
		return "page"
	default:
		return "element"
	}
}
