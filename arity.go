package cmdtree

import (
	"fmt"
	"sort"
	"strings"
)

// Signature describes the parameter counts a handler was declared with:
// how many arguments it requires, how many more it can optionally take,
// and whether it accepts a variadic tail. The counts are supplied by the
// registering caller; the package never inspects the handler itself to
// derive them.
type Signature struct {
	Required int
	Optional int
	Variadic bool
}

// usage renders placeholder arguments for the help listing, e.g.
// "<arg1> <arg2> [arg3] [args...]".
func (s Signature) usage() string {
	parts := make([]string, 0, s.Required+s.Optional+1)
	for i := 0; i < s.Required; i++ {
		parts = append(parts, fmt.Sprintf("<arg%d>", i+1))
	}
	for i := 0; i < s.Optional; i++ {
		parts = append(parts, fmt.Sprintf("[arg%d]", s.Required+i+1))
	}
	if s.Variadic {
		parts = append(parts, "[args...]")
	}
	return strings.Join(parts, " ")
}

// AritySpec constrains how many argument tokens a command accepts. A nil
// AritySpec derives the bounds from the command's Signature: at least the
// required count, at most required+optional, unbounded above when the
// signature is variadic.
//
// The two implementations are Range and ExactSet.
type AritySpec interface {
	resolve(sig Signature) (ArityPolicy, error)
}

// Range accepts any argument count within the inclusive bounds. A nil
// Lower means no lower bound; a nil Upper means no upper bound.
type Range struct {
	Lower *int
	Upper *int
}

func (r Range) resolve(Signature) (ArityPolicy, error) {
	var lower int
	if r.Lower != nil {
		lower = *r.Lower
	}
	if r.Upper != nil && lower > *r.Upper {
		return ArityPolicy{}, &InvalidArityError{
			Reason: fmt.Sprintf("lower bound %d exceeds upper bound %d", lower, *r.Upper),
		}
	}
	return ArityPolicy{lower: lower, upper: r.Upper}, nil
}

// Between returns a Range accepting between lower and upper arguments,
// inclusive.
func Between(lower, upper int) Range {
	return Range{Lower: &lower, Upper: &upper}
}

// AtLeast returns a Range with no upper bound.
func AtLeast(lower int) Range {
	return Range{Lower: &lower}
}

// AtMost returns a Range with no lower bound.
func AtMost(upper int) Range {
	return Range{Upper: &upper}
}

// Exactly returns a Range accepting only n arguments.
func Exactly(n int) Range {
	return Range{Lower: &n, Upper: &n}
}

// ExactSet accepts only the listed argument counts. An empty set is
// rejected at registration time.
type ExactSet []int

func (s ExactSet) resolve(Signature) (ArityPolicy, error) {
	if len(s) == 0 {
		return ArityPolicy{}, &InvalidArityError{Reason: "exact set is empty"}
	}
	member := make(map[int]bool, len(s))
	for _, n := range s {
		member[n] = true
	}
	values := make([]int, 0, len(member))
	for n := range member {
		values = append(values, n)
	}
	sort.Ints(values)
	return ArityPolicy{exact: member, values: values}, nil
}

// ArityPolicy is the resolved decision procedure for a leaf's argument
// count. It is fixed at registration time and never re-derived during
// dispatch.
type ArityPolicy struct {
	lower int
	upper *int // nil means unbounded

	// Set only for ExactSet specs; values holds the sorted counts for
	// stable diagnostics.
	exact  map[int]bool
	values []int
}

// resolvePolicy turns a caller-supplied spec (possibly nil) into the
// policy stored on the leaf.
func resolvePolicy(sig Signature, spec AritySpec) (ArityPolicy, error) {
	if spec == nil {
		p := ArityPolicy{lower: sig.Required}
		if !sig.Variadic {
			upper := sig.Required + sig.Optional
			p.upper = &upper
		}
		return p, nil
	}
	return spec.resolve(sig)
}

// Accepts reports whether n supplied arguments satisfy the policy.
func (p ArityPolicy) Accepts(n int) bool {
	if p.exact != nil {
		return p.exact[n]
	}
	if n < p.lower {
		return false
	}
	if p.upper != nil && n > *p.upper {
		return false
	}
	return true
}

// String describes the accepted counts for diagnostics, e.g. "exactly 2",
// "at least 1", "between 2 and 4" or "one of [0 2]".
func (p ArityPolicy) String() string {
	switch {
	case p.exact != nil:
		return fmt.Sprintf("one of %v", p.values)
	case p.upper == nil:
		return fmt.Sprintf("at least %d", p.lower)
	case p.lower == *p.upper:
		return fmt.Sprintf("exactly %d", p.lower)
	default:
		return fmt.Sprintf("between %d and %d", p.lower, *p.upper)
	}
}
