package export

import "strconv"

// Depth is a document-link traversal budget. The zero value is unbounded.
//
// A bounded budget of 0 still processes the current document (it is copied
// and registered) but no links are followed. Every hop into a linked
// document costs exactly 1; copying assets is free.
type Depth struct {
	n       int
	bounded bool
}

// Unbounded returns a budget that never runs out.
func Unbounded() Depth { return Depth{} }

// Bounded returns a budget of n hops.
func Bounded(n int) Depth { return Depth{n: n, bounded: true} }

// FromConfig converts an optional configured depth. nil means unbounded.
func FromConfig(n *int) Depth {
	if n == nil {
		return Unbounded()
	}
	return Bounded(*n)
}

// Negative reports the hard-stop state: no copy, no registration.
func (d Depth) Negative() bool { return d.bounded && d.n < 0 }

// Exhausted reports that the current document's links must not be processed.
func (d Depth) Exhausted() bool { return d.bounded && d.n <= 0 }

// AllowsTraversal reports whether a freshly copied document may be recursed
// into (which costs one hop on top of the copy itself).
func (d Depth) AllowsTraversal() bool { return !d.bounded || d.n > 1 }

// Next returns the budget for one hop deeper.
func (d Depth) Next() Depth {
	if !d.bounded {
		return d
	}
	return Bounded(d.n - 1)
}

func (d Depth) String() string {
	if !d.bounded {
		return "unbounded"
	}
	return strconv.Itoa(d.n)
}
