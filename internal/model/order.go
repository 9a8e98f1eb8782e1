package model

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownOrder is returned by ParseOrder for an unrecognized option name
var ErrUnknownOrder = errors.New("unknown sort order")

// Order selects how sibling nodes are listed.
// The zero value is OrderNone, which keeps enumeration order.
type Order int

const (
	OrderNone Order = iota
	OrderName
	OrderDir
	OrderSize
)

// Comparator returns a negative number when a sorts before b, a positive
// number when b sorts before a, and zero when they are equal.
type Comparator func(a, b *Node) int

// Orders lists every order in the order they are documented
var Orders = []Order{OrderName, OrderDir, OrderSize, OrderNone}

// String returns the option name of the order
func (o Order) String() string {
	switch o {
	case OrderName:
		return "name"
	case OrderDir:
		return "dir"
	case OrderSize:
		return "size"
	default:
		return "none"
	}
}

// ParseOrder maps an option name to an Order. An empty string means OrderNone.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return OrderName, nil
	case "dir":
		return OrderDir, nil
	case "size":
		return OrderSize, nil
	case "", "none":
		return OrderNone, nil
	}
	return OrderNone, fmt.Errorf("%w %q (want one of name, dir, size, none)", ErrUnknownOrder, s)
}

// Set implements pflag.Value
func (o *Order) Set(s string) error {
	parsed, err := ParseOrder(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Type implements pflag.Value
func (o *Order) Type() string {
	return "order"
}

// Comparator returns the comparison rule for the order, or nil for OrderNone
func (o Order) Comparator() Comparator {
	switch o {
	case OrderName:
		return compareName
	case OrderDir:
		return compareDirFirst
	case OrderSize:
		return compareSize
	default:
		return nil
	}
}

// Sort orders nodes in place with a stable sort. OrderNone leaves them untouched.
func (o Order) Sort(nodes []*Node) {
	compare := o.Comparator()
	if compare == nil {
		return
	}
	slices.SortStableFunc(nodes, compare)
}

// Sorted returns a sorted copy of nodes, leaving the input slice as is
func (o Order) Sorted(nodes []*Node) []*Node {
	sorted := make([]*Node, len(nodes))
	copy(sorted, nodes)
	o.Sort(sorted)
	return sorted
}

// compareName orders by name, byte-wise ascending
func compareName(a, b *Node) int {
	return strings.Compare(a.Name, b.Name)
}

// compareDirFirst puts directories before everything else, then falls back to name
func compareDirFirst(a, b *Node) int {
	switch {
	case a.IsDir && !b.IsDir:
		return -1
	case !a.IsDir && b.IsDir:
		return 1
	}
	return compareName(a, b)
}

// compareSize orders by effective size, largest first
func compareSize(a, b *Node) int {
	return cmp.Compare(b.EffectiveSize(), a.EffectiveSize())
}
