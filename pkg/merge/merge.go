package merge

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Strategy selects how ties between equal totals are ordered.
type Strategy string

const (
	// StrategyOrdered breaks ties by first appearance across the inputs.
	StrategyOrdered Strategy = "ordered"
	// StrategyCounting breaks ties by the order in which key totals last
	// changed: a key that reached its total earlier comes first.
	StrategyCounting Strategy = "counting"
)

// ErrUnknownStrategy is returned by ParseStrategy and Merge for unknown names.
var ErrUnknownStrategy = errors.New("unknown merge strategy")

// Strategies lists the supported strategies.
func Strategies() []Strategy {
	return []Strategy{StrategyOrdered, StrategyCounting}
}

// ParseStrategy converts a name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(Strategies(), s) {
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// MergeOrdered sums the values per key across inputs and returns the totals
// in descending order. Equal totals keep the order in which their keys first
// appeared. Nil inputs are skipped; zero inputs give an empty result.
func MergeOrdered[V Number](inputs ...*Counts[V]) *Counts[V] {
	return sortDescending(accumulate(false, inputs))
}

// MergeCounting produces the same totals as MergeOrdered, but equal totals
// are ordered by when each key total last changed, earliest first.
func MergeCounting[V Number](inputs ...*Counts[V]) *Counts[V] {
	return sortDescending(accumulate(true, inputs))
}

// Merge dispatches to the merge function for s.
func Merge[V Number](s Strategy, inputs ...*Counts[V]) (*Counts[V], error) {
	switch s {
	case StrategyOrdered:
		return MergeOrdered(inputs...), nil
	case StrategyCounting:
		return MergeCounting(inputs...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// accumulate sums every input into a fresh Counts. With moveOnUpdate, a key
// whose total changes is moved to the back, so accumulator order becomes
// last-change order instead of first-appearance order. Adding zero is not a
// change.
func accumulate[V Number](moveOnUpdate bool, inputs []*Counts[V]) *Counts[V] {
	acc := NewCounts[V]()
	for _, in := range inputs {
		in.each(func(key string, value V) {
			prev, seen := acc.totals.Get(key)
			acc.totals.Set(key, prev+value)
			if seen && moveOnUpdate && value != 0 {
				_ = acc.totals.MoveToBack(key)
			}
		})
	}
	return acc
}

// sortDescending orders by total, highest first. The sort is stable so ties
// keep accumulator order.
func sortDescending[V Number](acc *Counts[V]) *Counts[V] {
	entries := acc.Entries()
	slices.SortStableFunc(entries, func(a, b Entry[V]) int {
		return cmp.Compare(b.Total, a.Total)
	})
	return FromEntries(entries...)
}
