package report

import (
	"slices"

	"bizledger/internal/core"
)

// FallbackMonth is shown when there are no records at all.
var FallbackMonth = core.MonthKey{Year: 2025, Month: 6}

// Direction moves through the month list returned by AvailableMonths.
type Direction int

const (
	// Prev steps to the next older month.
	Prev Direction = iota
	// Next steps to the next newer month.
	Next
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// AvailableMonths returns every month that has at least one record, newest first.
func AvailableMonths(revenues []core.Revenue, expenses []core.Expense) []core.MonthKey {
	seen := make(map[core.MonthKey]struct{})
	for _, r := range revenues {
		if !r.Date.IsZero() {
			seen[r.Date.Key()] = struct{}{}
		}
	}
	for _, e := range expenses {
		if !e.Date.IsZero() {
			seen[e.Date.Key()] = struct{}{}
		}
	}

	out := make([]core.MonthKey, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	slices.SortFunc(out, func(a, b core.MonthKey) int {
		switch {
		case b.Before(a):
			return -1
		case a.Before(b):
			return 1
		}
		return 0
	})
	return out
}

// Step returns the neighbour of current in months (newest first). Stepping
// past either end, or from a month not in the list, returns current.
func Step(months []core.MonthKey, current core.MonthKey, dir Direction) core.MonthKey {
	i := slices.Index(months, current)
	if i < 0 {
		return current
	}
	switch dir {
	case Prev:
		i++
	case Next:
		i--
	}
	if i < 0 || i >= len(months) {
		return current
	}
	return months[i]
}

// CanStep reports whether Step would move away from current.
func CanStep(months []core.MonthKey, current core.MonthKey, dir Direction) bool {
	return Step(months, current, dir) != current
}

// DefaultMonth picks the newest month, or fallback when months is empty.
func DefaultMonth(months []core.MonthKey, fallback core.MonthKey) core.MonthKey {
	if len(months) == 0 {
		return fallback
	}
	return months[0]
}
