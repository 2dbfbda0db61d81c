package finance

import (
	"cmp"
	"slices"
	"strings"

	"bizledger/internal/core"
)

// ExpenseFilter narrows an expense list. Empty fields match everything.
type ExpenseFilter struct {
	Category   string
	VendorName string
}

// FilterExpenses returns the expenses matching f, in input order.
func FilterExpenses(expenses []core.Expense, f ExpenseFilter) []core.Expense {
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.VendorName != "" && e.VendorName != f.VendorName {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SortExpensesNewestFirst returns a copy ordered by descending date.
// Records on the same day keep their relative order.
func SortExpensesNewestFirst(expenses []core.Expense) []core.Expense {
	out := slices.Clone(expenses)
	slices.SortStableFunc(out, func(a, b core.Expense) int {
		return b.Date.Compare(a.Date.Time)
	})
	return out
}

func SortRevenuesNewestFirst(revenues []core.Revenue) []core.Revenue {
	out := slices.Clone(revenues)
	slices.SortStableFunc(out, func(a, b core.Revenue) int {
		return b.Date.Compare(a.Date.Time)
	})
	return out
}

// VendorNames returns the distinct non-empty vendor names cached on expenses,
// sorted.
func VendorNames(expenses []core.Expense) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range expenses {
		name := strings.TrimSpace(e.VendorName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	slices.SortFunc(names, cmp.Compare[string])
	return names
}
