package finance

import (
	"slices"

	"bizledger/internal/core"
)

// Snapshot is the persisted state of the record store. Its JSON form is the
// value stored under the "finance-storage" key.
type Snapshot struct {
	Expenses          []core.Expense `json:"expenses"`
	Revenues          []core.Revenue `json:"revenues"`
	Vendors           []core.Vendor  `json:"vendors"`
	ExpenseCategories []string       `json:"expenseCategories"`
	RevenueCategories []string       `json:"revenueCategories"`

	// Revision counts applied mutations since the store was opened. It is not persisted.
	Revision uint64 `json:"-"`
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Expenses:          cloneOrEmpty(s.Expenses),
		Revenues:          cloneOrEmpty(s.Revenues),
		Vendors:           cloneOrEmpty(s.Vendors),
		ExpenseCategories: cloneOrEmpty(s.ExpenseCategories),
		RevenueCategories: cloneOrEmpty(s.RevenueCategories),
		Revision:          s.Revision,
	}
}

func cloneOrEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}

func (s Snapshot) vendorByID(id string) (core.Vendor, bool) {
	for _, v := range s.Vendors {
		if v.ID == id {
			return v, true
		}
	}
	return core.Vendor{}, false
}
