package finance

import (
	"errors"
	"slices"

	"bizledger/internal/core"
)

var (
	ErrReservedCategory = errors.New("category is reserved")
	ErrLastCategory     = errors.New("cannot delete the last category")
	ErrUnknownCategory  = errors.New("category not found")
)

// CheckExpenseCategoryDeletable reports whether name may be removed from the
// expense category list. The store itself does not call it.
func CheckExpenseCategoryDeletable(snap Snapshot, name string) error {
	if name == core.VendorCategory {
		return ErrReservedCategory
	}
	return checkDeletable(snap.ExpenseCategories, name)
}

// CheckRevenueCategoryDeletable is the revenue counterpart of CheckExpenseCategoryDeletable.
func CheckRevenueCategoryDeletable(snap Snapshot, name string) error {
	return checkDeletable(snap.RevenueCategories, name)
}

func checkDeletable(list []string, name string) error {
	if !slices.Contains(list, name) {
		return ErrUnknownCategory
	}
	if len(list) <= 1 {
		return ErrLastCategory
	}
	return nil
}
