package finance

import "bizledger/internal/core"

var (
	DefaultExpenseCategories = []string{core.VendorCategory, "공과금", "인건비", "임대료", "기타"}
	DefaultRevenueCategories = []string{"제품 판매", "서비스 제공", "이자 수입", "기타"}

	// VendorClassifications are the choices offered for Vendor.Category.
	VendorClassifications = []string{"주요 거래처", "서비스 제공업체", "공급업체", "기타"}
)

// DefaultSnapshot is an empty ledger with the default category lists.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Expenses:          []core.Expense{},
		Revenues:          []core.Revenue{},
		Vendors:           []core.Vendor{},
		ExpenseCategories: append([]string(nil), DefaultExpenseCategories...),
		RevenueCategories: append([]string(nil), DefaultRevenueCategories...),
	}
}

// SampleSnapshot is the illustrative dataset a fresh install starts with.
func SampleSnapshot(newID func() string) Snapshot {
	s := DefaultSnapshot()
	s.Vendors = []core.Vendor{
		{ID: newID(), Name: "국내 공급업체", Category: "주요 거래처", ContactInfo: "010-1234-5678"},
		{ID: newID(), Name: "해외 공급업체", Category: "주요 거래처", ContactInfo: "+1-234-567-8900"},
		{ID: newID(), Name: "물류 서비스", Category: "서비스 제공업체", ContactInfo: "02-345-6789"},
	}
	s.Expenses = []core.Expense{
		{
			ID:          newID(),
			Date:        core.NewDate(2025, 6, 20),
			Amount:      150000,
			Category:    core.VendorCategory,
			VendorID:    s.Vendors[0].ID,
			VendorName:  s.Vendors[0].Name,
			Description: "원자재 구매",
		},
		{
			ID:          newID(),
			Date:        core.NewDate(2025, 6, 18),
			Amount:      80000,
			Category:    "공과금",
			Description: "6월 전기요금",
		},
		{
			ID:          newID(),
			Date:        core.NewDate(2025, 6, 15),
			Amount:      200000,
			Category:    core.VendorCategory,
			VendorID:    s.Vendors[1].ID,
			VendorName:  s.Vendors[1].Name,
			Description: "월간 서비스 이용료",
		},
	}
	s.Revenues = []core.Revenue{
		{ID: newID(), Date: core.NewDate(2025, 6, 22), Amount: 450000, Category: "제품 판매", Description: "온라인 판매"},
		{ID: newID(), Date: core.NewDate(2025, 6, 21), Amount: 350000, Category: "서비스 제공", Description: "컨설팅 서비스"},
		{ID: newID(), Date: core.NewDate(2025, 6, 19), Amount: 520000, Category: "제품 판매", Description: "오프라인 매장 판매"},
	}
	return s
}
