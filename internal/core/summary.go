package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// DayAmount represents an amount aggregated by day of month (1-31).
type DayAmount struct {
	Day    int
	Amount Money
}

// MonthlyReport is the read-only result of aggregating one calendar month.
// Its slices are copies; mutating a store after the report was built does not change it.
type MonthlyReport struct {
	Month MonthKey

	Revenues []Revenue
	Expenses []Expense

	// Ordered by descending amount, ties in first-encountered order.
	RevenueByCategory []CategoryAmount
	ExpenseByCategory []CategoryAmount

	// Ordered by ascending day.
	DailyRevenues []DayAmount
	DailyExpenses []DayAmount

	TotalRevenue Money
	TotalExpense Money
	Profit       Money
	ProfitMargin float64 // percent of revenue, 0 when there is no revenue

	// 0 when the month has no records on that side.
	MaxRevenueDay int
	MaxExpenseDay int
}

// RevenueTotals returns the revenue category totals as a map.
func (r MonthlyReport) RevenueTotals() map[string]Money {
	return toMap(r.RevenueByCategory)
}

// ExpenseTotals returns the expense category totals as a map.
func (r MonthlyReport) ExpenseTotals() map[string]Money {
	return toMap(r.ExpenseByCategory)
}

// IsEmpty reports whether no record fell in the month.
func (r MonthlyReport) IsEmpty() bool {
	return len(r.Revenues) == 0 && len(r.Expenses) == 0
}

func toMap(in []CategoryAmount) map[string]Money {
	out := make(map[string]Money, len(in))
	for _, c := range in {
		out[c.Name] = c.Amount
	}
	return out
}
