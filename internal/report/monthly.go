// Package report aggregates finance records into per-month reports.
package report

import (
	"slices"

	"bizledger/internal/core"
)

// Monthly builds the report for one calendar month. The inputs are not
// retained; the report owns copies of every record it lists.
func Monthly(revenues []core.Revenue, expenses []core.Expense, month core.MonthKey) core.MonthlyReport {
	r := core.MonthlyReport{
		Month:    month,
		Revenues: []core.Revenue{},
		Expenses: []core.Expense{},
	}

	revCats := newCategoryTotals()
	revDays := make(map[int]core.Money)
	for _, rev := range revenues {
		if !month.Contains(rev.Date) {
			continue
		}
		r.Revenues = append(r.Revenues, rev)
		revCats.add(rev.Category, rev.Amount)
		revDays[rev.Date.Day()] += rev.Amount
		r.TotalRevenue += rev.Amount
	}

	expCats := newCategoryTotals()
	expDays := make(map[int]core.Money)
	for _, exp := range expenses {
		if !month.Contains(exp.Date) {
			continue
		}
		r.Expenses = append(r.Expenses, exp)
		expCats.add(exp.Category, exp.Amount)
		expDays[exp.Date.Day()] += exp.Amount
		r.TotalExpense += exp.Amount
	}

	r.RevenueByCategory = revCats.sorted()
	r.ExpenseByCategory = expCats.sorted()
	r.DailyRevenues = dailySeries(revDays)
	r.DailyExpenses = dailySeries(expDays)
	r.MaxRevenueDay = maxDay(r.DailyRevenues)
	r.MaxExpenseDay = maxDay(r.DailyExpenses)

	r.Profit = r.TotalRevenue - r.TotalExpense
	r.ProfitMargin = Margin(r.Profit, r.TotalRevenue)
	return r
}

// Margin returns profit as a percentage of revenue, or 0 without revenue.
func Margin(profit, revenue core.Money) float64 {
	if revenue == 0 {
		return 0
	}
	return float64(profit) / float64(revenue) * 100
}

// categoryTotals sums amounts per category and remembers first-seen order.
type categoryTotals struct {
	order []string
	sums  map[string]core.Money
}

func newCategoryTotals() *categoryTotals {
	return &categoryTotals{sums: make(map[string]core.Money)}
}

func (c *categoryTotals) add(name string, amount core.Money) {
	if _, ok := c.sums[name]; !ok {
		c.order = append(c.order, name)
	}
	c.sums[name] += amount
}

// sorted orders by descending total; ties keep first-seen order.
func (c *categoryTotals) sorted() []core.CategoryAmount {
	out := make([]core.CategoryAmount, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, core.CategoryAmount{Name: name, Amount: c.sums[name]})
	}
	slices.SortStableFunc(out, func(a, b core.CategoryAmount) int {
		switch {
		case a.Amount > b.Amount:
			return -1
		case a.Amount < b.Amount:
			return 1
		}
		return 0
	})
	return out
}

func dailySeries(days map[int]core.Money) []core.DayAmount {
	out := make([]core.DayAmount, 0, len(days))
	for day, amount := range days {
		out = append(out, core.DayAmount{Day: day, Amount: amount})
	}
	slices.SortFunc(out, func(a, b core.DayAmount) int { return a.Day - b.Day })
	return out
}

// maxDay expects days in ascending order, so a strict comparison keeps the
// earliest of several equal totals.
func maxDay(days []core.DayAmount) int {
	best := 0
	var top core.Money
	for _, d := range days {
		if best == 0 || d.Amount > top {
			best, top = d.Day, d.Amount
		}
	}
	return best
}
