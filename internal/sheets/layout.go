package sheets

import (
	"math"
	"slices"
	"strings"

	"bizledger/internal/core"
)

// Block is a rectangle of values anchored at a top-left cell such as "D1".
type Block struct {
	Anchor string
	Rows   [][]any
}

// ReportSheetName returns "<prefix> YYYY-MM".
func ReportSheetName(prefix string, month core.MonthKey) string {
	return strings.TrimSpace(prefix) + " " + month.String()
}

// TaskSheetName returns "<prefix> Tasks".
func TaskSheetName(prefix string) string {
	return strings.TrimSpace(prefix) + " Tasks"
}

// ReportBlocks lays a monthly report out as four side-by-side tables:
// summary, category totals, daily totals and the record list.
func ReportBlocks(rep core.MonthlyReport) []Block {
	return []Block{
		{Anchor: "A1", Rows: summaryRows(rep)},
		{Anchor: "D1", Rows: categoryRows(rep)},
		{Anchor: "H1", Rows: dailyRows(rep)},
		{Anchor: "L1", Rows: recordRows(rep)},
	}
}

// TaskBlocks lays out the task list.
func TaskBlocks(tasks []core.Task) []Block {
	rows := [][]any{{"제목", "설명", "우선순위", "상태", "마감일", "카테고리"}}
	for _, t := range tasks {
		rows = append(rows, []any{t.Title, t.Description, string(t.Priority), string(t.Status), t.DueDate.String(), t.Category})
	}
	return []Block{{Anchor: "A1", Rows: rows}}
}

func summaryRows(rep core.MonthlyReport) [][]any {
	return [][]any{
		{"항목", rep.Month.Label()},
		{"총 수입", int64(rep.TotalRevenue)},
		{"총 지출", int64(rep.TotalExpense)},
		{"순이익", int64(rep.Profit)},
		{"이익률(%)", math.Round(rep.ProfitMargin*10) / 10},
		{"최대 수입일", rep.MaxRevenueDay},
		{"최대 지출일", rep.MaxExpenseDay},
	}
}

func categoryRows(rep core.MonthlyReport) [][]any {
	rows := [][]any{{"구분", "카테고리", "금액"}}
	for _, c := range rep.RevenueByCategory {
		rows = append(rows, []any{"수입", c.Name, int64(c.Amount)})
	}
	for _, c := range rep.ExpenseByCategory {
		rows = append(rows, []any{"지출", c.Name, int64(c.Amount)})
	}
	return rows
}

// dailyRows merges both daily series into one row per day.
func dailyRows(rep core.MonthlyReport) [][]any {
	rev := make(map[int]core.Money, len(rep.DailyRevenues))
	exp := make(map[int]core.Money, len(rep.DailyExpenses))
	var days []int
	for _, d := range rep.DailyRevenues {
		rev[d.Day] = d.Amount
		days = append(days, d.Day)
	}
	for _, d := range rep.DailyExpenses {
		exp[d.Day] = d.Amount
		if _, ok := rev[d.Day]; !ok {
			days = append(days, d.Day)
		}
	}
	slices.Sort(days)

	rows := [][]any{{"일", "수입", "지출"}}
	for _, day := range days {
		rows = append(rows, []any{day, int64(rev[day]), int64(exp[day])})
	}
	return rows
}

func recordRows(rep core.MonthlyReport) [][]any {
	rows := [][]any{{"날짜", "구분", "카테고리", "거래처", "설명", "금액"}}
	for _, r := range rep.Revenues {
		rows = append(rows, []any{r.Date.String(), "수입", r.Category, "", r.Description, int64(r.Amount)})
	}
	for _, e := range rep.Expenses {
		rows = append(rows, []any{e.Date.String(), "지출", e.Category, e.VendorName, e.Description, int64(e.Amount)})
	}
	return rows
}
