package sheets

import (
	"testing"

	"bizledger/internal/core"
)

func sampleReport() core.MonthlyReport {
	return core.MonthlyReport{
		Month:             core.MonthKey{Year: 2025, Month: 6},
		Revenues:          []core.Revenue{{Date: core.NewDate(2025, 6, 19), Amount: 520000, Category: "제품 판매"}},
		Expenses:          []core.Expense{{Date: core.NewDate(2025, 6, 20), Amount: 150000, Category: core.VendorCategory, VendorName: "국내 공급업체"}},
		RevenueByCategory: []core.CategoryAmount{{Name: "제품 판매", Amount: 520000}},
		ExpenseByCategory: []core.CategoryAmount{{Name: core.VendorCategory, Amount: 150000}},
		DailyRevenues:     []core.DayAmount{{Day: 19, Amount: 520000}},
		DailyExpenses:     []core.DayAmount{{Day: 20, Amount: 150000}},
		TotalRevenue:      520000,
		TotalExpense:      150000,
		Profit:            370000,
		ProfitMargin:      71.153846,
		MaxRevenueDay:     19,
		MaxExpenseDay:     20,
	}
}

func TestReportSheetName(t *testing.T) {
	if got := ReportSheetName(" Report ", core.MonthKey{Year: 2025, Month: 6}); got != "Report 2025-06" {
		t.Errorf("ReportSheetName() = %q", got)
	}
	if got := TaskSheetName("Report"); got != "Report Tasks" {
		t.Errorf("TaskSheetName() = %q", got)
	}
}

func TestReportBlocks(t *testing.T) {
	blocks := ReportBlocks(sampleReport())
	if len(blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(blocks))
	}

	summary := blocks[0].Rows
	if summary[1][1] != int64(520000) || summary[3][1] != int64(370000) {
		t.Errorf("unexpected summary rows: %v", summary)
	}
	if summary[4][1] != 71.2 {
		t.Errorf("margin = %v, want 71.2", summary[4][1])
	}

	categories := blocks[1].Rows
	if len(categories) != 3 || categories[1][0] != "수입" || categories[2][0] != "지출" {
		t.Errorf("unexpected category rows: %v", categories)
	}

	daily := blocks[2].Rows
	if len(daily) != 3 {
		t.Fatalf("expected header plus two days, got %v", daily)
	}
	if daily[1][0] != 19 || daily[1][2] != int64(0) || daily[2][0] != 20 || daily[2][2] != int64(150000) {
		t.Errorf("unexpected daily rows: %v", daily)
	}

	records := blocks[3].Rows
	if len(records) != 3 || records[2][3] != "국내 공급업체" {
		t.Errorf("unexpected record rows: %v", records)
	}
}

func TestDailyRowsSharedDay(t *testing.T) {
	rep := core.MonthlyReport{
		DailyRevenues: []core.DayAmount{{Day: 3, Amount: 10}, {Day: 9, Amount: 5}},
		DailyExpenses: []core.DayAmount{{Day: 1, Amount: 7}, {Day: 3, Amount: 2}},
	}
	rows := dailyRows(rep)
	want := [][]any{{"일", "수입", "지출"}, {1, int64(0), int64(7)}, {3, int64(10), int64(2)}, {9, int64(5), int64(0)}}
	if len(rows) != len(want) {
		t.Fatalf("dailyRows() = %v", rows)
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("row %d col %d = %v, want %v", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestTaskBlocks(t *testing.T) {
	blocks := TaskBlocks([]core.Task{{Title: "세금 신고", Priority: core.PriorityHigh, Status: core.StatusPending, DueDate: core.NewDate(2025, 7, 10)}})
	rows := blocks[0].Rows
	if len(rows) != 2 || rows[1][0] != "세금 신고" || rows[1][4] != "2025-07-10" {
		t.Errorf("unexpected task rows: %v", rows)
	}
}
