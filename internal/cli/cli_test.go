package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"bizledger/internal/config"
	"bizledger/internal/core"
	"bizledger/internal/finance"
	applog "bizledger/internal/log"
	"bizledger/internal/report"
	"bizledger/internal/tasks"
)

func sampleConfig(t *testing.T, backendType string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		DataBackend:     backendType,
		DataDir:         dir,
		SQLiteDBPath:    filepath.Join(dir, "ledger.db"),
		SeedSample:      true,
		LogLevel:        "info",
		LogFormat:       "text",
		ReportCacheSize: 8,
	}
}

func TestSetupLogger(t *testing.T) {
	cfg := sampleConfig(t, config.BackendMemory)
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"
	if _, err := SetupLogger(cfg); err != nil {
		t.Fatalf("SetupLogger() error = %v", err)
	}

	cfg.LogLevel = "loud"
	if _, err := SetupLogger(cfg); err == nil {
		t.Error("SetupLogger() expected error for invalid level")
	}
}

func TestOpenStoresSeedsSample(t *testing.T) {
	for _, b := range []string{config.BackendMemory, config.BackendFile} {
		t.Run(b, func(t *testing.T) {
			stores, err := OpenStores(context.Background(), sampleConfig(t, b), applog.Discard())
			if err != nil {
				t.Fatalf("OpenStores() error = %v", err)
			}
			defer stores.Close()

			snap := stores.Finance.Snapshot()
			if len(snap.Revenues) == 0 || len(snap.Expenses) == 0 {
				t.Errorf("expected sample records, got %d revenues and %d expenses", len(snap.Revenues), len(snap.Expenses))
			}
			if got := len(stores.Tasks.Tasks()); got != 5 {
				t.Errorf("expected 5 sample tasks, got %d", got)
			}
		})
	}
}

func TestOpenStoresWithoutSeed(t *testing.T) {
	cfg := sampleConfig(t, config.BackendMemory)
	cfg.SeedSample = false

	stores, err := OpenStores(context.Background(), cfg, applog.Discard())
	if err != nil {
		t.Fatalf("OpenStores() error = %v", err)
	}
	defer stores.Close()

	snap := stores.Finance.Snapshot()
	if len(snap.Revenues) != 0 || len(snap.Expenses) != 0 || len(snap.Vendors) != 0 {
		t.Error("expected an empty finance store")
	}
	if len(stores.Tasks.Tasks()) != 0 {
		t.Error("expected an empty task list")
	}
}

func TestOpenStoresFileReload(t *testing.T) {
	cfg := sampleConfig(t, config.BackendFile)
	cfg.SeedSample = false

	stores, err := OpenStores(context.Background(), cfg, applog.Discard())
	if err != nil {
		t.Fatalf("OpenStores() error = %v", err)
	}
	if _, err := stores.Tasks.AddTask(core.Task{Title: "부가세 신고", Priority: core.PriorityHigh, Status: core.StatusPending, DueDate: core.NewDate(2025, 7, 25)}); err != nil {
		t.Fatalf("AddTask() error = %v", err)
	}
	stores.Close()

	reopened, err := OpenStores(context.Background(), cfg, applog.Discard())
	if err != nil {
		t.Fatalf("OpenStores() error = %v", err)
	}
	defer reopened.Close()
	list := reopened.Tasks.Tasks()
	if len(list) != 1 || list[0].Title != "부가세 신고" {
		t.Errorf("reloaded tasks = %+v", list)
	}
}

func TestRenderReport(t *testing.T) {
	snap := finance.SampleSnapshot(core.NewID)
	rep := report.Monthly(snap.Revenues, snap.Expenses, core.MonthKey{Year: 2025, Month: 6})

	var buf bytes.Buffer
	RenderReport(&buf, rep)
	out := buf.String()

	for _, want := range []string{"2025년 06월", rep.TotalRevenue.String(), rep.TotalExpense.String(), "일별 추이"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	RenderReport(&buf, core.MonthlyReport{Month: core.MonthKey{Year: 2024, Month: 1}})
	if !bytes.Contains(buf.Bytes(), []byte("기록이 없습니다")) {
		t.Errorf("expected empty-month notice, got:\n%s", buf.String())
	}
	if bytes.Contains(buf.Bytes(), []byte("일별 추이")) {
		t.Error("empty report should not print the daily table")
	}
}

func TestRenderTasks(t *testing.T) {
	list := []core.Task{
		{ID: "t1", Title: "세금계산서 발행", Priority: core.PriorityHigh, Status: core.StatusCompleted, DueDate: core.NewDate(2025, 6, 20)},
		{ID: "t2", Title: "재고 확인", Priority: core.PriorityLow, Status: core.StatusPending},
	}

	var buf bytes.Buffer
	RenderTasks(&buf, list)
	RenderTaskSummary(&buf, tasks.Summarize(list))
	out := buf.String()

	for _, want := range []string{"세금계산서 발행", "재고 확인", "2025-06-20", "완료율 50%"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("task output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderExpensesTotal(t *testing.T) {
	var buf bytes.Buffer
	RenderExpenses(&buf, []core.Expense{
		{ID: "e1", Date: core.NewDate(2025, 6, 1), Amount: 1000, Category: "식비"},
		{ID: "e2", Date: core.NewDate(2025, 6, 2), Amount: 2500, Category: core.VendorCategory, VendorName: "상사"},
	})
	if !bytes.Contains(buf.Bytes(), []byte("합계 ₩3,500 (2건)")) {
		t.Errorf("missing total line:\n%s", buf.String())
	}
}

func TestRenderMonthsMarksCurrent(t *testing.T) {
	var buf bytes.Buffer
	months := []core.MonthKey{{Year: 2025, Month: 7}, {Year: 2025, Month: 6}}
	RenderMonths(&buf, months, months[1])
	if !bytes.Contains(buf.Bytes(), []byte("* 2025-06")) {
		t.Errorf("current month not marked:\n%s", buf.String())
	}
}
