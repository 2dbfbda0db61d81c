package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"bizledger/internal/amqp"
	"bizledger/internal/core"
	"bizledger/internal/services"
	"bizledger/internal/sheets/memory"
	"bizledger/internal/storage"
)

type fakeExporter struct {
	handled []core.Change
	reports int
	tasks   int
	err     error
}

func (f *fakeExporter) Handle(_ context.Context, c core.Change) error {
	if f.err != nil {
		return f.err
	}
	f.handled = append(f.handled, c)
	return nil
}

func (f *fakeExporter) ExportReports(context.Context, ...core.MonthKey) ([]string, error) {
	f.reports++
	return []string{"a", "b"}, f.err
}

func (f *fakeExporter) ExportTasks(context.Context) (string, error) {
	f.tasks++
	return "t", f.err
}

func newTestWorker(exp Exporter, clock *time.Time) *SyncWorker {
	w := NewSyncWorker(exp, nil)
	w.now = func() time.Time { return *clock }
	return w
}

func TestHandleChangeMessageSkipsCoveredChanges(t *testing.T) {
	clock := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)
	exp := &fakeExporter{}
	w := newTestWorker(exp, &clock)
	ctx := context.Background()

	first := &amqp.ChangeMessage{Store: core.FinanceStore, Op: core.OpCreate, Entity: core.EntityExpense, Timestamp: clock.Add(-time.Second)}
	if err := w.HandleChangeMessage(ctx, first); err != nil {
		t.Fatalf("HandleChangeMessage() error = %v", err)
	}

	// Published before the export above started: already reflected
	stale := &amqp.ChangeMessage{Store: core.FinanceStore, Op: core.OpUpdate, Entity: core.EntityExpense, Timestamp: clock.Add(-500 * time.Millisecond)}
	if err := w.HandleChangeMessage(ctx, stale); err != nil {
		t.Fatalf("HandleChangeMessage() error = %v", err)
	}

	// Other stores are tracked separately
	task := &amqp.ChangeMessage{Store: core.TaskStore, Op: core.OpCreate, Entity: core.EntityTask, Timestamp: clock.Add(-500 * time.Millisecond)}
	if err := w.HandleChangeMessage(ctx, task); err != nil {
		t.Fatalf("HandleChangeMessage() error = %v", err)
	}

	clock = clock.Add(time.Minute)
	fresh := &amqp.ChangeMessage{Store: core.FinanceStore, Op: core.OpDelete, Entity: core.EntityRevenue, Timestamp: clock.Add(-time.Second)}
	if err := w.HandleChangeMessage(ctx, fresh); err != nil {
		t.Fatalf("HandleChangeMessage() error = %v", err)
	}

	if len(exp.handled) != 3 {
		t.Fatalf("expected 3 exports, got %d", len(exp.handled))
	}
	if got := w.Stats(); got != (SyncStats{Exported: 3, Skipped: 1}) {
		t.Errorf("Stats() = %+v", got)
	}
}

func TestHandleChangeMessageFailure(t *testing.T) {
	clock := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)
	exp := &fakeExporter{err: errors.New("quota exceeded")}
	w := newTestWorker(exp, &clock)

	msg := &amqp.ChangeMessage{Store: core.TaskStore, Timestamp: clock}
	if err := w.HandleChangeMessage(context.Background(), msg); err == nil {
		t.Fatal("expected error")
	}
	if w.Stats().Failed != 1 {
		t.Errorf("expected one failure, got %+v", w.Stats())
	}

	// A failed export must not mark the store as synced
	exp.err = nil
	if err := w.HandleChangeMessage(context.Background(), msg); err != nil {
		t.Fatalf("retry error = %v", err)
	}
	if len(exp.handled) != 1 {
		t.Errorf("expected the retry to export, got %d exports", len(exp.handled))
	}
}

func TestStartupSyncCheck(t *testing.T) {
	clock := time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)
	exp := &fakeExporter{}
	w := newTestWorker(exp, &clock)
	ctx := context.Background()

	if err := w.StartupSyncCheck(ctx); err != nil {
		t.Fatalf("StartupSyncCheck() error = %v", err)
	}
	if exp.reports != 1 || exp.tasks != 1 {
		t.Errorf("expected one full export, got reports=%d tasks=%d", exp.reports, exp.tasks)
	}

	queued := &amqp.ChangeMessage{Store: core.FinanceStore, Timestamp: clock.Add(-time.Hour)}
	if err := w.HandleChangeMessage(ctx, queued); err != nil {
		t.Fatal(err)
	}
	if len(exp.handled) != 0 {
		t.Error("a message queued before startup should be skipped")
	}
}

func TestSyncWorkerWithExportProcessor(t *testing.T) {
	kv := storage.NewMemory()
	sheet := memory.New("Report")
	w := NewSyncWorker(services.NewExportProcessor(kv, sheet, nil), nil)

	msg := amqp.NewChangeMessage(core.Change{Store: core.TaskStore, Op: core.OpCreate, Entity: core.EntityTask, ID: "t1"})
	if err := w.HandleChangeMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleChangeMessage() error = %v", err)
	}
	if _, ok := sheet.Sheet("Report Tasks"); !ok {
		t.Errorf("expected task sheet, got %v", sheet.SheetNames())
	}
}
