package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bizledger/internal/amqp"
	"bizledger/internal/core"
	applog "bizledger/internal/log"
)

// Exporter re-exports the state a change touched. *services.ExportProcessor satisfies it.
type Exporter interface {
	Handle(ctx context.Context, c core.Change) error
	ExportReports(ctx context.Context, months ...core.MonthKey) ([]string, error)
	ExportTasks(ctx context.Context) (string, error)
}

// SyncWorker turns change messages into sheet exports. Every export reads the
// whole current state, so a message published before the last successful
// export of its store started is already reflected and is skipped.
type SyncWorker struct {
	exporter Exporter
	logger   *applog.Logger
	now      func() time.Time

	mu         sync.Mutex
	lastSynced map[string]time.Time // store -> start of last successful export

	stats SyncStats
}

// SyncStats counts handled messages.
type SyncStats struct {
	Exported int
	Skipped  int
	Failed   int
}

func NewSyncWorker(exporter Exporter, logger *applog.Logger) *SyncWorker {
	if logger == nil {
		logger = applog.Discard()
	}
	return &SyncWorker{
		exporter:   exporter,
		logger:     logger.WithComponent(applog.ComponentSheets),
		now:        time.Now,
		lastSynced: make(map[string]time.Time),
	}
}

// HandleChangeMessage processes a single change message from AMQP.
func (w *SyncWorker) HandleChangeMessage(ctx context.Context, msg *amqp.ChangeMessage) error {
	change := msg.Change()
	fields := applog.NewFields().WithChange(change)

	w.mu.Lock()
	last, ok := w.lastSynced[change.Store]
	w.mu.Unlock()
	if ok && !msg.Timestamp.IsZero() && msg.Timestamp.Before(last) {
		w.count(func(s *SyncStats) { s.Skipped++ })
		w.logger.DebugContext(ctx, "Change already covered by a later export", fields.ToSlice()...)
		return nil
	}

	started := w.now()
	if err := w.exporter.Handle(ctx, change); err != nil {
		w.count(func(s *SyncStats) { s.Failed++ })
		return fmt.Errorf("export %s: %w", change.Store, err)
	}
	w.markSynced(change.Store, started)
	w.count(func(s *SyncStats) { s.Exported++ })

	w.logger.InfoContext(ctx, "Successfully exported change", fields.ToSlice()...)
	return nil
}

// StartupSyncCheck exports every report and the task list once. It recovers
// from messages missed while the worker was down.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	started := w.now()

	refs, err := w.exporter.ExportReports(ctx)
	if err != nil {
		return fmt.Errorf("startup report export: %w", err)
	}
	w.markSynced(core.FinanceStore, started)

	ref, err := w.exporter.ExportTasks(ctx)
	if err != nil {
		return fmt.Errorf("startup task export: %w", err)
	}
	w.markSynced(core.TaskStore, started)

	w.logger.InfoContext(ctx, "Startup sync completed",
		"reports", len(refs),
		applog.FieldSheetsRef, ref)
	return nil
}

func (w *SyncWorker) Stats() SyncStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *SyncWorker) markSynced(store string, at time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if at.After(w.lastSynced[store]) {
		w.lastSynced[store] = at
	}
}

func (w *SyncWorker) count(fn func(*SyncStats)) {
	w.mu.Lock()
	fn(&w.stats)
	w.mu.Unlock()
}
