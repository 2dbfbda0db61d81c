package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"bizledger/internal/core"
	"bizledger/internal/finance"
	applog "bizledger/internal/log"
	"bizledger/internal/report"
	"bizledger/internal/sheets"
	"bizledger/internal/storage"
	"bizledger/internal/tasks"
)

// maxParallelExports bounds concurrent sheet writes.
const maxParallelExports = 4

// ExportProcessor re-exports reports when a change arrives. It reloads the
// snapshots from the shared KV on every call, so it sees writes made by
// other processes.
type ExportProcessor struct {
	kv       storage.KV
	exporter sheets.Exporter
	logger   *applog.Logger

	financeSeed func(newID func() string) finance.Snapshot
	taskSeed    func(newID func() string, now time.Time) []core.Task
}

func NewExportProcessor(kv storage.KV, exporter sheets.Exporter, logger *applog.Logger) *ExportProcessor {
	if logger == nil {
		logger = applog.Discard()
	}
	return &ExportProcessor{
		kv:       kv,
		exporter: exporter,
		logger:   logger.WithComponent(applog.ComponentSheets),
	}
}

// WithSeeds makes the processor open never-persisted stores the same way the
// CLI does, so a seeded but untouched ledger still exports its sample data.
func (p *ExportProcessor) WithSeeds(financeSeed func(func() string) finance.Snapshot, taskSeed func(func() string, time.Time) []core.Task) *ExportProcessor {
	p.financeSeed = financeSeed
	p.taskSeed = taskSeed
	return p
}

// Handle exports whatever the change could have affected.
func (p *ExportProcessor) Handle(ctx context.Context, c core.Change) error {
	switch c.Store {
	case core.FinanceStore:
		_, err := p.ExportReports(ctx)
		return err
	case core.TaskStore:
		_, err := p.ExportTasks(ctx)
		return err
	default:
		p.logger.WarnContext(ctx, "Ignoring change for unknown store", applog.NewFields().WithChange(c).ToSlice()...)
		return nil
	}
}

// ExportReports exports the given months, or every month with records when
// none are given. It returns the sheet references in month order.
func (p *ExportProcessor) ExportReports(ctx context.Context, months ...core.MonthKey) ([]string, error) {
	store, err := finance.Open(p.kv, finance.Options{Seed: p.financeSeed, Logger: p.logger})
	if err != nil {
		return nil, fmt.Errorf("open finance store: %w", err)
	}
	snap := store.Snapshot()
	if len(months) == 0 {
		months = report.AvailableMonths(snap.Revenues, snap.Expenses)
	}

	refs := make([]string, len(months))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelExports)
	for i, month := range months {
		g.Go(func() error {
			rep := report.Monthly(snap.Revenues, snap.Expenses, month)
			ref, err := p.exporter.ExportReport(gctx, rep)
			if err != nil {
				return fmt.Errorf("export %s: %w", month, err)
			}
			refs[i] = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "Exported monthly reports", "months", len(months))
	return refs, nil
}

// ExportTasks exports the current task list.
func (p *ExportProcessor) ExportTasks(ctx context.Context) (string, error) {
	store, err := tasks.Open(p.kv, tasks.Options{Seed: p.taskSeed, Logger: p.logger})
	if err != nil {
		return "", fmt.Errorf("open task store: %w", err)
	}
	ref, err := p.exporter.ExportTasks(ctx, store.Tasks())
	if err != nil {
		return "", fmt.Errorf("export tasks: %w", err)
	}
	return ref, nil
}
