package report

import (
	"slices"

	"bizledger/internal/cache"
	"bizledger/internal/core"
	"bizledger/internal/finance"
	applog "bizledger/internal/log"
)

// Source supplies finance snapshots. *finance.Store satisfies it.
type Source interface {
	Snapshot() finance.Snapshot
}

type cacheKey struct {
	revision uint64
	month    core.MonthKey
}

// Reporter memoizes monthly reports per store revision. A mutation bumps the
// revision, so stale entries are never served and are evicted by the LRU.
type Reporter struct {
	src    Source
	cache  cache.Cache[cacheKey, core.MonthlyReport]
	logger *applog.Logger
}

func NewReporter(src Source, size int, logger *applog.Logger) *Reporter {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Reporter{
		src:    src,
		cache:  cache.NewLRUCache[cacheKey, core.MonthlyReport](size),
		logger: logger.WithComponent(applog.ComponentReport),
	}
}

// Monthly returns the report for month, computing it at most once per revision.
func (r *Reporter) Monthly(month core.MonthKey) core.MonthlyReport {
	snap := r.src.Snapshot()
	key := cacheKey{revision: snap.Revision, month: month}
	if cached, ok := r.cache.Get(key); ok {
		r.logger.Debug("Report cache hit",
			applog.NewFields().WithMonth(month).WithRevision(snap.Revision).ToSlice()...)
		return cloneReport(cached)
	}

	rep := Monthly(snap.Revenues, snap.Expenses, month)
	r.cache.Set(key, rep)
	fields := applog.NewFields().WithMonth(month).WithRevision(snap.Revision)
	r.logger.Debug("Report computed",
		append(fields.ToSlice(), "revenues", len(rep.Revenues), "expenses", len(rep.Expenses))...)
	return cloneReport(rep)
}

// Months returns the available months of the current snapshot, newest first.
func (r *Reporter) Months() []core.MonthKey {
	snap := r.src.Snapshot()
	return AvailableMonths(snap.Revenues, snap.Expenses)
}

func cloneReport(in core.MonthlyReport) core.MonthlyReport {
	out := in
	out.Revenues = slices.Clone(in.Revenues)
	out.Expenses = slices.Clone(in.Expenses)
	out.RevenueByCategory = slices.Clone(in.RevenueByCategory)
	out.ExpenseByCategory = slices.Clone(in.ExpenseByCategory)
	out.DailyRevenues = slices.Clone(in.DailyRevenues)
	out.DailyExpenses = slices.Clone(in.DailyExpenses)
	return out
}
