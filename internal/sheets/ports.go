// Package sheets defines the spreadsheet export ports and the row layout
// shared by every exporter.
package sheets

import (
	"context"

	"bizledger/internal/core"
)

// Ports for outbound adapters.
type (
	// ReportExporter writes one monthly report to its own sheet, replacing
	// whatever the sheet held before.
	ReportExporter interface {
		ExportReport(ctx context.Context, rep core.MonthlyReport) (sheetRef string, err error)
	}

	// TaskExporter writes the full task list to a single sheet.
	TaskExporter interface {
		ExportTasks(ctx context.Context, tasks []core.Task) (sheetRef string, err error)
	}

	Exporter interface {
		ReportExporter
		TaskExporter
	}
)
