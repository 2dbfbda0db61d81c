package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"bizledger/internal/cli"
	"bizledger/internal/core"
	"bizledger/internal/finance"
	applog "bizledger/internal/log"
	"bizledger/internal/services"
	"bizledger/internal/sheets"
	gsheet "bizledger/internal/sheets/google"
	mem "bizledger/internal/sheets/memory"
	"bizledger/internal/tasks"
)

// newExporter picks Google Sheets when it is configured, the in-memory
// exporter otherwise.
func newExporter(ctx context.Context) (sheets.Exporter, error) {
	if !app.cfg.SheetsEnabled() {
		app.logger.Info("Google Sheets not configured, exporting to memory")
		return mem.New(app.cfg.GoogleReportSheetPrefix), nil
	}
	return gsheet.New(ctx, gsheet.Options{
		SpreadsheetID:   app.cfg.GoogleSpreadsheetID,
		CredentialsFile: app.cfg.GoogleServiceAccountFile,
		CredentialsJSON: app.cfg.GoogleServiceAccountJSON,
		SheetPrefix:     app.cfg.GoogleReportSheetPrefix,
		Logger:          app.logger,
	})
}

func newExportProcessor(exporter sheets.Exporter) *services.ExportProcessor {
	p := services.NewExportProcessor(app.stores.Backend.KV, exporter, app.logger)
	if app.cfg.SeedSample {
		p.WithSeeds(finance.SampleSnapshot, tasks.SampleTasks)
	}
	return p
}

func exportCmd() *cobra.Command {
	var (
		months    []string
		withTasks bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export monthly reports (and optionally tasks) to a spreadsheet",
		Long: `Export monthly reports to Google Sheets, one sheet per month.

Without --month every month that has records is exported.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			keys := make([]core.MonthKey, 0, len(months))
			for _, m := range months {
				k, err := core.ParseMonthKey(m)
				if err != nil {
					return err
				}
				keys = append(keys, k)
			}

			exporter, err := newExporter(ctx)
			if err != nil {
				return err
			}
			p := newExportProcessor(exporter)

			refs, err := p.ExportReports(ctx, keys...)
			if err != nil {
				return err
			}
			if withTasks {
				ref, err := p.ExportTasks(ctx)
				if err != nil {
					return err
				}
				refs = append(refs, ref)
			}

			for _, ref := range refs {
				app.logger.Debug("Exported sheet", applog.FieldSheetsRef, ref)
				fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render("exported "+ref))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&months, "month", nil, "month to export (YYYY-MM), repeatable")
	cmd.Flags().BoolVar(&withTasks, "tasks", false, "also export the task list")
	return cmd
}
