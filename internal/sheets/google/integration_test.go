//go:build integration

package google

import (
	"context"
	"os"
	"testing"
	"time"

	"bizledger/internal/core"
	"bizledger/internal/finance"
	"bizledger/internal/report"
)

// Integration tests require real Google Sheets credentials
// Run with: go test -tags=integration ./internal/sheets/google

func TestIntegration_ExportReport(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	spreadsheetID := os.Getenv("GOOGLE_SPREADSHEET_ID")
	if spreadsheetID == "" {
		t.Skip("GOOGLE_SPREADSHEET_ID not set, skipping integration test")
	}
	credsJSON := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")
	credsFile := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")
	if credsJSON == "" && credsFile == "" {
		t.Skip("service account credentials not configured, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	exporter, err := New(ctx, Options{
		SpreadsheetID:   spreadsheetID,
		CredentialsJSON: credsJSON,
		CredentialsFile: credsFile,
		SheetPrefix:     "Integration",
	})
	if err != nil {
		t.Fatalf("Failed to create exporter: %v", err)
	}

	snap := finance.SampleSnapshot(core.NewID)
	rep := report.Monthly(snap.Revenues, snap.Expenses, core.MonthKey{Year: 2025, Month: 6})

	ref, err := exporter.ExportReport(ctx, rep)
	if err != nil {
		t.Fatalf("Failed to export report: %v", err)
	}
	t.Logf("Exported report to %s", ref)

	// A second export must reuse the sheet
	if _, err := exporter.ExportReport(ctx, rep); err != nil {
		t.Fatalf("Failed to re-export report: %v", err)
	}
}
