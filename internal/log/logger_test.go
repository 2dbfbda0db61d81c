package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"bizledger/internal/core"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"", slog.LevelInfo, true},
		{"debug", slog.LevelDebug, true},
		{"WARN", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: "json", Output: &buf, Component: ComponentApp}).
		WithComponent(ComponentFinance)

	fields := NewFields().WithChange(core.Change{
		Store: core.FinanceStore, Op: core.OpUpdate, Entity: core.EntityVendor, ID: "v1", Revision: 3,
	})
	logger.Debug("Vendor updated", fields.ToSlice()...)

	out := buf.String()
	for _, want := range []string{`"component":"finance"`, `"entity_id":"v1"`, `"revision":3`, `"store":"finance-storage"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}
}

func TestFieldsForReports(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: "json", Output: &buf, Component: ComponentReport})

	logger.Debug("Report computed", NewFields().WithMonth(core.MonthKey{Year: 2025, Month: 6}).WithRevision(7).ToSlice()...)

	out := buf.String()
	for _, want := range []string{`"component":"report"`, `"month":"2025-06"`, `"revision":7`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}
}
