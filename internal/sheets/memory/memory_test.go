package memory

import (
	"context"
	"errors"
	"testing"

	"bizledger/internal/core"
)

func TestMemoryStoreExportReport(t *testing.T) {
	s := New("")
	rep := core.MonthlyReport{Month: core.MonthKey{Year: 2025, Month: 6}, TotalRevenue: 970000}

	ref, err := s.ExportReport(context.Background(), rep)
	if err != nil || ref != "mem:Report 2025-06#1" {
		t.Fatalf("unexpected export: ref=%q err=%v", ref, err)
	}

	blocks, ok := s.Sheet("Report 2025-06")
	if !ok || len(blocks) != 4 {
		t.Fatalf("unexpected sheet: %v %v", blocks, ok)
	}
	if blocks[0].Rows[1][1] != int64(970000) {
		t.Errorf("total revenue cell = %v", blocks[0].Rows[1][1])
	}

	// Re-exporting replaces the sheet
	rep.TotalRevenue = 1
	if _, err := s.ExportReport(context.Background(), rep); err != nil {
		t.Fatal(err)
	}
	blocks, _ = s.Sheet("Report 2025-06")
	if blocks[0].Rows[1][1] != int64(1) {
		t.Errorf("expected sheet to be replaced, got %v", blocks[0].Rows[1][1])
	}
	if s.Writes() != 2 || len(s.SheetNames()) != 1 {
		t.Errorf("writes=%d sheets=%v", s.Writes(), s.SheetNames())
	}
}

func TestMemoryStoreRejectsZeroMonth(t *testing.T) {
	_, err := New("R").ExportReport(context.Background(), core.MonthlyReport{})
	if !errors.Is(err, core.ErrInvalidMonth) {
		t.Errorf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestMemoryStoreExportTasks(t *testing.T) {
	s := New("Ledger")
	if _, err := s.ExportTasks(context.Background(), []core.Task{{Title: "a"}, {Title: "b"}}); err != nil {
		t.Fatal(err)
	}
	blocks, ok := s.Sheet("Ledger Tasks")
	if !ok || len(blocks[0].Rows) != 3 {
		t.Errorf("unexpected task sheet: %v", blocks)
	}
}
