// Package memory is an in-process exporter. It keeps the last export of
// every sheet so tests and the CLI dry run can inspect it.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"bizledger/internal/core"
	"bizledger/internal/sheets"
)

var _ sheets.Exporter = (*Store)(nil)

type Store struct {
	mu     sync.Mutex
	prefix string
	sheets map[string][]sheets.Block
	writes int
}

func New(prefix string) *Store {
	if prefix == "" {
		prefix = "Report"
	}
	return &Store{prefix: prefix, sheets: make(map[string][]sheets.Block)}
}

// ExportReport replaces the month's sheet and returns a synthetic reference.
func (s *Store) ExportReport(_ context.Context, rep core.MonthlyReport) (string, error) {
	if rep.Month.IsZero() {
		return "", fmt.Errorf("export report: %w", core.ErrInvalidMonth)
	}
	return s.put(sheets.ReportSheetName(s.prefix, rep.Month), sheets.ReportBlocks(rep)), nil
}

func (s *Store) ExportTasks(_ context.Context, tasks []core.Task) (string, error) {
	return s.put(sheets.TaskSheetName(s.prefix), sheets.TaskBlocks(tasks)), nil
}

func (s *Store) put(name string, blocks []sheets.Block) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[name] = blocks
	s.writes++
	return fmt.Sprintf("mem:%s#%d", name, s.writes)
}

// Sheet returns the blocks last written to name.
func (s *Store) Sheet(name string) ([]sheets.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blocks, ok := s.sheets[name]
	return blocks, ok
}

// SheetNames lists the written sheets in sorted order.
func (s *Store) SheetNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.sheets))
	for name := range s.sheets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Writes counts exports since New.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
