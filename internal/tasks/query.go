package tasks

import (
	"math"
	"strings"

	"bizledger/internal/core"
)

// Filter selects tasks. Zero-valued fields match every task; the remaining
// conditions must all hold.
type Filter struct {
	Status   core.Status
	Priority core.Priority
	Category string
	// Query is matched case-insensitively against title and description.
	Query string
}

func (f Filter) Match(t core.Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// Apply returns the matching tasks in input order.
func (f Filter) Apply(tasks []core.Task) []core.Task {
	out := make([]core.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns the distinct task categories in first-seen order.
func Categories(tasks []core.Task) []string {
	seen := make(map[string]struct{}, len(tasks))
	out := []string{}
	for _, t := range tasks {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}

// Summary is the dashboard overview of a task list.
type Summary struct {
	Total      int
	ByStatus   map[core.Status]int
	ByPriority map[core.Priority]int
	// CompletionRate is the completed share in whole percent, 0 for an empty list.
	CompletionRate int
}

func Summarize(tasks []core.Task) Summary {
	s := Summary{
		Total: len(tasks),
		ByStatus: map[core.Status]int{
			core.StatusPending:    0,
			core.StatusInProgress: 0,
			core.StatusCompleted:  0,
		},
		ByPriority: map[core.Priority]int{
			core.PriorityHigh:   0,
			core.PriorityMedium: 0,
			core.PriorityLow:    0,
		},
	}
	for _, t := range tasks {
		s.ByStatus[t.Status]++
		s.ByPriority[t.Priority]++
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.ByStatus[core.StatusCompleted]) / float64(s.Total) * 100))
	}
	return s
}
