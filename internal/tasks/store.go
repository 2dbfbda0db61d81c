// Package tasks holds the task list, persisting every mutation through to a
// storage.KV snapshot.
package tasks

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"bizledger/internal/core"
	applog "bizledger/internal/log"
	"bizledger/internal/notify"
	"bizledger/internal/storage"
)

// Snapshot is the persisted state under the "task-storage" key.
type Snapshot struct {
	Tasks []core.Task `json:"tasks"`
}

type Options struct {
	NewID func() string
	// Seed builds the initial task list when nothing was persisted yet.
	// Nil starts empty.
	Seed   func(newID func() string, now time.Time) []core.Task
	Now    func() time.Time
	Logger *applog.Logger
}

// Store is the task store. It follows the same write-through and notification
// rules as finance.Store.
type Store struct {
	mu       sync.RWMutex
	kv       storage.KV
	newID    func() string
	logger   *applog.Logger
	tasks    []core.Task
	revision uint64
	hub      notify.Hub
}

// Open loads the task list from kv, or seeds a new one.
func Open(kv storage.KV, opts Options) (*Store, error) {
	s := &Store{
		kv:     kv,
		newID:  opts.NewID,
		logger: opts.Logger,
	}
	if s.newID == nil {
		s.newID = core.NewID
	}
	if s.logger == nil {
		s.logger = applog.Discard()
	}
	s.logger = s.logger.WithComponent(applog.ComponentTasks)

	data, ok, err := kv.Get(core.TaskStore)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", core.TaskStore, err)
	}
	if !ok {
		s.tasks = []core.Task{}
		if opts.Seed != nil {
			now := time.Now
			if opts.Now != nil {
				now = opts.Now
			}
			s.tasks = append(s.tasks, opts.Seed(s.newID, now())...)
		}
		s.logger.Info("No task snapshot found, starting from seed", "tasks", len(s.tasks))
		return s, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", core.TaskStore, err)
	}
	s.tasks = slices.Clone(snap.Tasks)
	if s.tasks == nil {
		s.tasks = []core.Task{}
	}
	s.logger.Debug("Task snapshot loaded", "tasks", len(s.tasks))
	return s, nil
}

func (s *Store) Subscribe(fn notify.Func) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

// Tasks returns a copy of the task list in insertion order.
func (s *Store) Tasks() []core.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

func (s *Store) Task(id string) (core.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(id)
	if i < 0 {
		return core.Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// index must be called with mu held.
func (s *Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t core.Task) bool { return t.ID == id })
}

func (s *Store) commit(change core.Change, apply func(cur []core.Task) ([]core.Task, bool)) error {
	s.mu.Lock()
	next, changed := apply(s.tasks)
	if !changed {
		s.mu.Unlock()
		return nil
	}
	s.tasks = next
	s.revision++
	change.Store = core.TaskStore
	change.Revision = s.revision
	err := s.persist()
	s.mu.Unlock()

	fields := applog.NewFields().WithChange(change)
	if err != nil {
		s.logger.Error("Failed to persist task snapshot", fields.WithError(err).ToSlice()...)
	} else {
		s.logger.Debug("Task store changed", fields.ToSlice()...)
	}

	s.hub.Publish(change)
	return err
}

func (s *Store) persist() error {
	data, err := json.Marshal(Snapshot{Tasks: s.tasks})
	if err != nil {
		return fmt.Errorf("encode %s: %w", core.TaskStore, err)
	}
	if err := s.kv.Set(core.TaskStore, data); err != nil {
		return fmt.Errorf("persist %s: %w", core.TaskStore, err)
	}
	return nil
}

// AddTask assigns an id and appends the task.
func (s *Store) AddTask(t core.Task) (core.Task, error) {
	t.ID = s.newID()
	err := s.commit(core.Change{Op: core.OpCreate, Entity: core.EntityTask, ID: t.ID}, func(cur []core.Task) ([]core.Task, bool) {
		return append(slices.Clip(cur), t), true
	})
	return t, err
}

// UpdateTask merges patch into the task.
func (s *Store) UpdateTask(id string, patch core.TaskPatch) error {
	return s.replace(id, func(t core.Task) (core.Task, bool) {
		return patch.Apply(t), true
	})
}

// CompleteTask marks the task completed. Completing a completed task is a no-op.
func (s *Store) CompleteTask(id string) error {
	return s.replace(id, func(t core.Task) (core.Task, bool) {
		if t.Status == core.StatusCompleted {
			return t, false
		}
		t.Status = core.StatusCompleted
		return t, true
	})
}

func (s *Store) DeleteTask(id string) error {
	return s.commit(core.Change{Op: core.OpDelete, Entity: core.EntityTask, ID: id}, func(cur []core.Task) ([]core.Task, bool) {
		out := make([]core.Task, 0, len(cur))
		for _, t := range cur {
			if t.ID != id {
				out = append(out, t)
			}
		}
		return out, len(out) != len(cur)
	})
}

// replace swaps the task with fn's result. fn reports false to leave it untouched.
func (s *Store) replace(id string, fn func(core.Task) (core.Task, bool)) error {
	return s.commit(core.Change{Op: core.OpUpdate, Entity: core.EntityTask, ID: id}, func(cur []core.Task) ([]core.Task, bool) {
		i := slices.IndexFunc(cur, func(t core.Task) bool { return t.ID == id })
		if i < 0 {
			return cur, false
		}
		updated, ok := fn(cur[i])
		if !ok {
			return cur, false
		}
		next := slices.Clone(cur)
		next[i] = updated
		return next, true
	})
}
