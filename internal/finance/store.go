// Package finance holds vendors, expenses, revenues and the category lists,
// persisting every mutation through to a storage.KV snapshot.
package finance

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"bizledger/internal/core"
	applog "bizledger/internal/log"
	"bizledger/internal/notify"
	"bizledger/internal/storage"
)

// Options configure Open. The zero value is usable.
type Options struct {
	// NewID generates entity ids. Defaults to core.NewID.
	NewID func() string
	// Seed builds the initial state when no snapshot was persisted yet.
	// Defaults to DefaultSnapshot.
	Seed func(newID func() string) Snapshot
	Logger *applog.Logger
}

// Store is the record store. Mutations are applied under a lock, written to
// the KV and then announced to subscribers. A mutation addressed to an
// unknown id is a silent no-op.
type Store struct {
	mu       sync.RWMutex
	kv       storage.KV
	newID    func() string
	logger   *applog.Logger
	state    Snapshot
	revision uint64
	hub      notify.Hub
}

// Open loads the "finance-storage" snapshot from kv, or seeds a new state.
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
	s.logger = s.logger.WithComponent(applog.ComponentFinance)

	data, ok, err := kv.Get(core.FinanceStore)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", core.FinanceStore, err)
	}
	if !ok {
		seed := opts.Seed
		if seed == nil {
			seed = func(func() string) Snapshot { return DefaultSnapshot() }
		}
		s.state = seed(s.newID).Clone()
		s.logger.Info("No finance snapshot found, starting from seed",
			"vendors", len(s.state.Vendors),
			"expenses", len(s.state.Expenses),
			"revenues", len(s.state.Revenues))
		return s, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", core.FinanceStore, err)
	}
	s.state = snap.Clone()
	s.logger.Debug("Finance snapshot loaded",
		"vendors", len(s.state.Vendors),
		"expenses", len(s.state.Expenses),
		"revenues", len(s.state.Revenues))
	return s, nil
}

// Subscribe registers fn for change notifications.
func (s *Store) Subscribe(fn notify.Func) (unsubscribe func()) {
	return s.hub.Subscribe(fn)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.state.Clone()
	snap.Revision = s.revision
	return snap
}

// Revision returns the number of mutations applied since Open.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) Vendor(id string) (core.Vendor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.vendorByID(id)
}

func (s *Store) Expense(id string) (core.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.state.Expenses, func(e core.Expense) bool { return e.ID == id })
	if i < 0 {
		return core.Expense{}, false
	}
	return s.state.Expenses[i], true
}

func (s *Store) Revenue(id string) (core.Revenue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.state.Revenues, func(r core.Revenue) bool { return r.ID == id })
	if i < 0 {
		return core.Revenue{}, false
	}
	return s.state.Revenues[i], true
}

// commit runs apply against the current state. apply returns the next state
// and false when nothing changed. The next state replaces the current one
// before the durable write, so a failed write leaves memory ahead of storage.
func (s *Store) commit(change core.Change, apply func(cur Snapshot) (Snapshot, bool)) error {
	s.mu.Lock()
	next, changed := apply(s.state)
	if !changed {
		s.mu.Unlock()
		return nil
	}
	s.state = next
	s.revision++
	change.Store = core.FinanceStore
	change.Revision = s.revision
	err := s.persist()
	s.mu.Unlock()

	fields := applog.NewFields().WithChange(change)
	if err != nil {
		s.logger.Error("Failed to persist finance snapshot", fields.WithError(err).ToSlice()...)
	} else {
		s.logger.Debug("Finance store changed", fields.ToSlice()...)
	}

	s.hub.Publish(change)
	return err
}

// persist must be called with mu held.
func (s *Store) persist() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode %s: %w", core.FinanceStore, err)
	}
	if err := s.kv.Set(core.FinanceStore, data); err != nil {
		return fmt.Errorf("persist %s: %w", core.FinanceStore, err)
	}
	return nil
}

// AddVendor assigns an id and appends the vendor.
func (s *Store) AddVendor(v core.Vendor) (core.Vendor, error) {
	v.ID = s.newID()
	err := s.commit(core.Change{Op: core.OpCreate, Entity: core.EntityVendor, ID: v.ID}, func(cur Snapshot) (Snapshot, bool) {
		cur.Vendors = append(slices.Clip(cur.Vendors), v)
		return cur, true
	})
	return v, err
}

// UpdateVendor merges patch into the vendor. A name change is copied into the
// cached VendorName of every expense that references the vendor.
func (s *Store) UpdateVendor(id string, patch core.VendorPatch) error {
	return s.commit(core.Change{Op: core.OpUpdate, Entity: core.EntityVendor, ID: id}, func(cur Snapshot) (Snapshot, bool) {
		i := slices.IndexFunc(cur.Vendors, func(v core.Vendor) bool { return v.ID == id })
		if i < 0 {
			return cur, false
		}
		vendors := slices.Clone(cur.Vendors)
		vendors[i] = patch.Apply(vendors[i])
		cur.Vendors = vendors

		if patch.Name != nil {
			expenses := slices.Clone(cur.Expenses)
			for j := range expenses {
				if expenses[j].VendorID == id {
					expenses[j].VendorName = *patch.Name
				}
			}
			cur.Expenses = expenses
		}
		return cur, true
	})
}

// DeleteVendor removes the vendor. Expenses keep their VendorID and cached VendorName.
func (s *Store) DeleteVendor(id string) error {
	return s.commit(core.Change{Op: core.OpDelete, Entity: core.EntityVendor, ID: id}, func(cur Snapshot) (Snapshot, bool) {
		vendors, removed := without(cur.Vendors, func(v core.Vendor) bool { return v.ID == id })
		cur.Vendors = vendors
		return cur, removed
	})
}

// AddExpense assigns an id and appends the expense. Vendor fields are
// normalized against the expense category and the vendor list.
func (s *Store) AddExpense(e core.Expense) (core.Expense, error) {
	e.ID = s.newID()
	err := s.commit(core.Change{Op: core.OpCreate, Entity: core.EntityExpense, ID: e.ID}, func(cur Snapshot) (Snapshot, bool) {
		e = normalizeVendor(e, cur, true)
		cur.Expenses = append(slices.Clip(cur.Expenses), e)
		return cur, true
	})
	return e, err
}

// UpdateExpense merges patch into the expense.
func (s *Store) UpdateExpense(id string, patch core.ExpensePatch) error {
	return s.commit(core.Change{Op: core.OpUpdate, Entity: core.EntityExpense, ID: id}, func(cur Snapshot) (Snapshot, bool) {
		i := slices.IndexFunc(cur.Expenses, func(e core.Expense) bool { return e.ID == id })
		if i < 0 {
			return cur, false
		}
		expenses := slices.Clone(cur.Expenses)
		merged := patch.Apply(expenses[i])
		if patch.VendorID != nil && patch.VendorName == nil {
			// the old cached name belongs to the previous vendor
			merged.VendorName = ""
		}
		expenses[i] = normalizeVendor(merged, cur, patch.VendorID != nil)
		cur.Expenses = expenses
		return cur, true
	})
}

func (s *Store) DeleteExpense(id string) error {
	return s.commit(core.Change{Op: core.OpDelete, Entity: core.EntityExpense, ID: id}, func(cur Snapshot) (Snapshot, bool) {
		expenses, removed := without(cur.Expenses, func(e core.Expense) bool { return e.ID == id })
		cur.Expenses = expenses
		return cur, removed
	})
}

func (s *Store) AddRevenue(r core.Revenue) (core.Revenue, error) {
	r.ID = s.newID()
	err := s.commit(core.Change{Op: core.OpCreate, Entity: core.EntityRevenue, ID: r.ID}, func(cur Snapshot) (Snapshot, bool) {
		cur.Revenues = append(slices.Clip(cur.Revenues), r)
		return cur, true
	})
	return r, err
}

func (s *Store) UpdateRevenue(id string, patch core.RevenuePatch) error {
	return s.commit(core.Change{Op: core.OpUpdate, Entity: core.EntityRevenue, ID: id}, func(cur Snapshot) (Snapshot, bool) {
		i := slices.IndexFunc(cur.Revenues, func(r core.Revenue) bool { return r.ID == id })
		if i < 0 {
			return cur, false
		}
		revenues := slices.Clone(cur.Revenues)
		revenues[i] = patch.Apply(revenues[i])
		cur.Revenues = revenues
		return cur, true
	})
}

func (s *Store) DeleteRevenue(id string) error {
	return s.commit(core.Change{Op: core.OpDelete, Entity: core.EntityRevenue, ID: id}, func(cur Snapshot) (Snapshot, bool) {
		revenues, removed := without(cur.Revenues, func(r core.Revenue) bool { return r.ID == id })
		cur.Revenues = revenues
		return cur, removed
	})
}

// AddExpenseCategory appends name unless it is already listed (exact match).
func (s *Store) AddExpenseCategory(name string) error {
	return s.commit(core.Change{Op: core.OpCreate, Entity: core.EntityExpenseCategory, ID: name}, func(cur Snapshot) (Snapshot, bool) {
		if slices.Contains(cur.ExpenseCategories, name) {
			return cur, false
		}
		cur.ExpenseCategories = append(slices.Clip(cur.ExpenseCategories), name)
		return cur, true
	})
}

// DeleteExpenseCategory removes name. It does not refuse the reserved vendor
// category or the last category; see CheckExpenseCategoryDeletable.
func (s *Store) DeleteExpenseCategory(name string) error {
	return s.commit(core.Change{Op: core.OpDelete, Entity: core.EntityExpenseCategory, ID: name}, func(cur Snapshot) (Snapshot, bool) {
		cats, removed := without(cur.ExpenseCategories, func(c string) bool { return c == name })
		cur.ExpenseCategories = cats
		return cur, removed
	})
}

func (s *Store) AddRevenueCategory(name string) error {
	return s.commit(core.Change{Op: core.OpCreate, Entity: core.EntityRevenueCategory, ID: name}, func(cur Snapshot) (Snapshot, bool) {
		if slices.Contains(cur.RevenueCategories, name) {
			return cur, false
		}
		cur.RevenueCategories = append(slices.Clip(cur.RevenueCategories), name)
		return cur, true
	})
}

func (s *Store) DeleteRevenueCategory(name string) error {
	return s.commit(core.Change{Op: core.OpDelete, Entity: core.EntityRevenueCategory, ID: name}, func(cur Snapshot) (Snapshot, bool) {
		cats, removed := without(cur.RevenueCategories, func(c string) bool { return c == name })
		cur.RevenueCategories = cats
		return cur, removed
	})
}

// normalizeVendor keeps VendorID/VendorName consistent with the category.
// When resolve is set the name is looked up from the vendor list; an unknown
// vendor keeps the name the caller supplied with the id, or none.
func normalizeVendor(e core.Expense, cur Snapshot, resolve bool) core.Expense {
	if e.Category != core.VendorCategory {
		e.VendorID = ""
		e.VendorName = ""
		return e
	}
	if e.VendorID == "" {
		e.VendorName = ""
		return e
	}
	if resolve {
		if v, ok := cur.vendorByID(e.VendorID); ok {
			e.VendorName = v.Name
		}
	}
	return e
}

// without returns a new slice lacking the elements matched by drop.
func without[T any](in []T, drop func(T) bool) ([]T, bool) {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !drop(v) {
			out = append(out, v)
		}
	}
	return out, len(out) != len(in)
}
