package store

import (
	"sort"
	"sync"

	"github.com/frahmantamala/household-expenses/internal/expense"
	"github.com/frahmantamala/household-expenses/internal/month"
)

// Snapshot is a detached copy of every cached month.
type Snapshot struct {
	Expenses map[month.Key][]expense.Expense
	Balances map[month.Key]float64
}

func NewSnapshot() Snapshot {
	return Snapshot{
		Expenses: make(map[month.Key][]expense.Expense),
		Balances: make(map[month.Key]float64),
	}
}

// Months returns every month present in either map, newest first.
func (s Snapshot) Months() []month.Key {
	seen := make(map[month.Key]struct{}, len(s.Expenses)+len(s.Balances))
	for k := range s.Expenses {
		seen[k] = struct{}{}
	}
	for k := range s.Balances {
		seen[k] = struct{}{}
	}
	keys := make([]month.Key, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })
	return keys
}

// Store caches what the backend returned per month. Values are copied on the way in and out.
type Store struct {
	mu       sync.RWMutex
	expenses map[month.Key][]expense.Expense
	balances map[month.Key]float64
}

func New() *Store {
	snap := NewSnapshot()
	return &Store{expenses: snap.Expenses, balances: snap.Balances}
}

func (s *Store) Expenses(key month.Key) []expense.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneExpenses(s.expenses[key])
}

func (s *Store) SetExpenses(key month.Key, list []expense.Expense) {
	cp := cloneExpenses(list)
	if cp == nil {
		cp = []expense.Expense{}
	}
	s.mu.Lock()
	s.expenses[key] = cp
	s.mu.Unlock()
}

func (s *Store) Balance(key month.Key) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.balances[key]
	return v, ok
}

func (s *Store) SetBalance(key month.Key, v float64) {
	s.mu.Lock()
	s.balances[key] = v
	s.mu.Unlock()
}

func (s *Store) Months() []month.Key {
	return s.Snapshot().Months()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.expenses, s.balances)
}

// Replace swaps the whole cache for snap.
func (s *Store) Replace(snap Snapshot) {
	cp := copySnapshot(snap.Expenses, snap.Balances)
	s.mu.Lock()
	s.expenses, s.balances = cp.Expenses, cp.Balances
	s.mu.Unlock()
}

func (s *Store) Clear() {
	s.Replace(NewSnapshot())
}

func copySnapshot(exp map[month.Key][]expense.Expense, bal map[month.Key]float64) Snapshot {
	out := NewSnapshot()
	for k, list := range exp {
		cp := cloneExpenses(list)
		if cp == nil {
			cp = []expense.Expense{}
		}
		out.Expenses[k] = cp
	}
	for k, v := range bal {
		out.Balances[k] = v
	}
	return out
}

func cloneExpenses(list []expense.Expense) []expense.Expense {
	if list == nil {
		return nil
	}
	out := make([]expense.Expense, len(list))
	for i, e := range list {
		if e.Items != nil {
			e.Items = append([]expense.Item(nil), e.Items...)
		}
		if e.ReceiptPath != nil {
			p := *e.ReceiptPath
			e.ReceiptPath = &p
		}
		out[i] = e
	}
	return out
}
