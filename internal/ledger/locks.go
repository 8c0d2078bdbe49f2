package ledger

import (
	"sort"
	"sync"
)

// lockTable hands out one mutex per account ID. Operations lock the full set
// of accounts they touch in sorted order, so overlapping operations serialize
// and cannot deadlock, while disjoint account sets run in parallel. Mutexes
// are never evicted; the table is bounded by the number of accounts.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: map[string]*sync.Mutex{}}
}

// Acquire locks every ID in the set and returns the release function.
func (t *lockTable) Acquire(ids ...string) func() {
	unique := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Strings(unique)

	held := make([]*sync.Mutex, 0, len(unique))
	for _, id := range unique {
		held = append(held, t.get(id))
	}
	for _, m := range held {
		m.Lock()
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func (t *lockTable) get(id string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.locks[id]
	if !ok {
		m = &sync.Mutex{}
		t.locks[id] = m
	}
	return m
}
