package store

import "sync"

// lockTable hands out one mutex per filename so that every mutating
// operation on a given (tier, key) file excludes every other one, while
// operations on different files proceed independently. The table is never
// pruned; the file population is bounded by retention.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex guarding the named file, creating it on first use.
func (t *lockTable) get(name string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.locks[name]
	if !ok {
		l = &sync.Mutex{}
		t.locks[name] = l
	}

	return l
}
