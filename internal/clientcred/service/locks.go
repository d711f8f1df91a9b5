package service

import "sync"

// baseLocks serializes mutating operations per base identity so two
// duplicates cannot race for the same next version number and a delete
// cannot interleave with a duplicate. Operations on different base
// identities proceed concurrently. Entries live for the process lifetime,
// bounded by the number of base identities.
type baseLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newBaseLocks() *baseLocks {
	return &baseLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for a base identity and returns its unlock func.
func (b *baseLocks) lock(baseClientID string) func() {
	b.mu.Lock()
	l, ok := b.locks[baseClientID]
	if !ok {
		l = &sync.Mutex{}
		b.locks[baseClientID] = l
	}
	b.mu.Unlock()

	l.Lock()
	return l.Unlock
}
