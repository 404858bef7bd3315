package services

import (
	"bytes"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// accountLocks serializes balance mutations per account. Every mutation of
// one account goes through its lock for the whole read-modify-write, which
// rules out two concurrent debits both passing the funds check on a stale
// balance. Multi-account callers always receive the locks in ascending id
// order, so two opposite transfers over the same pair cannot deadlock.
type accountLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[uuid.UUID]*accountLock)}
}

// Acquire locks the given accounts in deterministic order and returns the
// release function. Duplicate ids are collapsed so a caller can't self-deadlock.
func (l *accountLocks) Acquire(ids ...uuid.UUID) func() {
	ordered := dedupeAndSort(ids)

	entries := make([]*accountLock, len(ordered))
	l.mu.Lock()
	for i, id := range ordered {
		entry, ok := l.locks[id]
		if !ok {
			entry = &accountLock{}
			l.locks[id] = entry
		}
		entry.refs++
		entries[i] = entry
	}
	l.mu.Unlock()

	for _, entry := range entries {
		entry.mu.Lock()
	}

	return func() {
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].mu.Unlock()
		}

		l.mu.Lock()
		for i, id := range ordered {
			entries[i].refs--
			if entries[i].refs == 0 {
				delete(l.locks, id)
			}
		}
		l.mu.Unlock()
	}
}

func dedupeAndSort(ids []uuid.UUID) []uuid.UUID {
	ordered := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}

	sort.Slice(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i][:], ordered[j][:]) < 0
	})

	return ordered
}
