package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAccountLocks_MutualExclusion(t *testing.T) {
	locks := newAccountLocks()
	id := uuid.New()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			release := locks.Acquire(id)
			defer release()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestAccountLocks_DuplicateIDsCollapse(t *testing.T) {
	locks := newAccountLocks()
	id := uuid.New()

	// Would self-deadlock if the duplicate were locked twice.
	release := locks.Acquire(id, id)
	release()
}

func TestAccountLocks_ReleasedEntriesAreDropped(t *testing.T) {
	locks := newAccountLocks()

	release := locks.Acquire(uuid.New(), uuid.New())
	release()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks)
}

func TestAccountLocks_OppositeOrderDoesNotDeadlock(t *testing.T) {
	locks := newAccountLocks()
	a, b := uuid.New(), uuid.New()

	const rounds = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			release := locks.Acquire(a, b)
			release()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			release := locks.Acquire(b, a)
			release()
		}
	}()
	wg.Wait()
}
