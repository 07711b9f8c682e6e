package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	t.Parallel()
	k := New()

	var wg sync.WaitGroup
	counter := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k.Lock("emp-1|2024-03-15")
			defer k.Unlock("emp-1|2024-03-15")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	t.Parallel()
	k := New()

	k.Lock("a")
	defer k.Unlock("a")

	done := make(chan struct{})
	go func() {
		k.Lock("b")
		k.Unlock("b")
		close(done)
	}()

	// Must complete while "a" is still held.
	<-done
}

func TestKeyedMutex_EntriesReleased(t *testing.T) {
	t.Parallel()
	k := New()

	k.Lock("a")
	k.Unlock("a")

	k.mu.Lock()
	defer k.mu.Unlock()
	assert.Empty(t, k.locks)
}

func TestKeyedMutex_UnlockUnheldPanics(t *testing.T) {
	t.Parallel()
	k := New()
	assert.Panics(t, func() { k.Unlock("never-locked") })
}
