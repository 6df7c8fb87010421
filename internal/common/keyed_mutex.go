package common

import (
	"sync"

	"github.com/puzpuzpuz/xsync"
)

// KeyedMutex serializes callers sharing a key while callers of different keys run in parallel.
type KeyedMutex struct {
	locks *xsync.MapOf[string, *sync.Mutex]
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: xsync.NewMapOf[*sync.Mutex]()}
}

// Lock blocks until the key is free and returns the function releasing it.
func (m *KeyedMutex) Lock(key string) func() {
	mu, _ := m.locks.LoadOrCompute(key, func() *sync.Mutex {
		return &sync.Mutex{}
	})

	mu.Lock()
	return mu.Unlock
}
