// Package keylock serialises work on groups of string keys.
package keylock

import (
	"slices"
	"sync"

	"github.com/moby/locker"
)

// Locker hands out per-key locks over several keys at once.
type Locker struct {
	keys *locker.Locker
}

// New creates a Locker
func New() *Locker {
	return &Locker{keys: locker.New()}
}

// Lock acquires every key in sorted order and returns a function releasing
// them. Duplicate keys are locked once.
func (l *Locker) Lock(keys ...string) (unlock func()) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	for _, k := range sorted {
		l.keys.Lock(k)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(sorted) - 1; i >= 0; i-- {
				// only fails for keys not held, which once rules out
				_ = l.keys.Unlock(sorted[i])
			}
		})
	}
}
