// Package timer provides a keyed registry of cancellable deadlines.
//
// The registry holds at most one pending timer per key. It never starts
// goroutines: the owner advances it by calling Fire with the current time,
// typically while holding the same lock that guards the state the callbacks
// mutate. A cancelled timer can therefore never fire late.
package timer

import "time"

// Func runs when a timer fires. at is the timer's deadline.
type Func func(at time.Time)

type entry struct {
	deadline time.Time
	seq      uint64
	fn       Func
}

// Registry maps keys to pending deadlines. Not safe for concurrent use.
type Registry struct {
	entries map[string]*entry
	seq     uint64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Schedule arms key to fire at deadline, replacing any pending timer for
// the same key. Reports whether a timer was replaced.
func (r *Registry) Schedule(key string, deadline time.Time, fn Func) bool {
	_, replaced := r.entries[key]
	r.seq++
	r.entries[key] = &entry{deadline: deadline, seq: r.seq, fn: fn}
	return replaced
}

// Cancel removes the pending timer for key. Reports whether one existed.
func (r *Registry) Cancel(key string) bool {
	if _, ok := r.entries[key]; !ok {
		return false
	}
	delete(r.entries, key)
	return true
}

// Pending returns the deadline armed for key
func (r *Registry) Pending(key string) (time.Time, bool) {
	e, ok := r.entries[key]
	if !ok {
		return time.Time{}, false
	}
	return e.deadline, true
}

// Len returns the number of pending timers
func (r *Registry) Len() int {
	return len(r.entries)
}

// Fire runs every timer whose deadline is not after now, earliest deadline
// first and in scheduling order for equal deadlines. Each timer is removed
// before its callback runs, so callbacks may schedule or cancel freely;
// timers armed by a callback with a deadline not after now fire in the same
// call. Returns the number of callbacks run.
func (r *Registry) Fire(now time.Time) int {
	fired := 0
	for {
		key, e := r.earliest()
		if e == nil || e.deadline.After(now) {
			return fired
		}
		delete(r.entries, key)
		e.fn(e.deadline)
		fired++
	}
}

func (r *Registry) earliest() (string, *entry) {
	var (
		bestKey string
		best    *entry
	)
	for k, e := range r.entries {
		if best == nil || e.deadline.Before(best.deadline) ||
			(e.deadline.Equal(best.deadline) && e.seq < best.seq) {
			bestKey, best = k, e
		}
	}
	return bestKey, best
}
