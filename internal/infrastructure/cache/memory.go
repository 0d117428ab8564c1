package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// MemoryStore is a simple in-memory key-value store with expiration.
// A zero expiration keeps the key until Delete.
type MemoryStore struct {
	mu    sync.RWMutex
	clock clock.Clock
	items map[string]*memoryItem
}

type memoryItem struct {
	value      string
	expireTime time.Time
}

func (i *memoryItem) expired(now time.Time) bool {
	return !i.expireTime.IsZero() && !now.Before(i.expireTime)
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(clk clock.Clock) *MemoryStore {
	if clk == nil {
		clk = clock.New()
	}
	return &MemoryStore{
		clock: clk,
		items: make(map[string]*memoryItem),
	}
}

// Set stores a key-value pair with expiration
func (ms *MemoryStore) Set(key string, value string, expiration time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item := &memoryItem{value: value}
	if expiration > 0 {
		item.expireTime = ms.clock.Now().Add(expiration)
	}
	ms.items[key] = item
}

// Get retrieves a value by key (returns empty string if not found or expired)
func (ms *MemoryStore) Get(key string) (string, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists || item.expired(ms.clock.Now()) {
		return "", false
	}
	return item.value, true
}

// Delete removes a key
func (ms *MemoryStore) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
}

// Scan returns the live entries whose key starts with prefix and drops the
// expired ones it meets
func (ms *MemoryStore) Scan(prefix string) map[string]string {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.clock.Now()
	out := make(map[string]string)
	for key, item := range ms.items {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if item.expired(now) {
			delete(ms.items, key)
			continue
		}
		out[key] = item.value
	}
	return out
}

// MemorySuppressionStore keeps alert suppressions in process memory. Used
// when redis is disabled; everything is lost on restart.
type MemorySuppressionStore struct {
	store        *MemoryStore
	keys         suppressionKeys
	lastAlertTTL time.Duration
}

// NewMemorySuppressionStore creates a suppression store on top of a MemoryStore.
// lastAlertTTL bounds how long last-alert times are kept; zero keeps them.
func NewMemorySuppressionStore(store *MemoryStore, lastAlertTTL time.Duration) *MemorySuppressionStore {
	return &MemorySuppressionStore{
		store:        store,
		keys:         suppressionKeys{prefix: "voiceid"},
		lastAlertTTL: lastAlertTTL,
	}
}

// SetDismissal records a dismissal. Permanent dismissals never expire.
func (s *MemorySuppressionStore) SetDismissal(_ context.Context, speakerID string, d entities.Dismissal) error {
	value, ttl, ok := encodeDismissal(d, s.store.clock.Now())
	if !ok {
		s.store.Delete(s.keys.dismissal(speakerID))
		return nil
	}
	s.store.Set(s.keys.dismissal(speakerID), value, ttl)
	return nil
}

// SetDeferral records a deferral until the given time
func (s *MemorySuppressionStore) SetDeferral(_ context.Context, speakerID string, until time.Time) error {
	ttl := until.Sub(s.store.clock.Now())
	if ttl <= 0 {
		s.store.Delete(s.keys.deferral(speakerID))
		return nil
	}
	s.store.Set(s.keys.deferral(speakerID), encodeTime(until), ttl)
	return nil
}

// SetLastAlert records when a speaker was last alerted
func (s *MemorySuppressionStore) SetLastAlert(_ context.Context, speakerID string, at time.Time) error {
	s.store.Set(s.keys.lastAlert(speakerID), encodeTime(at), s.lastAlertTTL)
	return nil
}

// Load returns every suppression still live at now
func (s *MemorySuppressionStore) Load(_ context.Context, now time.Time) (entities.Suppressions, error) {
	out := entities.NewSuppressions()
	for key, value := range s.store.Scan(s.keys.root()) {
		if err := s.keys.decodeInto(&out, key, value, now); err != nil {
			return out, err
		}
	}
	return out, nil
}
