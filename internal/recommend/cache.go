package recommend

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CacheTTL is the validity window of a cached recommendation list, for
// personalized and public (similar/trending) rows alike.
const CacheTTL = 24 * time.Hour

// TrackEvent names an engagement counter on a cached row.
type TrackEvent string

const (
	EventView       TrackEvent = "view"
	EventClick      TrackEvent = "click"
	EventConversion TrackEvent = "conversion"
)

func (e TrackEvent) Valid() bool {
	switch e {
	case EventView, EventClick, EventConversion:
		return true
	}
	return false
}

// Cached is one persisted recommendation list. SubjectKey is the customer
// id for personalized rows and empty for public (similar/trending) rows;
// SourceBookID is set only for similar rows. At most one live row exists
// per (SubjectKey, Type, SourceBookID) key.
type Cached struct {
	ID           string    `json:"id"`
	SubjectKey   string    `json:"subjectKey,omitempty"`
	Type         Type      `json:"type"`
	SourceBookID int       `json:"sourceBookId,omitempty"`
	Entries      []Entry   `json:"entries"`
	Algorithm    string    `json:"algorithm"`
	GeneratedAt  time.Time `json:"generatedAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Views        int       `json:"views"`
	Clicks       int       `json:"clicks"`
	Conversions  int       `json:"conversions"`
}

// Expired reports whether the row is past its validity window.
func (c Cached) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// CacheRepository persists computed recommendation lists.
type CacheRepository interface {
	// Get returns the live row for the key, if any; expired rows are
	// never returned.
	Get(subjectKey string, typ Type, sourceBookID int) (Cached, bool, error)
	// Save replaces any row with the same (subjectKey, typ, sourceBookID)
	// key. Saving an empty entries list is a silent no-op; an empty
	// recommendation set is never persisted.
	Save(entry Cached) error
	// PurgeExpired deletes every row past its expiry and reports how many
	// were removed. Idempotent and safe to run concurrently with live
	// reads and writes.
	PurgeExpired() (int64, error)
	// ClearForSubject deletes all rows for a customer, used when the
	// upstream interaction data (wishlist, orders) changes.
	ClearForSubject(subjectKey string) error
	// Track atomically increments one engagement counter on the live row
	// for the key; a missing or expired row is a no-op.
	Track(subjectKey string, typ Type, sourceBookID int, event TrackEvent) error
}

// prepareCached fills row identity and the expiry window before a save.
func prepareCached(entry Cached) Cached {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.GeneratedAt.IsZero() {
		entry.GeneratedAt = time.Now().UTC()
	}
	if entry.ExpiresAt.IsZero() {
		entry.ExpiresAt = entry.GeneratedAt.Add(CacheTTL)
	}
	return entry
}

func cacheKey(subjectKey string, typ Type, sourceBookID int) string {
	return fmt.Sprintf("%s|%s|%d", subjectKey, typ, sourceBookID)
}

// InMemoryCacheRepository is used for tests and local scenarios.
type InMemoryCacheRepository struct {
	mu      sync.RWMutex
	storage map[string]Cached
}

func NewInMemoryCacheRepository() *InMemoryCacheRepository {
	return &InMemoryCacheRepository{storage: make(map[string]Cached)}
}

func (r *InMemoryCacheRepository) Get(subjectKey string, typ Type, sourceBookID int) (Cached, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.storage[cacheKey(subjectKey, typ, sourceBookID)]
	if !ok || entry.Expired(time.Now()) {
		return Cached{}, false, nil
	}
	return entry, true, nil
}

func (r *InMemoryCacheRepository) Save(entry Cached) error {
	if len(entry.Entries) == 0 {
		return nil
	}
	entry = prepareCached(entry)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage[cacheKey(entry.SubjectKey, entry.Type, entry.SourceBookID)] = entry
	return nil
}

func (r *InMemoryCacheRepository) PurgeExpired() (int64, error) {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	var purged int64
	for key, entry := range r.storage {
		if entry.Expired(now) {
			delete(r.storage, key)
			purged++
		}
	}
	return purged, nil
}

func (r *InMemoryCacheRepository) ClearForSubject(subjectKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, entry := range r.storage {
		if entry.SubjectKey == subjectKey {
			delete(r.storage, key)
		}
	}
	return nil
}

func (r *InMemoryCacheRepository) Track(subjectKey string, typ Type, sourceBookID int, event TrackEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := cacheKey(subjectKey, typ, sourceBookID)
	entry, ok := r.storage[key]
	if !ok || entry.Expired(time.Now()) {
		return nil
	}
	switch event {
	case EventView:
		entry.Views++
	case EventClick:
		entry.Clicks++
	case EventConversion:
		entry.Conversions++
	}
	r.storage[key] = entry
	return nil
}
