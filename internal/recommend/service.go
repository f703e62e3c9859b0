package recommend

import (
	"fmt"
	"strconv"
	"time"
)

// Result is the API-facing shape of a recommendation response.
type Result struct {
	Entries   []Entry    `json:"recommendations"`
	Type      Type       `json:"type"`
	Algorithm string     `json:"algorithm"`
	IsCached  bool       `json:"isCached"`
	CachedAt  *time.Time `json:"cachedAt,omitempty"`
}

// Service implements the read-through pattern over the engine and the
// cache: check cache, on miss run the strategy, save, respond. Scoring
// failures never become user-visible errors; the service degrades to the
// trending list (never cached under the requested type) or to an empty
// list when the catalog itself is unavailable. Recommendations are
// decoration, not a required purchase-path feature.
type Service struct {
	engine *Engine
	cache  CacheRepository
}

func NewService(engine *Engine, cache CacheRepository) *Service {
	return &Service{engine: engine, cache: cache}
}

func (s *Service) GetPersonalized(customerID int, limit int) Result {
	if limit <= 0 {
		limit = DefaultLimit
	}
	subject := strconv.Itoa(customerID)
	if res, ok := s.fromCache(subject, TypePersonalized, 0, limit); ok {
		return res
	}

	entries, algo, err := s.engine.Personalized(customerID, limit)
	if err != nil {
		return s.trendingFallback(TypePersonalized, limit, err)
	}
	s.saveToCache(Cached{SubjectKey: subject, Type: TypePersonalized, Entries: entries, Algorithm: algo})
	return Result{Entries: entries, Type: TypePersonalized, Algorithm: algo}
}

func (s *Service) GetSimilar(bookID int, limit int) Result {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if res, ok := s.fromCache("", TypeSimilar, bookID, limit); ok {
		return res
	}

	entries, algo, err := s.engine.Similar(bookID, limit)
	if err != nil {
		return s.trendingFallback(TypeSimilar, limit, err)
	}
	s.saveToCache(Cached{Type: TypeSimilar, SourceBookID: bookID, Entries: entries, Algorithm: algo})
	return Result{Entries: entries, Type: TypeSimilar, Algorithm: algo}
}

func (s *Service) GetTrending(limit int) Result {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if res, ok := s.fromCache("", TypeTrending, 0, limit); ok {
		return res
	}

	entries, algo, err := s.engine.Trending(limit)
	if err != nil {
		// the catalog collaborator itself is unavailable: empty list,
		// never a hard error
		fmt.Printf("warning: trending recommendations failed: %v\n", err)
		return Result{Entries: []Entry{}, Type: TypeTrending, Algorithm: AlgorithmPopularity}
	}
	s.saveToCache(Cached{Type: TypeTrending, Entries: entries, Algorithm: algo})
	return Result{Entries: entries, Type: TypeTrending, Algorithm: algo}
}

// ClearCache drops every cached list for the customer. Called on explicit
// user request and by the wishlist/order handlers whenever interaction
// data changes.
func (s *Service) ClearCache(customerID int) error {
	return s.cache.ClearForSubject(strconv.Itoa(customerID))
}

// PurgeExpired removes rows past their expiry; intended to be invoked by
// an external scheduler on a fixed interval.
func (s *Service) PurgeExpired() (int64, error) {
	return s.cache.PurgeExpired()
}

// Track records an engagement event against a cached list.
func (s *Service) Track(subjectKey string, typ Type, sourceBookID int, event TrackEvent) error {
	if !typ.Valid() || !event.Valid() {
		return fmt.Errorf("invalid tracking call: type=%q event=%q", typ, event)
	}
	return s.cache.Track(subjectKey, typ, sourceBookID, event)
}

func (s *Service) fromCache(subject string, typ Type, sourceBookID int, limit int) (Result, bool) {
	cached, ok, err := s.cache.Get(subject, typ, sourceBookID)
	if err != nil {
		// a broken cache must not break recommendations
		fmt.Printf("warning: recommendation cache read failed: %v\n", err)
		return Result{}, false
	}
	if !ok {
		return Result{}, false
	}
	entries := cached.Entries
	if len(entries) > limit {
		entries = entries[:limit]
	}
	cachedAt := cached.GeneratedAt
	return Result{
		Entries:   entries,
		Type:      typ,
		Algorithm: cached.Algorithm,
		IsCached:  true,
		CachedAt:  &cachedAt,
	}, true
}

func (s *Service) saveToCache(entry Cached) {
	// empty lists are never cached; Save also guards, but skipping here
	// saves the round trip
	if len(entry.Entries) == 0 {
		return
	}
	if err := s.cache.Save(entry); err != nil {
		fmt.Printf("warning: recommendation cache save failed: %v\n", err)
	}
}

// trendingFallback converts a strategy failure into the cheapest useful
// answer. The result is labeled so it cannot be mistaken for the
// requested strategy, and it is never cached under the requested type.
func (s *Service) trendingFallback(requested Type, limit int, cause error) Result {
	fmt.Printf("warning: %s recommendations failed, falling back to trending: %v\n", requested, cause)
	entries, _, err := s.engine.Trending(limit)
	if err != nil {
		fmt.Printf("warning: trending fallback failed: %v\n", err)
		entries = []Entry{}
	}
	return Result{Entries: entries, Type: requested, Algorithm: AlgorithmTrendingFallback}
}
