package recommend

import (
	"errors"
	"testing"

	"github.com/wichananm65/bookstore-backend/internal/book"
	"github.com/wichananm65/bookstore-backend/internal/order"
	"github.com/wichananm65/bookstore-backend/internal/wishlist"
)

func newTestService(catalog *book.InMemoryRepository, wishlists map[int][]int) (*Service, *InMemoryCacheRepository) {
	cache := NewInMemoryCacheRepository()
	engine := NewEngine(
		catalog,
		order.NewInMemoryRepository(catalog, nil),
		wishlist.NewInMemoryRepository(catalog, wishlists),
	)
	return NewService(engine, cache), cache
}

func trendingCatalog() *book.InMemoryRepository {
	return book.NewInMemoryRepository([]book.Book{
		{ID: 1, Title: "Alpha", IsActive: true, PurchaseCount: 50, AverageRating: 4},
		{ID: 2, Title: "Beta", IsActive: true, PurchaseCount: 20, AverageRating: 5},
	})
}

func TestServiceReadThrough(t *testing.T) {
	svc, _ := newTestService(trendingCatalog(), map[int][]int{7: {1}})

	first := svc.GetPersonalized(7, 8)
	if first.IsCached {
		t.Fatal("first call must be a cache miss")
	}
	if first.Type != TypePersonalized || first.Algorithm != AlgorithmProfile {
		t.Fatalf("unexpected result labels: %+v", first)
	}

	second := svc.GetPersonalized(7, 8)
	if !second.IsCached {
		t.Fatal("second call must be served from the cache")
	}
	if second.CachedAt == nil {
		t.Fatal("cached result must carry its generation time")
	}
	if len(second.Entries) != len(first.Entries) {
		t.Fatalf("cached entries diverge: %v vs %v", second.Entries, first.Entries)
	}
}

func TestServiceCachedResultRespectsSmallerLimit(t *testing.T) {
	svc, _ := newTestService(trendingCatalog(), nil)

	full := svc.GetTrending(8)
	if len(full.Entries) != 2 {
		t.Fatalf("expected 2 trending entries, got %v", full.Entries)
	}
	trimmed := svc.GetTrending(1)
	if !trimmed.IsCached || len(trimmed.Entries) != 1 {
		t.Fatalf("cached result must be trimmed to the limit: %+v", trimmed)
	}
	if trimmed.Entries[0].BookID != full.Entries[0].BookID {
		t.Fatalf("trimming must keep the top entry: %+v", trimmed.Entries)
	}
}

func TestServiceClearCacheForcesRecompute(t *testing.T) {
	svc, _ := newTestService(trendingCatalog(), map[int][]int{7: {1}})

	svc.GetPersonalized(7, 8)
	if err := svc.ClearCache(7); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if res := svc.GetPersonalized(7, 8); res.IsCached {
		t.Fatal("cleared cache must force a recompute")
	}
}

func TestServiceEmptyResultIsNotCached(t *testing.T) {
	svc, cache := newTestService(trendingCatalog(), nil)

	// unknown source book yields an empty similar list
	res := svc.GetSimilar(999, 8)
	if len(res.Entries) != 0 {
		t.Fatalf("expected empty result, got %v", res.Entries)
	}
	if _, ok, _ := cache.Get("", TypeSimilar, 999); ok {
		t.Fatal("empty results must never be cached")
	}
}

// failingWishlist simulates an unavailable interaction store so the
// personalized strategy errors while the catalog keeps working.
type failingWishlist struct{}

func (failingWishlist) ListBooks(userID int) ([]book.Book, error) {
	return nil, errors.New("wishlist store down")
}

func TestServiceFallbackIsLabeledAndNotCached(t *testing.T) {
	catalog := trendingCatalog()
	cache := NewInMemoryCacheRepository()
	engine := NewEngine(catalog, order.NewInMemoryRepository(catalog, nil), failingWishlist{})
	svc := NewService(engine, cache)

	res := svc.GetPersonalized(7, 8)
	if res.Type != TypePersonalized {
		t.Fatalf("fallback keeps the requested type, got %q", res.Type)
	}
	if res.Algorithm != AlgorithmTrendingFallback {
		t.Fatalf("fallback must be labeled, got %q", res.Algorithm)
	}
	if len(res.Entries) == 0 {
		t.Fatal("fallback should still return the trending list")
	}
	if _, ok, _ := cache.Get("7", TypePersonalized, 0); ok {
		t.Fatal("fallback results must never be cached under the requested type")
	}
}

func TestServiceTrackRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(trendingCatalog(), nil)

	if err := svc.Track("", Type("bogus"), 0, EventView); err == nil {
		t.Fatal("invalid type must be rejected")
	}
	if err := svc.Track("", TypeTrending, 0, TrackEvent("bogus")); err == nil {
		t.Fatal("invalid event must be rejected")
	}
	if err := svc.Track("", TypeTrending, 0, EventView); err != nil {
		t.Fatalf("valid tracking call failed: %v", err)
	}
}
