package testsupport

import (
	"context"
	"testing"

	"pricewatch/internal/catalog"
	"pricewatch/internal/config"
	"pricewatch/internal/pricing"
)

// MustOpenCatalog opens the catalog store for a test and closes it on cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("open catalog store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// MustOpenPricing opens the pricing store for a test and closes it on cleanup.
func MustOpenPricing(t testing.TB, cfg *config.Config) *pricing.Store {
	t.Helper()
	store, err := pricing.Open(cfg)
	if err != nil {
		t.Fatalf("open pricing store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// SeedSpec inserts a specification record for matching tests.
func SeedSpec(t testing.TB, store *catalog.Store, table, id, partNumber string) {
	t.Helper()
	if err := store.InsertSpec(context.Background(), table, id, partNumber); err != nil {
		t.Fatalf("seed spec %s/%s: %v", table, id, err)
	}
}
