package pricing_test

import (
	"context"
	"testing"
	"time"

	"pricewatch/internal/pricing"
	"pricewatch/internal/testsupport"
)

func TestGetOrCreateStoreIsIdempotent(t *testing.T) {
	store := testsupport.MustOpenPricing(t, testsupport.NewConfig(t))
	ctx := context.Background()

	first, err := store.GetOrCreateStore(ctx, "Acme")
	if err != nil {
		t.Fatalf("GetOrCreateStore failed: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated store id")
	}

	second, err := store.GetOrCreateStore(ctx, "Acme")
	if err != nil {
		t.Fatalf("second GetOrCreateStore failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("store id changed: %q vs %q", first.ID, second.ID)
	}
}

func TestGetOrCreateStoreRejectsEmptyName(t *testing.T) {
	store := testsupport.MustOpenPricing(t, testsupport.NewConfig(t))
	if _, err := store.GetOrCreateStore(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty store name")
	}
}

func TestUpsertPricingOverwritesOnConflict(t *testing.T) {
	store := testsupport.MustOpenPricing(t, testsupport.NewConfig(t))
	ctx := context.Background()

	acme, err := store.GetOrCreateStore(ctx, "Acme")
	if err != nil {
		t.Fatalf("GetOrCreateStore failed: %v", err)
	}

	row := pricing.PricingRow{
		SpecID: "S1", SpecTable: "CPUSpecifications", StoreID: acme.ID,
		Price: 500, InStock: true, URL: "https://acme.test/x100",
	}
	if err := store.UpsertPricing(ctx, row); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	row.Price = 450
	row.URL = "https://acme.test/x100-offer"
	if err := store.UpsertPricing(ctx, row); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, err := store.GetPricing(ctx, "S1", "CPUSpecifications", acme.ID)
	if err != nil {
		t.Fatalf("GetPricing failed: %v", err)
	}
	if got == nil || got.Price != 450 || got.URL != "https://acme.test/x100-offer" || !got.InStock {
		t.Fatalf("unexpected row after upsert: %#v", got)
	}
}

func TestInsertHistoryAppends(t *testing.T) {
	store := testsupport.MustOpenPricing(t, testsupport.NewConfig(t))
	ctx := context.Background()

	acme, err := store.GetOrCreateStore(ctx, "Acme")
	if err != nil {
		t.Fatalf("GetOrCreateStore failed: %v", err)
	}

	for _, price := range []int64{500, 500, 450} {
		entry := pricing.HistoryEntry{SpecID: "S1", SpecTable: "CPUSpecifications", StoreID: acme.ID, Price: price}
		if err := store.InsertHistory(ctx, entry); err != nil {
			t.Fatalf("InsertHistory failed: %v", err)
		}
	}

	count, err := store.HistoryCount(ctx, "S1", "CPUSpecifications", acme.ID)
	if err != nil {
		t.Fatalf("HistoryCount failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("history count = %d, want 3 (no dedup)", count)
	}
}

func TestStockClosure(t *testing.T) {
	store := testsupport.MustOpenPricing(t, testsupport.NewConfig(t))
	ctx := context.Background()

	acme, err := store.GetOrCreateStore(ctx, "Acme")
	if err != nil {
		t.Fatalf("GetOrCreateStore failed: %v", err)
	}

	for _, specID := range []string{"S1", "S2", "S3"} {
		row := pricing.PricingRow{SpecID: specID, SpecTable: "CPUSpecifications", StoreID: acme.ID, Price: 100, InStock: true}
		if err := store.UpsertPricing(ctx, row); err != nil {
			t.Fatalf("upsert %s failed: %v", specID, err)
		}
	}

	if err := store.MarkOutOfStock(ctx, acme.ID, []string{"S2", "S3"}, time.Now().UTC()); err != nil {
		t.Fatalf("MarkOutOfStock failed: %v", err)
	}

	active, err := store.ActiveSpecIDs(ctx, acme.ID)
	if err != nil {
		t.Fatalf("ActiveSpecIDs failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active set = %v, want only S1", active)
	}
	if _, ok := active["S1"]; !ok {
		t.Fatalf("S1 missing from active set %v", active)
	}

	// Rows survive; only the flag flips.
	row, err := store.GetPricing(ctx, "S2", "CPUSpecifications", acme.ID)
	if err != nil {
		t.Fatalf("GetPricing failed: %v", err)
	}
	if row == nil || row.InStock {
		t.Fatalf("S2 should exist out of stock, got %#v", row)
	}
}

func TestTouchStoreAndList(t *testing.T) {
	store := testsupport.MustOpenPricing(t, testsupport.NewConfig(t))
	ctx := context.Background()

	acme, err := store.GetOrCreateStore(ctx, "Acme")
	if err != nil {
		t.Fatalf("GetOrCreateStore failed: %v", err)
	}
	if _, err := store.GetOrCreateStore(ctx, "Globex"); err != nil {
		t.Fatalf("GetOrCreateStore failed: %v", err)
	}

	stamp := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
	if err := store.TouchStore(ctx, acme.ID, stamp); err != nil {
		t.Fatalf("TouchStore failed: %v", err)
	}

	records, err := store.ListStores(ctx)
	if err != nil {
		t.Fatalf("ListStores failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(records))
	}
	if records[0].Name != "Acme" || records[1].Name != "Globex" {
		t.Fatalf("unexpected order: %v", records)
	}
	if !records[0].LastScrapedAt.Equal(stamp) {
		t.Fatalf("last scraped = %v, want %v", records[0].LastScrapedAt, stamp)
	}
	if !records[1].LastScrapedAt.IsZero() {
		t.Fatalf("untouched store should have zero timestamp, got %v", records[1].LastScrapedAt)
	}
}
