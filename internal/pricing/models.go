package pricing

import "time"

// StoreRecord is one row in the Stores table. Rows are created lazily on the
// first sighting of a new store name.
type StoreRecord struct {
	ID            string
	Name          string
	LastScrapedAt time.Time
}

// PricingRow is the current-state pricing snapshot for one product at one
// store. Rows are upserted every run and never deleted; availability is
// tracked by flipping InStock.
type PricingRow struct {
	SpecID      string
	SpecTable   string
	StoreID     string
	Price       int64
	InStock     bool
	URL         string
	LastUpdated time.Time
}

// HistoryEntry is one immutable price observation. One entry is appended per
// canonical winner per run.
type HistoryEntry struct {
	SpecID     string
	SpecTable  string
	StoreID    string
	Price      int64
	RecordedAt time.Time
}
