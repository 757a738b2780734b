// Package pricing persists store pricing state in SQLite: the lazily created
// Stores table, the mutable current-state ProductPricing table keyed by
// (spec, table, store), and the append-only PriceHistory table.
//
// Rows in ProductPricing are never deleted; a product that disappears from a
// store's snapshot only has its stock flag flipped. Schema changes bump the
// version in schema.go.
package pricing
