// Package reconcile orchestrates one batch reconciliation cycle. It folds
// raw store snapshots into deduplicated minimum-price winners per canonical
// product, persists current pricing and append-only history, infers
// out-of-stock products from absence, and hands matched records to the image
// backfill pipeline.
package reconcile
