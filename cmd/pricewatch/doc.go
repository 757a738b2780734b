// Command pricewatch is the batch price reconciliation CLI. It matches
// scraped store snapshots against the specification catalog, maintains
// current pricing and price history, and backfills missing product images.
package main
