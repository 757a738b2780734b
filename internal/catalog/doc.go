// Package catalog resolves raw scraper records to canonical specification
// records.
//
// A static mapping fans each scraper category out to one or more
// category-partitioned specification tables, and FindSpec walks tables and
// part-number candidates in order, returning the first case-insensitive
// substring hit. The package owns the catalog SQLite database but treats it
// as externally seeded: reconciliation reads identity and backfills image
// URLs, nothing more.
package catalog
