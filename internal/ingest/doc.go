// Package ingest reads raw per-store snapshot files produced by the scrapers
// and normalizes their loosely typed fields into RawObservation values
// grouped by store.
package ingest
