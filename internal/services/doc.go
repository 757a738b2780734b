// Package services defines the shared error taxonomy for pricewatch
// components. Sentinel markers classify failures so the reconciliation loop
// can decide between log-and-continue and aborting the run.
package services
