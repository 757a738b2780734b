// Package testsupport provides shared helpers for pricewatch tests: per-test
// configs rooted in temp directories, store openers with cleanup, and catalog
// seeding.
package testsupport
