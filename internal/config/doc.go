// Package config loads, normalizes, and validates pricewatch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for object
// storage credentials. The Config type centralizes every knob the CLI and the
// reconciliation engine need: the snapshot input tree, database locations,
// image pipeline settings, and object storage coordinates.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
