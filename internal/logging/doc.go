// Package logging builds the slog loggers used across pricewatch.
//
// It offers console and JSON handlers selected by config, optional teeing
// into a log file under the configured log directory, and small attr helpers
// so components emit consistently keyed fields.
package logging
