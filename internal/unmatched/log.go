// Package unmatched maintains the append-only text artifact recording raw
// records that failed specification matching, for offline triage.
package unmatched

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Log writes unmatched-record lines to a text artifact. The artifact is
// truncated once per run and appended per store so a slow store cannot hold
// the file open for the whole run.
type Log struct {
	path string
}

// New returns a log bound to the provided path. An empty path disables the
// artifact; all methods become no-ops.
func New(path string) *Log {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil
	}
	return &Log{path: trimmed}
}

// Reset truncates the artifact and writes the run header timestamp.
func (l *Log) Reset(now time.Time) error {
	if l == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("ensure unmatched log dir: %w", err)
	}
	header := fmt.Sprintf("--- Unmatched report: %s ---\n", now.UTC().Format(time.RFC3339))
	if err := os.WriteFile(l.path, []byte(header), 0o644); err != nil {
		return fmt.Errorf("reset unmatched log: %w", err)
	}
	return nil
}

// Append writes the buffered entries for one store in a single open/write
// cycle. Entries are written one per line.
func (l *Log) Append(entries []string) error {
	if l == nil || len(entries) == 0 {
		return nil
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open unmatched log: %w", err)
	}
	defer file.Close()

	var b strings.Builder
	for _, entry := range entries {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	if _, err := file.WriteString(b.String()); err != nil {
		return fmt.Errorf("append unmatched log: %w", err)
	}
	return nil
}

// Read returns the current artifact contents.
func (l *Log) Read() (string, error) {
	if l == nil {
		return "", nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read unmatched log: %w", err)
	}
	return string(data), nil
}

// Path returns the artifact location, or empty when disabled.
func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Entry formats one unmatched record line.
func Entry(sourceFile, url, category, partNumber string) string {
	return fmt.Sprintf("[%s] %s | TYPE: %s | PN: %s", sourceFile, url, category, partNumber)
}
