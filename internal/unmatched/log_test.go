package unmatched

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResetWritesHeader(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "unmatched_log.txt"))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := log.Reset(now); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	content, err := log.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if content != "--- Unmatched report: 2026-03-01T12:00:00Z ---\n" {
		t.Fatalf("unexpected header: %q", content)
	}
}

func TestResetTruncatesPreviousRun(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "unmatched_log.txt"))
	if err := log.Reset(time.Now()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if err := log.Append([]string{Entry("a.json", "https://x", "CPU", "X1")}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := log.Reset(time.Now()); err != nil {
		t.Fatalf("second Reset failed: %v", err)
	}

	content, err := log.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if strings.Contains(content, "a.json") {
		t.Fatalf("previous run entries survived reset: %q", content)
	}
}

func TestAppendBatch(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "unmatched_log.txt"))
	if err := log.Reset(time.Now()); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	entries := []string{
		Entry("acme.json", "https://acme.test/1", "CPU", "X1"),
		Entry("acme.json", "https://acme.test/2", "Mouse_Keyboard", "['K1', 'K2']"),
	}
	if err := log.Append(entries); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	content, err := log.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !strings.Contains(content, "[acme.json] https://acme.test/1 | TYPE: CPU | PN: X1") {
		t.Fatalf("missing first entry: %q", content)
	}
	if !strings.Contains(content, "| TYPE: Mouse_Keyboard | PN: ['K1', 'K2']") {
		t.Fatalf("missing second entry: %q", content)
	}
}

func TestNilLogIsNoop(t *testing.T) {
	var log *Log
	if err := log.Reset(time.Now()); err != nil {
		t.Fatalf("nil Reset: %v", err)
	}
	if err := log.Append([]string{"x"}); err != nil {
		t.Fatalf("nil Append: %v", err)
	}
	if content, err := log.Read(); err != nil || content != "" {
		t.Fatalf("nil Read = %q, %v", content, err)
	}
}
