package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pricewatch/internal/logging"
	"pricewatch/internal/services"
)

// LoadBatches recursively walks the snapshot tree, parses every JSON file,
// tags records with their source filename, and groups them by store name.
// Malformed files are logged and skipped; an unreadable root directory is
// fatal. Record order within a store follows traversal order.
func LoadBatches(root string, logger *slog.Logger) (map[string][]RawObservation, error) {
	log := logging.NewComponentLogger(logger, "ingest")

	info, err := os.Stat(root)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "ingest", "read input directory", root, err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrConfiguration, "ingest", "read input directory", fmt.Sprintf("%s is not a directory", root), nil)
	}

	batches := make(map[string][]RawObservation)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Warn("skipping unreadable path", logging.String("path", path), logging.Error(err))
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("skipping unreadable snapshot", logging.String(logging.FieldSource, d.Name()), logging.Error(err))
			return nil
		}
		records, err := parseSnapshot(data)
		if err != nil {
			log.Warn("skipping malformed snapshot", logging.String(logging.FieldSource, d.Name()), logging.Error(err))
			return nil
		}
		for _, record := range records {
			name := strings.TrimSpace(record.StoreName)
			if name == "" {
				continue
			}
			record.SourceFile = d.Name()
			batches[name] = append(batches[name], record)
		}
		return nil
	})
	if walkErr != nil {
		return nil, services.Wrap(services.ErrConfiguration, "ingest", "walk input directory", root, walkErr)
	}
	return batches, nil
}

// parseSnapshot accepts either a single observation object or an array of
// them, which is how the scrapers write their output.
func parseSnapshot(data []byte) ([]RawObservation, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var records []RawObservation
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}
	var record RawObservation
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, err
	}
	return []RawObservation{record}, nil
}
