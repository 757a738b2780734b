package pricing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"pricewatch/internal/config"
)

// Store manages pricing persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the pricing database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.PricingDBPath())
}

// OpenPath opens the pricing database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location of the pricing database.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// GetOrCreateStore resolves a store row by name, creating it on first
// sighting. The operation is idempotent.
func (s *Store) GetOrCreateStore(ctx context.Context, name string) (*StoreRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("store name is empty")
	}

	record, err := s.findStore(ctx, name)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `INSERT INTO Stores (Id, Name) VALUES (?, ?) ON CONFLICT (Name) DO NOTHING`, id, name)
	if err != nil {
		return nil, fmt.Errorf("insert store: %w", err)
	}

	// Re-read so a concurrent insert still yields the winning row.
	record, err = s.findStore(ctx, name)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("store %q not found after insert", name)
	}
	return record, nil
}

func (s *Store) findStore(ctx context.Context, name string) (*StoreRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT Id, Name, LastScrapedAt FROM Stores WHERE Name = ?`, name)
	var record StoreRecord
	var scrapedAt sql.NullString
	err := row.Scan(&record.ID, &record.Name, &scrapedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find store: %w", err)
	}
	if scrapedAt.Valid {
		if ts, parseErr := time.Parse(time.RFC3339Nano, scrapedAt.String); parseErr == nil {
			record.LastScrapedAt = ts
		}
	}
	return &record, nil
}

// UpsertPricing writes the current-state pricing row for one product,
// inserting or updating on the (SpecId, SpecTableName, StoreId) key.
func (s *Store) UpsertPricing(ctx context.Context, row PricingRow) error {
	if row.LastUpdated.IsZero() {
		row.LastUpdated = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO ProductPricing (SpecId, SpecTableName, StoreId, Price, StockStatus, Url, LastUpdated)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (SpecId, SpecTableName, StoreId) DO UPDATE SET
            Price = excluded.Price,
            StockStatus = excluded.StockStatus,
            Url = excluded.Url,
            LastUpdated = excluded.LastUpdated`,
		row.SpecID, row.SpecTable, row.StoreID, row.Price, boolToInt(row.InStock), nullableString(row.URL),
		row.LastUpdated.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert pricing: %w", err)
	}
	return nil
}

// GetPricing fetches the current-state row for one product at one store.
func (s *Store) GetPricing(ctx context.Context, specID, specTable, storeID string) (*PricingRow, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT SpecId, SpecTableName, StoreId, Price, StockStatus, Url, LastUpdated
        FROM ProductPricing
        WHERE SpecId = ? AND SpecTableName = ? AND StoreId = ?`,
		specID, specTable, storeID,
	)
	var result PricingRow
	var stock int
	var url sql.NullString
	var updated string
	err := row.Scan(&result.SpecID, &result.SpecTable, &result.StoreID, &result.Price, &stock, &url, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pricing: %w", err)
	}
	result.InStock = stock != 0
	result.URL = url.String
	if ts, parseErr := time.Parse(time.RFC3339Nano, updated); parseErr == nil {
		result.LastUpdated = ts
	}
	return &result, nil
}

// InsertHistory appends one immutable price observation. History is never
// deduplicated against prior entries.
func (s *Store) InsertHistory(ctx context.Context, entry HistoryEntry) error {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO PriceHistory (SpecId, SpecTableName, StoreId, Price, RecordedAt)
        VALUES (?, ?, ?, ?, ?)`,
		entry.SpecID, entry.SpecTable, entry.StoreID, entry.Price,
		entry.RecordedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// HistoryCount returns the number of history entries for one product at one
// store.
func (s *Store) HistoryCount(ctx context.Context, specID, specTable, storeID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1) FROM PriceHistory
        WHERE SpecId = ? AND SpecTableName = ? AND StoreId = ?`,
		specID, specTable, storeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}

// ActiveSpecIDs returns the spec ids currently marked in stock for a store.
func (s *Store) ActiveSpecIDs(ctx context.Context, storeID string) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT SpecId FROM ProductPricing WHERE StoreId = ? AND StockStatus = 1`, storeID)
	if err != nil {
		return nil, fmt.Errorf("query active spec ids: %w", err)
	}
	defer rows.Close()

	active := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan active spec id: %w", err)
		}
		active[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate active spec ids: %w", err)
	}
	return active, nil
}

// MarkOutOfStock flips the stock flag for the provided spec ids at one store
// and refreshes their timestamps.
func (s *Store) MarkOutOfStock(ctx context.Context, storeID string, specIDs []string, now time.Time) error {
	if len(specIDs) == 0 {
		return nil
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	stamp := now.Format(time.RFC3339Nano)
	for _, specID := range specIDs {
		_, err := s.db.ExecContext(ctx, `
            UPDATE ProductPricing SET StockStatus = 0, LastUpdated = ?
            WHERE SpecId = ? AND StoreId = ?`,
			stamp, specID, storeID,
		)
		if err != nil {
			return fmt.Errorf("mark out of stock %s: %w", specID, err)
		}
	}
	return nil
}

// TouchStore updates the store's last-scraped timestamp.
func (s *Store) TouchStore(ctx context.Context, storeID string, now time.Time) error {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `UPDATE Stores SET LastScrapedAt = ? WHERE Id = ?`,
		now.Format(time.RFC3339Nano), storeID)
	if err != nil {
		return fmt.Errorf("touch store: %w", err)
	}
	return nil
}

// ListStores returns all known stores ordered by name.
func (s *Store) ListStores(ctx context.Context) ([]StoreRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT Id, Name, LastScrapedAt FROM Stores ORDER BY Name`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var records []StoreRecord
	for rows.Next() {
		var record StoreRecord
		var scrapedAt sql.NullString
		if err := rows.Scan(&record.ID, &record.Name, &scrapedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		if scrapedAt.Valid {
			if ts, parseErr := time.Parse(time.RFC3339Nano, scrapedAt.String); parseErr == nil {
				record.LastScrapedAt = ts
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}
	return records, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullableString(v string) any {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return v
}
