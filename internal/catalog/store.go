package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"pricewatch/internal/config"
)

// SpecRef identifies a specification record: its opaque id and the
// category table it lives in.
type SpecRef struct {
	ID    string
	Table string
}

// Store manages the specification catalog backed by SQLite. Records are
// seeded by the external catalog pipeline; the reconciliation engine only
// reads identity and writes image URLs.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database and ensures every
// specification table the category mapping can reach exists.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.CatalogDBPath())
}

// OpenPath opens the catalog database at an explicit location.
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
	if err := store.createTables(context.Background()); err != nil {
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

// Path returns the on-disk location of the catalog database.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) createTables(ctx context.Context) error {
	for _, table := range KnownTables() {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
            Id TEXT PRIMARY KEY,
            MetaPartNumber TEXT NOT NULL,
            ImageUrl TEXT
        )`, table)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
	}
	return nil
}

var errUnknownTable = errors.New("unknown specification table")

// quoteTable validates a table name against the mapping before it is
// interpolated into SQL. Table names never come from scraper input, but the
// guard keeps a typo from turning into an injection path.
func quoteTable(table string) (string, error) {
	for _, known := range KnownTables() {
		if known == table {
			return fmt.Sprintf("%q", table), nil
		}
	}
	return "", fmt.Errorf("%w: %s", errUnknownTable, table)
}

// likePattern builds a substring LIKE pattern with SQL wildcards in the
// candidate escaped, so part numbers containing % or _ match literally.
func likePattern(candidate string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(candidate)
	return "%" + escaped + "%"
}

// FindSpec resolves part-number candidates against the provided tables in
// order: first table, first candidate, first hit wins. Lookup failures for a
// single (table, candidate) pair count as a miss for that pair and matching
// continues. A nil result with a nil error means no match.
func (s *Store) FindSpec(ctx context.Context, tables []string, candidates []string) (*SpecRef, error) {
	if len(tables) == 0 || len(candidates) == 0 {
		return nil, nil
	}
	for _, table := range tables {
		quoted, err := quoteTable(table)
		if err != nil {
			continue
		}
		for _, candidate := range candidates {
			if strings.TrimSpace(candidate) == "" {
				continue
			}
			var id string
			query := `SELECT Id FROM ` + quoted + ` WHERE MetaPartNumber LIKE ? ESCAPE '\' LIMIT 1`
			err := s.db.QueryRowContext(ctx, query, likePattern(candidate)).Scan(&id)
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			if err != nil {
				// Lookup failure is a miss for this candidate, not fatal.
				continue
			}
			return &SpecRef{ID: id, Table: table}, nil
		}
	}
	return nil, nil
}

// ImageURL reads the stored image URL for a specification record. The second
// return value reports whether the record exists.
func (s *Store) ImageURL(ctx context.Context, table, id string) (string, bool, error) {
	quoted, err := quoteTable(table)
	if err != nil {
		return "", false, err
	}
	var url sql.NullString
	query := `SELECT ImageUrl FROM ` + quoted + ` WHERE Id = ? LIMIT 1`
	err = s.db.QueryRowContext(ctx, query, id).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read image url: %w", err)
	}
	return url.String, true, nil
}

// SetImageURLIfAbsent writes the image URL only when the record has none.
// It reports whether the write took effect, so a concurrent or repeated
// backfill cannot overwrite an existing image.
func (s *Store) SetImageURLIfAbsent(ctx context.Context, table, id, url string) (bool, error) {
	quoted, err := quoteTable(table)
	if err != nil {
		return false, err
	}
	stmt := `UPDATE ` + quoted + ` SET ImageUrl = ? WHERE Id = ? AND (ImageUrl IS NULL OR ImageUrl = '')`
	res, err := s.db.ExecContext(ctx, stmt, url, id)
	if err != nil {
		return false, fmt.Errorf("set image url: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set image url: %w", err)
	}
	return affected > 0, nil
}

// InsertSpec seeds a specification record. Used by the catalog loader and by
// tests; the reconciliation engine never creates identity.
func (s *Store) InsertSpec(ctx context.Context, table, id, partNumber string) error {
	quoted, err := quoteTable(table)
	if err != nil {
		return err
	}
	stmt := `INSERT INTO ` + quoted + ` (Id, MetaPartNumber) VALUES (?, ?)`
	if _, err := s.db.ExecContext(ctx, stmt, id, partNumber); err != nil {
		return fmt.Errorf("insert spec: %w", err)
	}
	return nil
}
