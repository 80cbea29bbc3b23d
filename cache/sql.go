package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver

	"github.com/ZaguanLabs/lexbridge"
)

// Supported SQL drivers.
const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// The schema sticks to types both SQLite and MySQL accept. Timestamps are
// Unix milliseconds, matching the JSON snapshot format. Cache keys embed the
// phrase and have no length bound, so the primary key is their SHA-256.
const createCacheEntriesTable = `CREATE TABLE IF NOT EXISTS cache_entries (
	key_hash CHAR(64) NOT NULL PRIMARY KEY,
	cache_key TEXT NOT NULL,
	original_text TEXT NOT NULL,
	translated_text TEXT NOT NULL,
	source_language VARCHAR(64) NOT NULL,
	target_language VARCHAR(64) NOT NULL,
	confidence DOUBLE NOT NULL,
	method VARCHAR(32) NOT NULL,
	created_at BIGINT NOT NULL,
	last_accessed_at BIGINT NOT NULL,
	access_count INTEGER NOT NULL
)`

const selectCacheEntries = `SELECT cache_key, original_text, translated_text, source_language, target_language,
	confidence, method, created_at, last_accessed_at, access_count
	FROM cache_entries ORDER BY cache_key`

const insertCacheEntry = `INSERT INTO cache_entries (key_hash, cache_key, original_text, translated_text, source_language,
	target_language, confidence, method, created_at, last_accessed_at, access_count)
	VALUES (:key_hash, :cache_key, :original_text, :translated_text, :source_language,
	:target_language, :confidence, :method, :created_at, :last_accessed_at, :access_count)`

// entryRow is the database form of an Entry.
type entryRow struct {
	KeyHash        string  `db:"key_hash"`
	Key            string  `db:"cache_key"`
	OriginalText   string  `db:"original_text"`
	TranslatedText string  `db:"translated_text"`
	SourceLanguage string  `db:"source_language"`
	TargetLanguage string  `db:"target_language"`
	Confidence     float64 `db:"confidence"`
	Method         string  `db:"method"`
	CreatedAt      int64   `db:"created_at"`
	LastAccessedAt int64   `db:"last_accessed_at"`
	AccessCount    int     `db:"access_count"`
}

func rowFromEntry(key string, e Entry) entryRow {
	return entryRow{
		KeyHash:        keyHash(key),
		Key:            key,
		OriginalText:   e.OriginalText,
		TranslatedText: e.TranslatedText,
		SourceLanguage: e.SourceLanguage,
		TargetLanguage: e.TargetLanguage,
		Confidence:     e.Confidence,
		Method:         e.Method.String(),
		CreatedAt:      toMillis(e.CreatedAt),
		LastAccessedAt: toMillis(e.LastAccessedAt),
		AccessCount:    e.AccessCount,
	}
}

func keyHash(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func (r entryRow) entry() (Entry, error) {
	m, err := lexbridge.ParseMethod(r.Method)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Key:            r.Key,
		OriginalText:   r.OriginalText,
		TranslatedText: r.TranslatedText,
		SourceLanguage: r.SourceLanguage,
		TargetLanguage: r.TargetLanguage,
		Confidence:     r.Confidence,
		Method:         m,
		CreatedAt:      fromMillis(r.CreatedAt),
		LastAccessedAt: fromMillis(r.LastAccessedAt),
		AccessCount:    r.AccessCount,
	}, nil
}

// SQLStore persists the cache one row per entry in a cache_entries table.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open database. Call Migrate before first use.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// OpenSQLStore opens the database, creates the table if needed and returns
// the store.
func OpenSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(%s) > %w", driver, err)
	}
	if driver == DriverSQLite {
		// SQLite allows one writer at a time.
		db.SetMaxOpenConns(1)
	}

	s := NewSQLStore(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// MySQLConfig holds MySQL connection settings.
type MySQLConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	TLS      bool
}

// MySQLDSN builds a DSN for OpenSQLStore.
func MySQLDSN(cfg MySQLConfig) string {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.Timeout = 5 * time.Second
	if cfg.TLS {
		mysqlCfg.TLSConfig = "true"
	}
	return mysqlCfg.FormatDSN()
}

// Migrate creates the cache_entries table if it does not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createCacheEntriesTable); err != nil {
		return fmt.Errorf("db.ExecContext(create cache_entries) > %w", err)
	}
	return nil
}

// Load implements Store. An empty table is reported as ErrNotFound.
func (s *SQLStore) Load(ctx context.Context) (*Snapshot, error) {
	var rows []entryRow
	if err := s.db.SelectContext(ctx, &rows, selectCacheEntries); err != nil {
		return nil, fmt.Errorf("db.SelectContext(cache_entries) > %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	snap := &Snapshot{
		Version: SnapshotVersion,
		Entries: make([]SnapshotEntry, 0, len(rows)),
	}
	for _, r := range rows {
		e, err := r.entry()
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", r.Key, err)
		}
		if e.LastAccessedAt.After(snap.Timestamp) {
			snap.Timestamp = e.LastAccessedAt
		}
		snap.Entries = append(snap.Entries, SnapshotEntry{Key: r.Key, Entry: e})
	}
	return snap, nil
}

// Save implements Store by replacing every row in one transaction.
func (s *SQLStore) Save(ctx context.Context, snap *Snapshot) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cache_entries"); err != nil {
		return fmt.Errorf("tx.ExecContext(delete cache_entries) > %w", err)
	}

	for _, se := range snap.Entries {
		if _, err := tx.NamedExecContext(ctx, insertCacheEntry, rowFromEntry(se.Key, se.Entry)); err != nil {
			return fmt.Errorf("tx.NamedExecContext(insert cache_entry) > %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *SQLStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM cache_entries"); err != nil {
		return fmt.Errorf("db.ExecContext(delete cache_entries) > %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLStore)(nil)
