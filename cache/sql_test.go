package cache

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaguanLabs/lexbridge"
)

var entryColumns = []string{
	"cache_key", "original_text", "translated_text", "source_language", "target_language",
	"confidence", "method", "created_at", "last_accessed_at", "access_count",
}

func TestSQLStore_Load(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	accessed := created.Add(time.Hour)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantLen   int
		wantErr   error
		errText   string
	}{
		{
			name: "returns all rows",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(entryColumns).
					AddRow("english:swahili:hello", "hello", "hujambo", "english", "swahili", 0.95, "exact_dictionary",
						created.UnixMilli(), accessed.UnixMilli(), 3).
					AddRow("english:swahili:xyzzy", "xyzzy", "xyzzy", "english", "swahili", 0.3, "unresolved",
						created.UnixMilli(), created.UnixMilli(), 1)
				mock.ExpectQuery("FROM cache_entries ORDER BY cache_key").WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name: "empty table",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM cache_entries ORDER BY cache_key").
					WillReturnRows(sqlmock.NewRows(entryColumns))
			},
			wantErr: ErrNotFound,
		},
		{
			name: "unknown method",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(entryColumns).
					AddRow("k", "a", "b", "english", "swahili", 0.5, "guess", 0, 0, 1)
				mock.ExpectQuery("FROM cache_entries ORDER BY cache_key").WillReturnRows(rows)
			},
			errText: "unknown resolution method",
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM cache_entries ORDER BY cache_key").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			errText: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			store := NewSQLStore(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := store.Load(t.Context())
			switch {
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			case tt.errText != "":
				assert.ErrorContains(t, err, tt.errText)
				return
			}
			require.NoError(t, err)
			require.Len(t, got.Entries, tt.wantLen)

			assert.Equal(t, SnapshotVersion, got.Version)
			assert.True(t, got.Timestamp.Equal(accessed))

			first := got.Entries[0]
			assert.Equal(t, "english:swahili:hello", first.Key)
			assert.Equal(t, first.Key, first.Entry.Key)
			assert.Equal(t, "hujambo", first.Entry.TranslatedText)
			assert.Equal(t, lexbridge.MethodExactDictionary, first.Entry.Method)
			assert.Equal(t, 3, first.Entry.AccessCount)
			assert.True(t, first.Entry.LastAccessedAt.Equal(accessed))

			assert.Equal(t, lexbridge.MethodUnresolved, got.Entries[1].Entry.Method)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLStore_Save(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := &Snapshot{
		Version: SnapshotVersion,
		Entries: []SnapshotEntry{{
			Key: "english:zulu:yes",
			Entry: Entry{
				OriginalText:   "yes",
				TranslatedText: "yebo",
				SourceLanguage: "english",
				TargetLanguage: "zulu",
				Confidence:     0.95,
				Method:         lexbridge.MethodExactDictionary,
				CreatedAt:      created,
				LastAccessedAt: created,
				AccessCount:    2,
			},
		}},
	}

	t.Run("replaces rows in a transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM cache_entries").WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec("INSERT INTO cache_entries").
			WithArgs(keyHash("english:zulu:yes"), "english:zulu:yes", "yes", "yebo", "english", "zulu", 0.95, "exact_dictionary",
				created.UnixMilli(), created.UnixMilli(), int64(2)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		store := NewSQLStore(sqlx.NewDb(db, "mysql"))
		require.NoError(t, store.Save(t.Context(), snap))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on insert failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM cache_entries").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO cache_entries").WillReturnError(fmt.Errorf("disk full"))
		mock.ExpectRollback()

		store := NewSQLStore(sqlx.NewDb(db, "mysql"))
		err = store.Save(t.Context(), snap)
		assert.ErrorContains(t, err, "disk full")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLStore_ClearAndMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS cache_entries").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM cache_entries").WillReturnResult(sqlmock.NewResult(0, 3))

	store := NewSQLStore(sqlx.NewDb(db, "mysql"))
	require.NoError(t, store.Migrate(t.Context()))
	require.NoError(t, store.Clear(t.Context()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(MySQLConfig{
		Host:     "db.example.com",
		Port:     3307,
		Database: "lexbridge",
		Username: "app",
		Password: "secret",
		TLS:      true,
	})

	assert.Contains(t, dsn, "app:secret@tcp(db.example.com:3307)/lexbridge")
	assert.Contains(t, dsn, "tls=true")
	assert.Contains(t, dsn, "timeout=5s")
}

func TestSQLStore_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := OpenSQLStore(t.Context(), DriverSQLite, path)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load(t.Context())
	assert.ErrorIs(t, err, ErrNotFound)

	clock := newTestClock()
	c := Open(t.Context(), 10, store, WithClock(clock.Now))
	c.Put("english", "swahili", "water", result("maji", 0.95, lexbridge.MethodExactDictionary))
	c.Put("twi", "yoruba", "akwaaba", result("kaabo", 0.95, lexbridge.MethodExactDictionary))
	require.NoError(t, c.Close())

	reopened := Open(t.Context(), 10, store)
	defer reopened.Close()
	assert.Equal(t, 2, reopened.Len())

	e, ok := reopened.Get("twi", "yoruba", "akwaaba")
	require.True(t, ok)
	assert.Equal(t, "kaabo", e.TranslatedText)
	assert.True(t, e.CreatedAt.Equal(clock.Now()))
}

func TestKeyHash(t *testing.T) {
	got := keyHash("english:zulu:yes")
	assert.Len(t, got, 64)
	assert.Equal(t, got, keyHash("english:zulu:yes"))
	assert.NotEqual(t, got, keyHash("english:zulu:no"))
}

func TestSQLStore_SQLiteLongPhrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := OpenSQLStore(t.Context(), DriverSQLite, path)
	require.NoError(t, err)
	defer store.Close()

	long := strings.Repeat("habari ", 300)
	c := Open(t.Context(), 10, store)
	c.Put("english", "swahili", long, result("news", 0.8, lexbridge.MethodWordByWord))
	c.Put("english", "swahili", "water", result("maji", 0.95, lexbridge.MethodExactDictionary))
	require.NoError(t, c.Close())

	reopened := Open(t.Context(), 10, store)
	defer reopened.Close()
	assert.Equal(t, 2, reopened.Len())

	e, ok := reopened.Get("english", "swahili", long)
	require.True(t, ok)
	assert.Equal(t, "news", e.TranslatedText)
	assert.Greater(t, len(e.Key), 512)
}
