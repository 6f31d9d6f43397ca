package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// SQLiteConfig holds the parameters for opening the catalog database.
type SQLiteConfig struct {
	// Path is the database file; it is created when missing.
	Path string
	// PoolSize defaults to 4.
	PoolSize int
	Logger   zerolog.Logger
}

// DB is a pool of SQLite connections with the catalog schema applied.
// Safe for concurrent use; each query takes its own connection.
type DB struct {
	pool   *sqlitex.Pool
	path   string
	logger zerolog.Logger
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS venues (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	address  TEXT NOT NULL,
	country  TEXT NOT NULL,
	zip_code TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS genres (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	icon       TEXT,
	is_deleted INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS events (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	image_url   TEXT,
	description TEXT,
	datetime    INTEGER NOT NULL,
	is_deleted  INTEGER,
	venue_id    TEXT NOT NULL REFERENCES venues(id)
);

CREATE TABLE IF NOT EXISTS events_to_genres (
	event_id TEXT NOT NULL REFERENCES events(id),
	genre_id TEXT NOT NULL REFERENCES genres(id),
	PRIMARY KEY (event_id, genre_id)
);

CREATE INDEX IF NOT EXISTS idx_events_datetime ON events(datetime);
CREATE INDEX IF NOT EXISTS idx_events_venue ON events(venue_id);
CREATE INDEX IF NOT EXISTS idx_events_to_genres_genre ON events_to_genres(genre_id);
`

// OpenSQLite opens the connection pool. Connections are prepared lazily on
// first use. The caller must call Close.
func OpenSQLite(cfg SQLiteConfig) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: Path is required")
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 4
	}

	pool, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening %s: %w", cfg.Path, err)
	}

	cfg.Logger.Info().Str("path", cfg.Path).Int("pool_size", poolSize).Msg("sqlite pool opened")
	return &DB{pool: pool, path: cfg.Path, logger: cfg.Logger}, nil
}

func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return fmt.Errorf("sqlite: %s: %w", pragma, err)
		}
	}
	if err := sqlitex.ExecuteScript(conn, catalogSchema, nil); err != nil {
		return fmt.Errorf("sqlite: applying schema: %w", err)
	}
	return nil
}

// withConn borrows a connection for the duration of fn.
func (db *DB) withConn(ctx context.Context, fn func(conn *sqlite.Conn) error) error {
	conn, err := db.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("sqlite: take: %w", err)
	}
	defer db.pool.Put(conn)
	return fn(conn)
}

func (db *DB) Close() error {
	if err := db.pool.Close(); err != nil {
		db.logger.Error().Err(err).Str("path", db.path).Msg("sqlite pool close error")
		return fmt.Errorf("sqlite: closing %s: %w", db.path, err)
	}
	db.logger.Info().Str("path", db.path).Msg("sqlite pool closed")
	return nil
}

func nullableText(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	if *b {
		return int64(1)
	}
	return int64(0)
}

func columnNullableText(stmt *sqlite.Stmt, col int) *string {
	if stmt.ColumnType(col) == sqlite.TypeNull {
		return nil
	}
	s := stmt.ColumnText(col)
	return &s
}

func columnNullableBool(stmt *sqlite.Stmt, col int) *bool {
	if stmt.ColumnType(col) == sqlite.TypeNull {
		return nil
	}
	b := stmt.ColumnInt64(col) != 0
	return &b
}
