// Package storage persists movie records in SQLite. Saves are
// idempotent: a release is keyed by (catalog, name) and its variant set
// merges across saves instead of duplicating.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/moviestream/tamilblasters-indexer/schema"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS movies (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    catalog    TEXT NOT NULL,
    name       TEXT NOT NULL,
    poster     TEXT NOT NULL,
    created_at TEXT NOT NULL,
    indexed_at TEXT NOT NULL,
    UNIQUE (catalog, name)
);

CREATE TABLE IF NOT EXISTS video_qualities (
    movie_id  INTEGER NOT NULL REFERENCES movies (id) ON DELETE CASCADE,
    quality   TEXT NOT NULL,
    info_hash TEXT NOT NULL,
    PRIMARY KEY (movie_id, quality)
);
`

// Store manages movie persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
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

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Init verifies the store is reachable. Safe to call repeatedly.
func (s *Store) Init(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Save upserts a movie. Saving the same (catalog, name) again is a
// no-op for overlapping variants; new variants merge into the existing
// set. Poster and created_at take the latest save's values.
func (s *Store) Save(ctx context.Context, movie schema.Movie) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	var movieID int64
	err = tx.QueryRowContext(
		ctx,
		`INSERT INTO movies (catalog, name, poster, created_at, indexed_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT (catalog, name) DO UPDATE SET
             poster = excluded.poster,
             created_at = excluded.created_at
         RETURNING id`,
		movie.Catalog, movie.Name, movie.Poster, movie.CreatedAt, now,
	).Scan(&movieID)
	if err != nil {
		return fmt.Errorf("upsert movie %q: %w", movie.Name, err)
	}

	for quality, infoHash := range movie.VideoQualities {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO video_qualities (movie_id, quality, info_hash)
             VALUES (?, ?, ?)
             ON CONFLICT (movie_id, quality) DO UPDATE SET
                 info_hash = excluded.info_hash`,
			movieID, quality, infoHash,
		)
		if err != nil {
			return fmt.Errorf("upsert variant %q of %q: %w", quality, movie.Name, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of stored movies.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n)
	return n, err
}

// List returns every stored movie with its variant map.
func (s *Store) List(ctx context.Context) ([]schema.Movie, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, catalog, name, poster, created_at FROM movies ORDER BY catalog, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []schema.Movie
	var ids []int64
	for rows.Next() {
		var id int64
		var m schema.Movie
		if err := rows.Scan(&id, &m.Catalog, &m.Name, &m.Poster, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		m.VideoQualities = map[string]string{}
		movies = append(movies, m)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		if err := s.loadVariants(ctx, id, movies[i].VideoQualities); err != nil {
			return nil, err
		}
	}
	return movies, nil
}

func (s *Store) loadVariants(ctx context.Context, movieID int64, into map[string]string) error {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT quality, info_hash FROM video_qualities WHERE movie_id = ?`,
		movieID,
	)
	if err != nil {
		return fmt.Errorf("load variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var quality, infoHash string
		if err := rows.Scan(&quality, &infoHash); err != nil {
			return fmt.Errorf("scan variant: %w", err)
		}
		into[quality] = infoHash
	}
	return rows.Err()
}
