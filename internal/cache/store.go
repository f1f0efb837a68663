// Package cache remembers detected dialects so that unchanged files are not
// sniffed again.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/csvcode/internal/dialect"
	"github.com/zeebo/xxh3"

	// sqlite driver for the cache database.
	_ "modernc.org/sqlite"
)

// Fingerprint identifies one detection: the file content and the options
// that influence the result.
type Fingerprint struct {
	Path     string
	Size     int64
	Hash     uint64
	NumChars int
	Encoding string
}

// NewFingerprint hashes the file at path.
func NewFingerprint(path string, numChars int, encoding string) (Fingerprint, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := xxh3.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return Fingerprint{
		Path:     abs,
		Size:     size,
		Hash:     h.Sum64(),
		NumChars: numChars,
		Encoding: encoding,
	}, nil
}

func (fp Fingerprint) hashHex() string {
	return strconv.FormatUint(fp.Hash, 16)
}

// Store is a sqlite-backed dialect cache.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the cache database at path and migrates it.
// Use ":memory:" for an in-memory cache.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the cached dialect for fp. ok is false when the file changed
// or was never seen with these options.
func (s *Store) Get(ctx context.Context, fp Fingerprint) (d dialect.Dialect, ok bool, err error) {
	if s.db == nil {
		return dialect.Dialect{}, false, fmt.Errorf("database not opened")
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT delimiter, quotechar, escapechar FROM dialects
		 WHERE path = ? AND num_chars = ? AND encoding = ? AND size = ? AND hash = ?`,
		fp.Path, fp.NumChars, fp.Encoding, fp.Size, fp.hashHex(),
	).Scan(&d.Delimiter, &d.QuoteChar, &d.EscapeChar)
	if errors.Is(err, sql.ErrNoRows) {
		return dialect.Dialect{}, false, nil
	}
	if err != nil {
		return dialect.Dialect{}, false, fmt.Errorf("failed to read cached dialect: %w", err)
	}
	return d, true, nil
}

// Put stores d for fp, replacing any previous entry for the same file and options.
func (s *Store) Put(ctx context.Context, fp Fingerprint, d dialect.Dialect) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dialects (path, num_chars, encoding, size, hash, delimiter, quotechar, escapechar, detected_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (path, num_chars, encoding) DO UPDATE SET
		   size = excluded.size,
		   hash = excluded.hash,
		   delimiter = excluded.delimiter,
		   quotechar = excluded.quotechar,
		   escapechar = excluded.escapechar,
		   detected_at = excluded.detected_at`,
		fp.Path, fp.NumChars, fp.Encoding, fp.Size, fp.hashHex(), d.Delimiter, d.QuoteChar, d.EscapeChar,
	)
	if err != nil {
		return fmt.Errorf("failed to cache dialect: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM dialects`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of cached dialects.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, fmt.Errorf("database not opened")
	}

	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dialects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cached dialects: %w", err)
	}
	return n, nil
}
