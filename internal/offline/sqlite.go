package offline

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBuckets persists cache buckets in a single SQLite file.
// Each Put is one INSERT OR REPLACE, so writes to the same path are
// independently atomic and last-write-wins under concurrency.
type SQLiteBuckets struct {
	db *sql.DB
}

func NewSQLiteBuckets(path string) (*SQLiteBuckets, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	s := &SQLiteBuckets{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteBuckets) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cache_entries (
		bucket    TEXT NOT NULL,
		path      TEXT NOT NULL,
		status    INTEGER NOT NULL,
		header    TEXT NOT NULL,
		body      BLOB NOT NULL,
		stored_at TIMESTAMP NOT NULL,
		PRIMARY KEY (bucket, path)
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteBuckets) Close() error { return s.db.Close() }

func (s *SQLiteBuckets) Open(_ context.Context, name string) (Bucket, error) {
	return &sqliteBucket{db: s.db, name: name}, nil
}

func (s *SQLiteBuckets) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT bucket FROM cache_entries`)
	if err != nil {
		return nil, fmt.Errorf("list buckets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteBuckets) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE bucket = ?`, name); err != nil {
		return fmt.Errorf("delete bucket %s: %w", name, err)
	}
	return nil
}

type sqliteBucket struct {
	db   *sql.DB
	name string
}

func (b *sqliteBucket) Get(ctx context.Context, path string) (*Response, error) {
	row := b.db.QueryRowContext(ctx,
		`SELECT status, header, body FROM cache_entries WHERE bucket = ? AND path = ?`,
		b.name, path)

	var (
		status    int
		headerRaw string
		body      []byte
	)
	if err := row.Scan(&status, &headerRaw, &body); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("get %s: %w", path, err)
	}

	header := http.Header{}
	if err := json.Unmarshal([]byte(headerRaw), &header); err != nil {
		return nil, fmt.Errorf("decode header for %s: %w", path, err)
	}
	return &Response{Status: status, Header: header, Body: body}, nil
}

func (b *sqliteBucket) Put(ctx context.Context, path string, resp *Response) error {
	headerRaw, err := json.Marshal(resp.Header)
	if err != nil {
		return fmt.Errorf("encode header for %s: %w", path, err)
	}
	_, err = b.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO cache_entries (bucket, path, status, header, body, stored_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.name, path, resp.Status, string(headerRaw), resp.Body, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}
	return nil
}
