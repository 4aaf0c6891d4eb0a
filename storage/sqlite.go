// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package storage persists generator-emitted stable pointers across
// process restarts. It is a caller-facing convenience, not part of Core
// A or Core B: nothing in evparse or evparse/gen depends on it.
package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/mdhender/evparse/gen"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// PointerStore is a SQLite-backed store mapping (fileID, path) pairs to
// the gen.StablePointer captured there, so a caller can persist a
// pointer into a file's tree and look it up again in a later process.
type PointerStore struct {
	db *sql.DB
}

// Open opens (and, if path is empty, creates an in-memory) database and
// ensures its schema exists. PRAGMAs are applied per-connection via the
// DSN, matching stores/sqlite's file-based mode, so the pool never has
// to re-apply them on checkout.
func Open(path string) (*PointerStore, error) {
	dsn := "file::memory:?cache=shared&_pragma=foreign_keys(1)"
	if path != "" {
		dsn = fmt.Sprintf(
			"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)",
			path,
		)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: exec schema: %w", err)
	}
	return &PointerStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *PointerStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put persists ptr under fileID, keyed by its own path so a later Get
// with the same fileID and path finds it again. A second Put for the
// same (fileID, path) replaces the earlier pointer.
func (s *PointerStore) Put(ctx context.Context, fileID string, ptr gen.StablePointer) error {
	path, err := json.Marshal(ptr.Path)
	if err != nil {
		return fmt.Errorf("put pointer: encode path: %w", err)
	}
	const query = `
		INSERT INTO pointers (file_id, path, kind_name, path_json)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(file_id, path) DO UPDATE SET kind_name = excluded.kind_name, path_json = excluded.path_json
	`
	if _, err := s.db.ExecContext(ctx, query, fileID, string(path), ptr.KindName, string(path)); err != nil {
		return fmt.Errorf("put pointer: %w", err)
	}
	return nil
}

// Get looks up the pointer previously Put under fileID with the given
// path. It reports false, with no error, if no such pointer exists.
func (s *PointerStore) Get(ctx context.Context, fileID string, path []int) (gen.StablePointer, bool, error) {
	key, err := json.Marshal(path)
	if err != nil {
		return gen.StablePointer{}, false, fmt.Errorf("get pointer: encode path: %w", err)
	}

	const query = `SELECT kind_name, path_json FROM pointers WHERE file_id = ? AND path = ?`
	row := s.db.QueryRowContext(ctx, query, fileID, string(key))

	var kindName, pathJSON string
	switch err := row.Scan(&kindName, &pathJSON); err {
	case nil:
		var p []int
		if err := json.Unmarshal([]byte(pathJSON), &p); err != nil {
			return gen.StablePointer{}, false, fmt.Errorf("get pointer: decode path: %w", err)
		}
		return gen.StablePointer{KindName: kindName, Path: p}, true, nil
	case sql.ErrNoRows:
		return gen.StablePointer{}, false, nil
	default:
		return gen.StablePointer{}, false, fmt.Errorf("get pointer: %w", err)
	}
}
