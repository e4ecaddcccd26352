/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteProfilesUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profiles", "profiles.sqlite")
	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("db file missing: %v", err)
	}

	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := Profile{UID: "u1", Email: "a@example.com", DisplayName: "Ada", ProviderID: "password", LastLoginAt: first}
	if err := s.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	p.DisplayName = "Ada L."
	p.LastLoginAt = first.Add(time.Hour)
	if err := s.Upsert(ctx, p); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	got, err := s.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.DisplayName != "Ada L." || !got.LastLoginAt.Equal(first.Add(time.Hour)) {
		t.Fatalf("got %+v", got)
	}
	if _, err := s.Get(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing uid err = %v", err)
	}
	if err := s.Upsert(ctx, Profile{}); err == nil {
		t.Fatal("expected error for empty uid")
	}
}

func TestSQLiteSchemaVersionAndWAL(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "p.sqlite")
	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	_ = s.Close()
	// Reopening must not fail or downgrade.
	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s", filepath.ToSlash(path)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode;").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" && mode != "WAL" {
		t.Fatalf("journal mode = %s, want wal", mode)
	}
	var schema int
	if err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read version: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema = %d, want %d", schema, schemaVersion)
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM sqlite_master WHERE type='index' AND name='idx_profiles_email'`).Scan(&n); err != nil || n != 1 {
		t.Fatalf("email index: n=%d err=%v", n, err)
	}
}

func TestOpenDispatchesOnDSN(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, "  "); err == nil {
		t.Fatal("expected error for empty dsn")
	}
	st, err := Open(ctx, filepath.Join(t.TempDir(), "x.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()
	if _, ok := st.(*SQLiteProfiles); !ok {
		t.Fatalf("store = %T, want *SQLiteProfiles", st)
	}
}

func TestParseMigrationVersion(t *testing.T) {
	v, err := parseVersion("migrations/0002_profiles_email.sql")
	if err != nil || v != 2 {
		t.Fatalf("v=%d err=%v", v, err)
	}
	if _, err := parseVersion("profiles.sql"); err == nil {
		t.Fatal("expected error without version prefix")
	}
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil || len(entries) < 2 {
		t.Fatalf("embedded migrations: %v (%d)", err, len(entries))
	}
}
