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
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Runs only against a real database: MINICANVAS_PG_DSN=postgres://...
func TestPGProfilesRoundTrip(t *testing.T) {
	dsn := os.Getenv("MINICANVAS_PG_DSN")
	if dsn == "" {
		t.Skip("MINICANVAS_PG_DSN not set; skipping PostgreSQL test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	st, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()
	if _, ok := st.(*PGProfiles); !ok {
		t.Fatalf("store = %T, want *PGProfiles", st)
	}

	uid := "test-" + uuid.NewString()
	at := time.Now().UTC().Truncate(time.Millisecond)
	if err := st.Upsert(ctx, Profile{UID: uid, Email: "pg@example.com", LastLoginAt: at}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, err := st.Get(ctx, uid)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Email != "pg@example.com" || !got.LastLoginAt.Equal(at) {
		t.Fatalf("got %+v", got)
	}
	if _, err := st.Get(ctx, uid+"-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}
