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
	"strings"
	"time"
)

// ErrNotFound is returned when no profile exists for a uid.
var ErrNotFound = errors.New("profile not found")

// Profile is the document written on login.
type Profile struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL"`
	ProviderID  string    `json:"providerId"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

// ProfileStore persists profiles keyed by uid. Upsert merges: a later
// write replaces every field of an earlier one.
type ProfileStore interface {
	Upsert(ctx context.Context, p Profile) error
	Get(ctx context.Context, uid string) (Profile, error)
	Close() error
}

// Open picks a backend from dsn: postgres:// and postgresql:// URLs go to
// PostgreSQL, anything else is a SQLite file path.
func Open(ctx context.Context, dsn string) (ProfileStore, error) {
	d := strings.TrimSpace(dsn)
	if d == "" {
		return nil, errors.New("open profile store: empty dsn")
	}
	if strings.HasPrefix(d, "postgres://") || strings.HasPrefix(d, "postgresql://") {
		return OpenPG(ctx, d)
	}
	return OpenSQLite(ctx, d)
}

func validate(p Profile) error {
	if strings.TrimSpace(p.UID) == "" {
		return errors.New("profile uid is required")
	}
	return nil
}
