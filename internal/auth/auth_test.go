/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/zalando/go-keyring"

	"minicanvas/internal/config"
	"minicanvas/internal/storage"
)

type memTokens map[string]string

func (m memTokens) Get(service, key string) (string, error) {
	v, ok := m[service+"/"+key]
	if !ok {
		return "", keyring.ErrNotFound
	}
	return v, nil
}
func (m memTokens) Set(service, key, value string) error { m[service+"/"+key] = value; return nil }
func (m memTokens) Delete(service, key string) error {
	if _, ok := m[service+"/"+key]; !ok {
		return keyring.ErrNotFound
	}
	delete(m, service+"/"+key)
	return nil
}

func isolateTokens(t *testing.T) {
	t.Helper()
	prev := config.SetTokenStore(memTokens{})
	t.Cleanup(func() { config.SetTokenStore(prev) })
}

// identityServer accepts the bearer token "good".
func identityServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	signouts := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(Principal{UID: "u1", Email: "ada@example.com", DisplayName: "Ada", ProviderID: "password"})
	})
	mux.HandleFunc("/api/auth/signout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		signouts++
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &signouts
}

func TestHTTPProviderCurrent(t *testing.T) {
	srv, _ := identityServer(t)
	tok := "good"
	p := NewHTTPProvider(srv.URL+"/", time.Second, func() string { return tok })
	got, err := p.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.UID != "u1" || got.Email != "ada@example.com" {
		t.Fatalf("principal = %+v", got)
	}
	tok = "bad"
	if _, err := p.Current(context.Background()); !errors.Is(err, ErrNoPrincipal) {
		t.Fatalf("bad token err = %v", err)
	}
	tok = ""
	if _, err := p.Current(context.Background()); !errors.Is(err, ErrNoPrincipal) {
		t.Fatalf("no token err = %v", err)
	}
}

func TestGateRedirects(t *testing.T) {
	srv, _ := identityServer(t)
	tok := ""
	g := Gate{Provider: NewHTTPProvider(srv.URL, time.Second, func() string { return tok })}
	ctx := context.Background()

	if r, _ := g.Resolve(ctx, RouteEditor); r != RouteSignIn {
		t.Fatalf("signed out editor -> %s", r)
	}
	if r, _ := g.Resolve(ctx, RouteSignIn); r != RouteSignIn {
		t.Fatalf("signed out signin -> %s", r)
	}
	tok = "good"
	r, p := g.Resolve(ctx, RouteEditor)
	if r != RouteEditor || p.UID != "u1" {
		t.Fatalf("signed in editor -> %s %+v", r, p)
	}
	if r, _ := g.Resolve(ctx, RouteSignIn); r != RouteEditor {
		t.Fatalf("signed in signin -> %s", r)
	}
	if r, _ := (Gate{}).Resolve(ctx, RouteEditor); r != RouteSignIn {
		t.Fatalf("nil provider -> %s", r)
	}
}

func TestLoginStoresTokenAndUpsertsProfile(t *testing.T) {
	isolateTokens(t)
	srv, signouts := identityServer(t)
	ctx := context.Background()
	profiles, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "profiles.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer profiles.Close()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewSession(NewHTTPProvider(srv.URL, time.Second, config.Token), profiles)
	s.Now = func() time.Time { return at }

	if _, err := s.Login(ctx, "bad"); !errors.Is(err, ErrNoPrincipal) {
		t.Fatalf("bad login err = %v", err)
	}
	if config.Token() != "" {
		t.Fatal("rejected token kept in keyring")
	}

	p, err := s.Login(ctx, "good")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if p.UID != "u1" || config.Token() != "good" {
		t.Fatalf("principal %+v token %q", p, config.Token())
	}
	prof, err := profiles.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if prof.DisplayName != "Ada" || !prof.LastLoginAt.Equal(at) {
		t.Fatalf("profile = %+v", prof)
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if *signouts != 1 || config.Token() != "" {
		t.Fatalf("signouts=%d token=%q", *signouts, config.Token())
	}
	if _, err := s.Whoami(ctx); !errors.Is(err, ErrNoPrincipal) {
		t.Fatalf("whoami after logout err = %v", err)
	}
}

type failingProfiles struct{ storage.ProfileStore }

func (failingProfiles) Upsert(context.Context, storage.Profile) error {
	return errors.New("store offline")
}

func TestLoginSurvivesProfileFailure(t *testing.T) {
	isolateTokens(t)
	srv, _ := identityServer(t)
	s := NewSession(NewHTTPProvider(srv.URL, time.Second, config.Token), failingProfiles{})
	if _, err := s.Login(context.Background(), "good"); err != nil {
		t.Fatalf("Login failed on profile error: %v", err)
	}
}
