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
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"minicanvas/internal/config"
	applog "minicanvas/internal/log"
	"minicanvas/internal/storage"
)

// HTTPProvider asks the identity backend who owns a bearer token.
//
//	GET  /api/me           -> Principal, 401 when the token is unknown
//	POST /api/auth/signout -> 2xx
type HTTPProvider struct {
	BaseURL string
	Token   func() string
	client  *http.Client
}

// NewHTTPProvider builds a provider; token is read on every call so a
// later Login is picked up. baseURL may carry a trailing slash.
func NewHTTPProvider(baseURL string, timeout time.Duration, token func() string) *HTTPProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (h *HTTPProvider) token() string {
	if h.Token == nil {
		return ""
	}
	return strings.TrimSpace(h.Token())
}

func (h *HTTPProvider) do(ctx context.Context, method, path string, dest any) error {
	tok := h.token()
	if tok == "" {
		return ErrNoPrincipal
	}
	req, err := http.NewRequestWithContext(ctx, method, h.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrNoPrincipal
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server %s %s: %s", method, path, resp.Status)
	}
	if dest == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func (h *HTTPProvider) Current(ctx context.Context) (Principal, error) {
	var p Principal
	if err := h.do(ctx, http.MethodGet, "/api/me", &p); err != nil {
		return Principal{}, err
	}
	if p.UID == "" {
		return Principal{}, ErrNoPrincipal
	}
	return p, nil
}

func (h *HTTPProvider) SignOut(ctx context.Context) error {
	err := h.do(ctx, http.MethodPost, "/api/auth/signout", nil)
	if errors.Is(err, ErrNoPrincipal) {
		return nil
	}
	return err
}

// Session ties the provider to the keyring token and the profile store.
type Session struct {
	Provider Provider
	Profiles storage.ProfileStore // optional
	Now      func() time.Time
	log      *slog.Logger
}

func NewSession(p Provider, profiles storage.ProfileStore) *Session {
	return &Session{Provider: p, Profiles: profiles, Now: time.Now, log: applog.WithComponent("auth")}
}

// Login stores token, resolves the principal and upserts its profile. A
// failed upsert is logged and does not fail the login.
func (s *Session) Login(ctx context.Context, token string) (Principal, error) {
	if strings.TrimSpace(token) == "" {
		return Principal{}, errors.New("login: empty token")
	}
	if err := config.SaveToken(token); err != nil {
		return Principal{}, fmt.Errorf("login: %w", err)
	}
	p, err := s.Provider.Current(ctx)
	if err != nil {
		_ = config.DeleteToken()
		return Principal{}, fmt.Errorf("login: %w", err)
	}
	s.log.Info("signed in", slog.String("uid", p.UID))
	s.upsert(ctx, p)
	return p, nil
}

func (s *Session) upsert(ctx context.Context, p Principal) {
	if s.Profiles == nil {
		return
	}
	err := s.Profiles.Upsert(ctx, storage.Profile{
		UID:         p.UID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoURL,
		ProviderID:  p.ProviderID,
		LastLoginAt: s.Now().UTC(),
	})
	if err != nil {
		s.log.Warn("profile upsert failed", slog.String("uid", p.UID), slog.Any("err", err))
	}
}

// Logout signs out remotely and always drops the local token.
func (s *Session) Logout(ctx context.Context) error {
	remote := s.Provider.SignOut(ctx)
	if err := config.DeleteToken(); err != nil {
		return err
	}
	if remote != nil {
		s.log.Warn("remote sign-out failed", slog.Any("err", remote))
	}
	return nil
}

// Whoami returns the current principal.
func (s *Session) Whoami(ctx context.Context) (Principal, error) {
	return s.Provider.Current(ctx)
}
