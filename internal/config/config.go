/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration. The YAML file holds the editable
// settings; environment variables override them at runtime and the backend
// session token is kept in the OS keyring, never on disk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	TelemetryURL   string `yaml:"telemetry_url"`
	CrashReports   bool   `yaml:"crash_reports"`
}

type EditorConfig struct {
	ViewportWidth  int  `yaml:"viewport_width"`
	ViewportHeight int  `yaml:"viewport_height"`
	FitPadding     int  `yaml:"fit_padding"`
	HistoryLimit   int  `yaml:"history_limit"` // capped at 50
	ShowGrid       bool `yaml:"show_grid"`
	SmartGuides    bool `yaml:"smart_guides"`
}

type ExportConfig struct {
	Dir         string  `yaml:"dir"`
	RasterScale float64 `yaml:"raster_scale"`
}

type BackendConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutMs  int    `yaml:"timeout_ms"`
	ProfileDSN string `yaml:"profile_dsn"` // postgres://... or a sqlite file path; empty uses the local index
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the on-disk configuration. Bump ConfigVersion on incompatible changes.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Editor        EditorConfig  `yaml:"editor"`
	Export        ExportConfig  `yaml:"export"`
	Backend       BackendConfig `yaml:"backend"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{CrashReports: true},
		Editor: EditorConfig{
			ViewportWidth:  1200,
			ViewportHeight: 800,
			FitPadding:     100,
			HistoryLimit:   50,
			ShowGrid:       true,
		},
		Export:  ExportConfig{Dir: "export", RasterScale: 2},
		Backend: BackendConfig{BaseURL: "http://localhost:8080", TimeoutMs: 15000},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath     = "MINICANVAS_CONFIG"
	EnvBackendURL     = "MINICANVAS_BACKEND_URL"
	EnvBackendTimeout = "MINICANVAS_BACKEND_TIMEOUT_MS"
	EnvProfileDSN     = "MINICANVAS_PROFILE_DSN"
	EnvTelemetryOptIn = "MINICANVAS_TELEMETRY"
	EnvExportDir      = "MINICANVAS_EXPORT_DIR"
	EnvViewport       = "MINICANVAS_VIEWPORT" // WIDTHxHEIGHT
	EnvLogLevel       = "MINICANVAS_LOG_LEVEL"
	EnvLogFormat      = "MINICANVAS_LOG_FORMAT"
	EnvLogSource      = "MINICANVAS_LOG_SOURCE"
	EnvLogFile        = "MINICANVAS_LOG_FILE"
)

const (
	keyringService = "minicanvas"
	keyringToken   = "session_token"
)

// TokenStore abstracts the OS keyring so tests can swap it.
type TokenStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }
func (osKeyring) Delete(service, key string) error        { return keyring.Delete(service, key) }

var tokenStore TokenStore = osKeyring{}

// SetTokenStore replaces the keyring backend and returns the previous one.
func SetTokenStore(ts TokenStore) TokenStore {
	prev := tokenStore
	tokenStore = ts
	return prev
}

// ConfigPath returns the per-user config file path. MINICANVAS_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "minicanvas", "config.yaml"), nil
}

// Load reads the config file if present, applies defaults and env overrides,
// and returns the session token from the keyring separately. A missing token is not an error.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, "", fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, "", fmt.Errorf("read config: %w", err)
	}
	applyEnvOverrides(&cfg)
	tok, _ := tokenStore.Get(keyringService, keyringToken)
	return cfg, tok, nil
}

// Save writes the YAML file and stores token in the keyring when non-empty.
func Save(cfg AppConfig, token string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if token != "" {
		return SaveToken(token)
	}
	return nil
}

// SaveToken stores the session token in the keyring.
func SaveToken(token string) error {
	if err := tokenStore.Set(keyringService, keyringToken, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Token returns the stored session token, or "" when none is stored.
func Token() string {
	tok, err := tokenStore.Get(keyringService, keyringToken)
	if err != nil {
		return ""
	}
	return tok
}

// DeleteToken removes the session token. Deleting a missing token is not an error.
func DeleteToken() error {
	err := tokenStore.Delete(keyringService, keyringToken)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	dst.General.CrashReports = src.General.CrashReports
	if s := strings.TrimSpace(src.General.TelemetryURL); s != "" {
		dst.General.TelemetryURL = s
	}

	if src.Editor.ViewportWidth > 0 {
		dst.Editor.ViewportWidth = src.Editor.ViewportWidth
	}
	if src.Editor.ViewportHeight > 0 {
		dst.Editor.ViewportHeight = src.Editor.ViewportHeight
	}
	if src.Editor.FitPadding > 0 {
		dst.Editor.FitPadding = src.Editor.FitPadding
	}
	if src.Editor.HistoryLimit > 0 {
		dst.Editor.HistoryLimit = src.Editor.HistoryLimit
	}
	dst.Editor.ShowGrid = src.Editor.ShowGrid
	dst.Editor.SmartGuides = src.Editor.SmartGuides

	if s := strings.TrimSpace(src.Export.Dir); s != "" {
		dst.Export.Dir = s
	}
	if src.Export.RasterScale > 0 {
		dst.Export.RasterScale = src.Export.RasterScale
	}

	if s := strings.TrimSpace(src.Backend.BaseURL); s != "" {
		dst.Backend.BaseURL = s
	}
	if src.Backend.TimeoutMs > 0 {
		dst.Backend.TimeoutMs = src.Backend.TimeoutMs
	}
	if s := strings.TrimSpace(src.Backend.ProfileDSN); s != "" {
		dst.Backend.ProfileDSN = s
	}

	if s := strings.TrimSpace(src.Logging.Level); s != "" {
		dst.Logging.Level = strings.ToLower(s)
	}
	if s := strings.TrimSpace(src.Logging.Format); s != "" {
		dst.Logging.Format = strings.ToLower(s)
	}
	dst.Logging.Source = src.Logging.Source
	if s := strings.TrimSpace(src.Logging.File); s != "" {
		dst.Logging.File = s
	}
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvBackendURL)); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackendTimeout)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Backend.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvProfileDSN)); v != "" {
		cfg.Backend.ProfileDSN = v
	}
	if v := os.Getenv(EnvTelemetryOptIn); v != "" {
		cfg.General.TelemetryOptIn = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDir)); v != "" {
		cfg.Export.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvViewport)); v != "" {
		if w, h, ok := parseSize(v); ok {
			cfg.Editor.ViewportWidth, cfg.Editor.ViewportHeight = w, h
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogSource); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// parseSize parses "1200x800".
func parseSize(s string) (int, int, bool) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(strings.TrimSpace(ws))
	h, err2 := strconv.Atoi(strings.TrimSpace(hs))
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

// EnvOverrideFor reports which env var, if any, overrides the dotted config key.
func EnvOverrideFor(key string) (string, bool) {
	env := map[string]string{
		"backend.base_url":         EnvBackendURL,
		"backend.timeout_ms":       EnvBackendTimeout,
		"backend.profile_dsn":      EnvProfileDSN,
		"general.telemetry_opt_in": EnvTelemetryOptIn,
		"export.dir":               EnvExportDir,
		"editor.viewport":          EnvViewport,
		"logging.level":            EnvLogLevel,
		"logging.format":           EnvLogFormat,
		"logging.source":           EnvLogSource,
		"logging.file":             EnvLogFile,
	}[key]
	if env == "" || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// Timeout returns the backend request timeout.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutMs <= 0 {
		return time.Duration(Defaults().Backend.TimeoutMs) * time.Millisecond
	}
	return time.Duration(b.TimeoutMs) * time.Millisecond
}
