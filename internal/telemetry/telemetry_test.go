/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"minicanvas/internal/config"
)

type sink struct {
	mu      sync.Mutex
	events  []Payload
	crashes [][]byte
}

func newSink(t *testing.T) (*sink, *httptest.Server) {
	t.Helper()
	s := &sink{}
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		var p Payload
		_ = json.NewDecoder(r.Body).Decode(&p)
		s.mu.Lock()
		s.events = append(s.events, p)
		s.mu.Unlock()
	})
	mux.HandleFunc("/events/crash", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.crashes = append(s.crashes, b)
		s.mu.Unlock()
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return s, srv
}

func TestEventsAreSentWithSession(t *testing.T) {
	s, srv := newSink(t)
	c := New(FromConfig(config.GeneralConfig{TelemetryOptIn: true, TelemetryURL: srv.URL + "/events", CrashReports: true}))
	defer c.Close()
	if !c.Enabled() {
		t.Fatal("expected client enabled")
	}
	c.Event(CanvasCreated, map[string]any{"w": 800})
	c.Event(ExportWritten, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c.Flush(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) != 2 {
		t.Fatalf("events = %d, want 2", len(s.events))
	}
	if s.events[0].Name != CanvasCreated || s.events[0].Session == "" || s.events[0].Session != s.events[1].Session {
		t.Fatalf("events = %+v", s.events)
	}
	if s.events[0].Props["w"] != float64(800) {
		t.Fatalf("props = %v", s.events[0].Props)
	}
}

func TestEventsAfterCloseDoNotBlockFlush(t *testing.T) {
	s, srv := newSink(t)
	c := New(FromConfig(config.GeneralConfig{TelemetryOptIn: true, TelemetryURL: srv.URL + "/events"}))
	c.Close()
	c.Event(CanvasCreated, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	start := time.Now()
	c.Flush(ctx)
	if d := time.Since(start); d > time.Second {
		t.Fatalf("flush after close took %v", d)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) != 0 {
		t.Fatalf("events after close = %d", len(s.events))
	}
}

func TestCrashUploadFollowsEventsURL(t *testing.T) {
	s, srv := newSink(t)
	c := New(FromConfig(config.GeneralConfig{TelemetryOptIn: true, TelemetryURL: srv.URL + "/events/", CrashReports: true}))
	defer c.Close()
	c.UploadCrash([]byte("STACK"))
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.crashes) != 1 || string(s.crashes[0]) != "STACK" {
		t.Fatalf("crashes = %q", s.crashes)
	}
}

func TestDisabledClientIsQuiet(t *testing.T) {
	s, srv := newSink(t)
	c := New(FromConfig(config.GeneralConfig{TelemetryURL: srv.URL + "/events", CrashReports: true}))
	defer c.Close()
	if c.Enabled() {
		t.Fatal("client enabled without opt-in")
	}
	c.Event(ScriptRun, nil)
	c.UploadCrash([]byte("x"))
	c.Flush(context.Background())
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) != 0 || len(s.crashes) != 0 {
		t.Fatalf("sent %d events %d crashes", len(s.events), len(s.crashes))
	}
}

func TestCrashURLOverrideAndOptOut(t *testing.T) {
	t.Setenv(EnvCrashURL, "https://crash.example.com/upload")
	cfg := FromConfig(config.GeneralConfig{TelemetryOptIn: true, TelemetryURL: "https://t.example.com", CrashReports: true})
	if cfg.CrashURL != "https://crash.example.com/upload" {
		t.Fatalf("crash url = %q", cfg.CrashURL)
	}
	cfg = FromConfig(config.GeneralConfig{TelemetryOptIn: true, TelemetryURL: "https://t.example.com"})
	if cfg.CrashURL != "" {
		t.Fatalf("crash url with reports off = %q", cfg.CrashURL)
	}
}

func TestTrackWithoutDefaultIsNoop(t *testing.T) {
	prev := SetDefault(nil)
	t.Cleanup(func() { SetDefault(prev) })
	Track(CanvasCreated, nil)
	Default().Flush(context.Background())
	Default().Close()
}
