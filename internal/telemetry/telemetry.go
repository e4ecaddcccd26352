/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package telemetry sends opt-in anonymous usage events and crash reports.
// Nothing leaves the machine unless the user opted in and an endpoint is
// configured. Events never carry scene content.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"minicanvas/internal/config"
	applog "minicanvas/internal/log"
	"minicanvas/internal/version"
)

// Event names.
const (
	CanvasCreated = "canvas_created"
	ExportWritten = "export_written"
	ScriptRun     = "script_run"
)

// Env overrides on top of the app config.
const (
	EnvCrashURL = "MINICANVAS_CRASH_URL"
	EnvDebug    = "MINICANVAS_TELEMETRY_DEBUG"
)

type Config struct {
	OptIn     bool
	EventsURL string
	CrashURL  string
	Timeout   time.Duration
	Debug     bool
}

// FromConfig maps the general config section. Crash uploads go to
// <events url>/crash unless MINICANVAS_CRASH_URL says otherwise, and only
// when crash reporting is on.
func FromConfig(g config.GeneralConfig) Config {
	cfg := Config{
		OptIn:     g.TelemetryOptIn,
		EventsURL: strings.TrimRight(strings.TrimSpace(g.TelemetryURL), "/"),
		Timeout:   1500 * time.Millisecond,
		Debug:     os.Getenv(EnvDebug) != "",
	}
	if g.CrashReports {
		cfg.CrashURL = strings.TrimSpace(os.Getenv(EnvCrashURL))
		if cfg.CrashURL == "" && cfg.EventsURL != "" {
			cfg.CrashURL = cfg.EventsURL + "/crash"
		}
	}
	return cfg
}

// Payload is the JSON body of one event.
type Payload struct {
	Name    string         `json:"name"`
	Session string         `json:"session"`
	TS      string         `json:"ts"`
	Version string         `json:"version"`
	OS      string         `json:"os"`
	Arch    string         `json:"arch"`
	Props   map[string]any `json:"props,omitempty"`
}

// Client queues events and posts them from one goroutine. A full queue
// drops events rather than block the caller.
type Client struct {
	cfg     Config
	session string
	log     *slog.Logger
	cli     *http.Client
	q       chan Payload
	pending sync.WaitGroup
	once    sync.Once
	closed  chan struct{}

	mu   sync.Mutex
	done bool
}

func New(cfg Config) *Client {
	c := &Client{
		cfg:     cfg,
		session: uuid.NewString(),
		log:     applog.WithComponent("telemetry"),
		cli:     &http.Client{Timeout: cfg.Timeout},
		q:       make(chan Payload, 64),
		closed:  make(chan struct{}),
	}
	go c.loop()
	return c
}

// Enabled reports whether events are sent at all.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Event queues name with non-identifying props.
func (c *Client) Event(name string, props map[string]any) {
	if !c.Enabled() || name == "" {
		return
	}
	p := Payload{
		Name:    name,
		Session: c.session,
		TS:      time.Now().UTC().Format(time.RFC3339Nano),
		Version: version.String(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	if len(props) > 0 {
		p.Props = make(map[string]any, len(props))
		for k, v := range props {
			p.Props[k] = v
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	c.pending.Add(1)
	select {
	case c.q <- p:
	default:
		c.pending.Done()
	}
}

// Flush waits until queued events are sent or ctx ends.
func (c *Client) Flush(ctx context.Context) {
	if c == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

// Close stops the sender. Queued and later events are dropped.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.once.Do(func() {
		c.mu.Lock()
		c.done = true
		close(c.closed)
		c.mu.Unlock()
	})
}

func (c *Client) loop() {
	for {
		select {
		case <-c.closed:
			for {
				select {
				case <-c.q:
					c.pending.Done()
				default:
					return
				}
			}
		case p := <-c.q:
			c.post(c.cfg.EventsURL, "application/json", p)
			c.pending.Done()
		}
	}
}

func (c *Client) post(url, contentType string, body any) {
	var buf []byte
	switch b := body.(type) {
	case []byte:
		buf = b
	default:
		buf, _ = json.Marshal(b)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.cli.Do(req)
	if err != nil {
		if c.cfg.Debug {
			c.log.Debug("telemetry send failed", slog.String("url", url), slog.Any("err", err))
		}
		return
	}
	_ = resp.Body.Close()
	if c.cfg.Debug {
		c.log.Debug("telemetry sent", slog.String("url", url), slog.Int("status", resp.StatusCode))
	}
}

// UploadCrash posts a crash report synchronously; the process is about to
// exit. It is a no-op without opt-in or a crash URL.
func (c *Client) UploadCrash(report []byte) {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return
	}
	c.post(c.cfg.CrashURL, "text/plain; charset=utf-8", append([]byte(nil), report...))
}

var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

// SetDefault installs the package-level client and returns the previous one.
func SetDefault(c *Client) *Client {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultClient
	defaultClient = c
	return prev
}

// Default returns the package-level client; nil until SetDefault.
func Default() *Client {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultClient
}

// Track sends through the default client, if any.
func Track(name string, props map[string]any) { Default().Event(name, props) }
