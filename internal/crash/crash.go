/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a report file and a clean exit.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "minicanvas/internal/log"
	"minicanvas/internal/telemetry"
	"minicanvas/internal/version"
)

// exitFn lets tests observe Recover without terminating.
var exitFn = os.Exit

// Summarizer describes the editor state for a report. Implementations must
// not include scene content.
type Summarizer interface {
	CrashSummary() string
}

// Handler writes reports to Dir, or the temp dir when Dir is empty.
type Handler struct {
	Dir     string
	State   Summarizer
	Uploads *telemetry.Client
}

// Recover must be deferred directly:
//
//	defer h.Recover()
func (h Handler) Recover() {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	path, err := h.writeReport(r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}
	_, _ = fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", path)
	_, _ = fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH)
	exitFn(2)
}

func (h Handler) writeReport(panicVal any, stack []byte) (string, error) {
	dir := h.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", time.Now().Format("20060102-150405")))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "minicanvas crash report\n")
	fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Version: %s\n", version.String())
	fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if h.State != nil {
		fmt.Fprintf(&buf, "State: %s\n", h.summary())
	}
	fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	fmt.Fprintf(&buf, "Stack:\n%s\n", stack)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, fmt.Errorf("write crash report: %w", err)
	}
	h.Uploads.UploadCrash(buf.Bytes())
	return path, nil
}

// summary guards against a second panic while describing a broken state.
func (h Handler) summary() (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("unavailable (%v)", r)
		}
	}()
	return h.State.CrashSummary()
}
