/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"minicanvas/internal/auth"
	"minicanvas/internal/codeview"
	"minicanvas/internal/config"
	"minicanvas/internal/crash"
	"minicanvas/internal/editor"
	"minicanvas/internal/export"
	applog "minicanvas/internal/log"
	"minicanvas/internal/render"
	"minicanvas/internal/scene"
	"minicanvas/internal/script"
	"minicanvas/internal/storage"
	"minicanvas/internal/telemetry"
	"minicanvas/internal/ui"
	"minicanvas/internal/version"
)

func usage() {
	fmt.Println("minicanvas - design canvas editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  minicanvas version|-v|--version          Show version")
	fmt.Println("  minicanvas presets                        List canvas presets")
	fmt.Println("  minicanvas script <file.yaml> [outDir]    Replay a scene script and export every canvas")
	fmt.Println("  minicanvas render <scene.json> [outDir]   Export a scene document")
	fmt.Println("  minicanvas code <file.yaml> [--copy html|css|js]")
	fmt.Println("                                            Browse or copy the generated code of a script")
	fmt.Println("  minicanvas login <token>                  Sign in with a backend session token")
	fmt.Println("  minicanvas logout                         Sign out")
	fmt.Println("  minicanvas whoami                         Show the signed-in user")
	fmt.Println("  minicanvas ui                             Launch desktop UI (build with -tags fyne for full UI)")
}

// sessionState feeds the crash handler once a session exists.
type sessionState struct{ s *editor.Session }

func (st *sessionState) CrashSummary() string {
	if st.s == nil {
		return "no session"
	}
	return st.s.CrashSummary()
}

func main() { os.Exit(run(os.Args)) }

var errUsage = errors.New("usage")

func usageErr(msg string) error { return fmt.Errorf("%w: %s", errUsage, msg) }

// run executes one command and returns the process exit code. Deferred
// cleanup runs before main exits.
func run(args []string) int {
	cfg, _, cfgErr := config.Load()
	applog.Init(logOptions(cfg.Logging))
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", cfgErr))
	}

	tel := telemetry.New(telemetry.FromConfig(cfg.General))
	telemetry.SetDefault(tel)
	defer tel.Close()

	state := &sessionState{}
	h := crash.Handler{State: state, Uploads: tel}
	defer h.Recover()

	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return 0
	}
	ctx := context.Background()
	err := dispatch(ctx, cfg, state, args)

	flush, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	tel.Flush(flush)

	switch {
	case errors.Is(err, errUsage):
		fmt.Println(strings.TrimPrefix(err.Error(), errUsage.Error()+": "))
		usage()
		return 2
	case err != nil:
		l.Error("command failed", slog.String("cmd", args[1]), slog.Any("err", err))
		fmt.Println("Error:", err)
		return 1
	}
	return 0
}

func dispatch(ctx context.Context, cfg config.AppConfig, state *sessionState, args []string) error {
	outDir := func(i int) string {
		if len(args) > i {
			return args[i]
		}
		return cfg.Export.Dir
	}
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("minicanvas")
		fmt.Println(version.String())
	case "presets":
		for _, p := range scene.Presets {
			fmt.Printf("%-8s %-16s %dx%d\n", p.ID, p.Label, p.Width, p.Height)
		}
	case "script":
		if len(args) < 3 {
			return usageErr("script requires <file.yaml>")
		}
		s := editor.NewSession(editor.OptionsFrom(cfg.Editor))
		state.s = s
		if err := replay(ctx, s, args[2]); err != nil {
			return err
		}
		return exportAll(cfg, s.Canvases(), outDir(3), nil)
	case "render":
		if len(args) < 3 {
			return usageErr("render requires <scene.json>")
		}
		b, err := os.ReadFile(args[2])
		if err != nil {
			return fmt.Errorf("read scene: %w", err)
		}
		c, err := scene.DecodeDocument(b)
		if err != nil {
			return err
		}
		s := editor.NewSession(editor.OptionsFrom(cfg.Editor))
		state.s = s
		if !s.ImportCanvas(c) {
			return fmt.Errorf("import scene: canvas is %dx%d", c.Width, c.Height)
		}
		return exportAll(cfg, s.Canvases(), outDir(3),
			[]string{export.FormatHTML, export.FormatPNG, export.FormatSVG, export.FormatPDF})
	case "code":
		if len(args) < 3 {
			return usageErr("code requires <file.yaml>")
		}
		s := editor.NewSession(editor.OptionsFrom(cfg.Editor))
		state.s = s
		if err := replay(ctx, s, args[2]); err != nil {
			return err
		}
		if len(args) >= 5 && args[3] == "--copy" {
			p := export.Part(strings.ToLower(args[4]))
			if err := export.CopyToClipboard(s.Canvas(), p); err != nil {
				return err
			}
			fmt.Println("Copied", p.FileName(), "to the clipboard.")
			return nil
		}
		return codeview.Run(s.Canvas())
	case "login":
		if len(args) < 3 {
			return usageErr("login requires <token>")
		}
		sess, closeFn, err := authSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeFn()
		p, err := sess.Login(ctx, args[2])
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s\n", describe(p))
	case "logout":
		sess, closeFn, err := authSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeFn()
		if err := sess.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Signed out.")
	case "whoami":
		sess, closeFn, err := authSession(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeFn()
		p, err := sess.Whoami(ctx)
		if errors.Is(err, auth.ErrNoPrincipal) {
			fmt.Println("Not signed in.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(describe(p))
	case "ui":
		route, p := auth.Gate{Provider: provider(cfg)}.Resolve(ctx, auth.RouteEditor)
		if route != auth.RouteEditor {
			return errors.New("not signed in, run: minicanvas login <token>")
		}
		s := editor.NewSession(editor.OptionsFrom(cfg.Editor))
		state.s = s
		return ui.Run(ui.Options{Config: cfg, Session: s, Principal: describe(p)})
	default:
		usage()
	}
	return nil
}

// logOptions layers the config file's logging section under the MINICANVAS_LOG_* variables.
func logOptions(c config.LoggingConfig) applog.Options {
	o := applog.FromEnv()
	if os.Getenv(applog.EnvLevel) == "" && c.Level != "" {
		o.Level = c.Level
	}
	if os.Getenv(applog.EnvFormat) == "" && c.Format != "" {
		o.Format = c.Format
	}
	if os.Getenv(applog.EnvFile) == "" {
		o.File = c.File
	}
	if os.Getenv(applog.EnvSource) == "" {
		o.AddSource = c.Source
	}
	return o
}

func replay(ctx context.Context, s *editor.Session, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	sc, errs := script.Parse(b)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("%s:%s\n", path, e.Error())
		}
		return fmt.Errorf("parse script: %d error(s)", len(errs))
	}
	rep, err := script.Run(ctx, s, sc, filepath.Dir(path))
	if err != nil {
		return err
	}
	fmt.Printf("Ran %d step(s), %d refused.\n", rep.Steps, rep.Refused)
	telemetry.Track(telemetry.ScriptRun, map[string]any{"steps": rep.Steps, "refused": rep.Refused})
	return nil
}

func exportAll(cfg config.AppConfig, canvases []*scene.Canvas, out string, formats []string) error {
	r, err := render.Default()
	if err != nil {
		return err
	}
	paths, err := export.BatchExport(r, canvases, export.BatchOptions{
		Preset:  export.PresetWeb,
		Formats: formats,
		OutDir:  out,
		Scale:   cfg.Export.RasterScale,
	})
	for _, p := range paths {
		fmt.Println("Wrote", p)
	}
	if err != nil {
		return err
	}
	telemetry.Track(telemetry.ExportWritten, map[string]any{"files": len(paths), "canvases": len(canvases)})
	return nil
}

func provider(cfg config.AppConfig) *auth.HTTPProvider {
	return auth.NewHTTPProvider(cfg.Backend.BaseURL, cfg.Backend.Timeout(), config.Token)
}

// authSession opens the profile store named by the backend DSN, or the local
// index next to the config file.
func authSession(ctx context.Context, cfg config.AppConfig) (*auth.Session, func(), error) {
	dsn := cfg.Backend.ProfileDSN
	if dsn == "" {
		cp, err := config.ConfigPath()
		if err != nil {
			return nil, nil, err
		}
		dsn = filepath.Join(filepath.Dir(cp), "profiles.db")
	}
	store, err := storage.Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return auth.NewSession(provider(cfg), store), func() { _ = store.Close() }, nil
}

func describe(p auth.Principal) string {
	switch {
	case p.DisplayName != "" && p.Email != "":
		return fmt.Sprintf("%s <%s>", p.DisplayName, p.Email)
	case p.Email != "":
		return p.Email
	}
	return p.UID
}
