// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/hildon-desktop/main.go
// Summary: The compositor daemon: wires the render manager to a real (or
// fake) display, the config store, the persistence layer, and the optional
// debug WebSocket endpoint, then runs the single owning loop.
// Usage: hildon-desktop [-fake-display] [-debug-addr 127.0.0.1:7777]
// SIGHUP reloads configuration; SIGINT/SIGTERM shut down cleanly.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/android-808/hildon-desktop/config"
	"github.com/android-808/hildon-desktop/debugws"
	"github.com/android-808/hildon-desktop/engine"
	"github.com/android-808/hildon-desktop/internal/rlog"
	"github.com/android-808/hildon-desktop/statestore"
	"github.com/android-808/hildon-desktop/x11"
)

func main() {
	debugAddr := flag.String("debug-addr", "", "loopback address for the debug WebSocket endpoint (empty = disabled)")
	fakeDisplay := flag.Bool("fake-display", false, "run against an in-memory display instead of a real X server")
	flag.Parse()

	if err := run(*debugAddr, *fakeDisplay); err != nil {
		fmt.Fprintf(os.Stderr, "hildon-desktop: %v\n", err)
		os.Exit(1)
	}
}

func run(debugAddr string, fakeDisplay bool) error {
	store, err := config.NewStore()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var display engine.Display
	if fakeDisplay {
		display = x11.NewFakeDisplay()
	} else {
		d, err := x11.Open()
		if err != nil {
			return fmt.Errorf("open display: %w", err)
		}
		defer d.Close()
		display = d
	}

	states, err := openStateStore()
	if err != nil {
		return err
	}
	defer states.Close()

	if snap, err := states.Read(); err != nil {
		rlog.Warnf("hildon-desktop: cannot read prior session state: %v", err)
	} else if snap.CrashedPreviously() {
		rlog.Warnf("hildon-desktop: prior session did not shut down cleanly (last state %s, rotation %d)",
			snap.LastState, snap.LastRotation)
	}

	rm := engine.New(display, store, time.Now)

	firstMapped := false
	rm.Dispatcher().Subscribe(engine.EventStateChanged, engine.ListenerFunc(func(e engine.Event) {
		p, ok := e.Payload.(engine.StatePayload)
		if !ok {
			return
		}
		if !firstMapped && p.Previous == engine.StateUndefined {
			firstMapped = true
			if err := states.MarkFirstMap(time.Now()); err != nil {
				rlog.Warnf("hildon-desktop: %v", err)
			}
		}
		if err := states.SaveState(p.State.String(), int(rm.Rotation())); err != nil {
			rlog.Warnf("hildon-desktop: %v", err)
		}
	}))

	if debugAddr != "" {
		server, err := debugws.Listen(debugAddr)
		if err != nil {
			return fmt.Errorf("debugws listen: %w", err)
		}
		server.Attach(rm)
		server.StreamFrames(50 * time.Millisecond)
		go func() {
			if err := server.Serve(); err != nil {
				rlog.Warnf("hildon-desktop: debugws serve: %v", err)
			}
		}()
		defer server.Close()
		rlog.Infof("hildon-desktop: debug endpoint on %s", server.Addr())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for s := range sigc {
			if s == syscall.SIGHUP {
				rm.Post(func() {
					if err := store.Reload(); err != nil {
						rlog.Warnf("hildon-desktop: config reload: %v", err)
					}
				})
				continue
			}
			cancel()
			return
		}
	}()

	rm.SetState(engine.StateHome)

	err = rm.Run(ctx)
	if markErr := states.MarkCleanShutdown(time.Now()); markErr != nil {
		rlog.Warnf("hildon-desktop: %v", markErr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func openStateStore() (*statestore.Store, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolve cache dir: %w", err)
	}
	dir = filepath.Join(dir, "hildon-desktop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return statestore.Open(filepath.Join(dir, "state.db"))
}
