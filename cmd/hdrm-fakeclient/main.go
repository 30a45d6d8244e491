// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/hdrm-fakeclient/main.go
// Summary: Implements a PTY-backed dummy process standing in for a
// "compositor client" driving map/unmap/register/unregister events, for
// integration tests and manual exercising of restack sequences without a
// real X11 window manager.
// Usage: Run standalone; it registers one fake client with a render manager
// built against the fake display, maps it, waits on the child process, then
// unregisters on exit.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/google/uuid"

	"github.com/android-808/hildon-desktop/config"
	"github.com/android-808/hildon-desktop/engine"
	"github.com/android-808/hildon-desktop/x11"
)

func main() {
	kindFlag := flag.String("kind", "app", "client kind: app, dialog, menu, note, applet, status-area, desktop")
	geom := flag.String("geom", "0,0,800,480", "x,y,w,h geometry")
	shell := flag.String("shell", os.Getenv("SHELL"), "command to run as the fake client's backing process")
	state := flag.String("state", "App", "render manager state to enter after mapping")
	flag.Parse()

	if *shell == "" {
		*shell = "/bin/sh"
	}

	var x, y, w, h int
	if _, err := fmt.Sscanf(*geom, "%d,%d,%d,%d", &x, &y, &w, &h); err != nil {
		fmt.Fprintf(os.Stderr, "hdrm-fakeclient: invalid -geom %q: %v\n", *geom, err)
		os.Exit(1)
	}
	rect := engine.Rect{X: x, Y: y, W: w, H: h}

	kind, err := parseKind(*kindFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hdrm-fakeclient: %v\n", err)
		os.Exit(1)
	}

	store := config.NewStoreFromConfig(nil)
	rm := engine.New(x11.NewFakeDisplay(), store, time.Now)
	rm.SetScreenSize(w, h)

	client := &engine.Client{
		ID:         engine.ClientID(uuid.New()),
		Kind:       kind,
		Rect:       rect,
		Maximized:  rect.X == 0 && rect.Y == 0,
		Fullscreen: rect.X == 0 && rect.Y == 0,
	}
	id := rm.RegisterClient(client, engine.GroupHomeBlur, rect)
	fmt.Printf("hdrm-fakeclient: registered client %v as %s at %+v\n", id, *kindFlag, rect)

	target, err := parseState(*state)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hdrm-fakeclient: %v\n", err)
		os.Exit(1)
	}
	rm.SetState(target)
	rm.MapClient(id)
	fmt.Printf("hdrm-fakeclient: mapped, state now %s, fs_comp=%v\n", rm.State(), rm.FsComp())

	cmd := exec.Command(*shell)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hdrm-fakeclient: pty start: %v\n", err)
		os.Exit(1)
	}
	defer ptmx.Close()

	go io.Copy(os.Stdout, ptmx)
	go io.Copy(ptmx, os.Stdin)

	if err := cmd.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "hdrm-fakeclient: backing process exited: %v\n", err)
	}

	rm.UnmapClient(id)
	rm.UnregisterClient(id)
	fmt.Println("hdrm-fakeclient: unregistered")
}

func parseKind(s string) (engine.ClientKind, error) {
	switch s {
	case "app":
		return engine.ClientApp, nil
	case "dialog":
		return engine.ClientDialog, nil
	case "menu":
		return engine.ClientMenu, nil
	case "note":
		return engine.ClientNote, nil
	case "applet":
		return engine.ClientApplet, nil
	case "status-area":
		return engine.ClientStatusArea, nil
	case "desktop":
		return engine.ClientDesktop, nil
	}
	return 0, fmt.Errorf("unknown -kind %q", s)
}

func parseState(s string) (engine.State, error) {
	for st := engine.StateUndefined; st <= engine.StateLoadingSubwindow; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown -state %q", s)
}
