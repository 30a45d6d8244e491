// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: x11/display.go
// Summary: The real engine.Display implementation, backed by a raw xgb
// connection plus the shape, xfixes, composite, and damage extensions.

package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/composite"
	"github.com/BurntSushi/xgb/damage"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xfixes"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/android-808/hildon-desktop/engine"
	"github.com/android-808/hildon-desktop/internal/rlog"
)

// Display is the production engine.Display, wrapping one X11 connection and
// the overlay/stage windows the render manager owns.
type Display struct {
	conn   *xgb.Conn
	screen *xproto.ScreenInfo

	overlay xproto.Window
	stage   xproto.Window

	atoms map[string]xproto.Atom

	mu         sync.Mutex
	damageMaps map[xproto.Window]damage.Damage
}

// Open establishes the X connection and queries the shape, xfixes,
// composite, and damage extensions the input-viewport and composition
// paths depend on.
func Open() (*Display, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}

	if err := shape.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: shape extension: %w", err)
	}
	if err := xfixes.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: xfixes extension: %w", err)
	}
	if _, err := xfixes.QueryVersion(conn, 4, 0).Reply(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: xfixes query-version: %w", err)
	}
	if err := composite.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: composite extension: %w", err)
	}
	if err := damage.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("x11: damage extension: %w", err)
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	d := &Display{
		conn:       conn,
		screen:     screen,
		atoms:      make(map[string]xproto.Atom),
		damageMaps: make(map[xproto.Window]damage.Damage),
	}
	return d, nil
}

// Close tears down the connection.
func (d *Display) Close() { d.conn.Close() }

func (d *Display) atom(name string) (xproto.Atom, error) {
	if a, ok := d.atoms[name]; ok {
		return a, nil
	}
	reply, err := xproto.InternAtom(d.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	d.atoms[name] = reply.Atom
	return reply.Atom, nil
}

// SetStageWindow / SetOverlayWindow register the two windows that
// SetInputRegion and ResetShapeBounding program. They are created by the
// compositor's base initialization, outside this package's scope.
func (d *Display) SetStageWindow(w xproto.Window)   { d.stage = w }
func (d *Display) SetOverlayWindow(w xproto.Window)  { d.overlay = w }

// SetGroupOpacity, SetGroupVisible, SetAnchor, and SetChequer mutate the
// scene-graph groups. The actual actor/group handles are owned by the
// out-of-scope scene-graph renderer; this package only needs to exist as the
// X11 transport boundary, so these are no-ops here beyond logging; a real
// deployment wires them through to the renderer's IPC channel.
func (d *Display) SetGroupOpacity(g engine.Group, opacity int) {
	rlog.Debugf("x11: group %s opacity -> %d", g, opacity)
}

func (d *Display) SetGroupVisible(g engine.Group, visible bool) {
	rlog.Debugf("x11: group %s visible -> %v", g, visible)
}

func (d *Display) SetAnchor(g engine.Group, x, y int) {
	rlog.Debugf("x11: group %s anchor -> (%d,%d)", g, x, y)
}

func (d *Display) SetChequer(g engine.Group, applied bool) {
	rlog.Debugf("x11: group %s chequer -> %v", g, applied)
}

// SetInputRegion creates an XFixes region from rects and assigns it as the
// ShapeInput region on both the overlay and stage windows. The region is
// created and destroyed within this single call; no region handle is
// retained past it.
func (d *Display) SetInputRegion(rects []engine.Rect) error {
	region, err := xfixes.NewRegionId(d.conn)
	if err != nil {
		return fmt.Errorf("x11: allocate region: %w", err)
	}

	wireRects := make([]xproto.Rectangle, len(rects))
	for i, r := range rects {
		wireRects[i] = xproto.Rectangle{
			X: int16(r.X), Y: int16(r.Y), Width: uint16(r.W), Height: uint16(r.H),
		}
	}
	if err := xfixes.CreateRegionChecked(d.conn, region, wireRects).Check(); err != nil {
		return fmt.Errorf("x11: create region: %w", err)
	}
	defer xfixes.DestroyRegionChecked(d.conn, region).Check()

	for _, win := range []xproto.Window{d.overlay, d.stage} {
		if win == 0 {
			continue
		}
		if err := xfixes.SetWindowShapeRegionChecked(
			d.conn, win, shape.SkInput, 0, 0, xfixes.Region(region),
		).Check(); err != nil {
			return fmt.Errorf("x11: set shape region on window %d: %w", win, err)
		}
	}
	return nil
}

// ResetShapeBounding clears ShapeBounding on the stage window back to None
// (full window) on entry to composited mode.
func (d *Display) ResetShapeBounding() error {
	if d.stage == 0 {
		return nil
	}
	return shape.MaskChecked(d.conn, shape.SoSet, shape.SkBounding, d.stage, 0, 0, 0).Check()
}

// RedirectClient / UnredirectClient drive per-client composite redirection
// for the composition bypass.
func (d *Display) RedirectClient(id engine.ClientID) error {
	win, ok := d.windowFor(id)
	if !ok {
		return nil
	}
	if err := composite.RedirectWindowChecked(d.conn, win, composite.RedirectAutomatic).Check(); err != nil {
		return fmt.Errorf("x11: redirect window %d: %w", win, err)
	}
	dmg, err := damage.NewDamageId(d.conn)
	if err != nil {
		return fmt.Errorf("x11: allocate damage id: %w", err)
	}
	if err := damage.CreateChecked(d.conn, dmg, xproto.Drawable(win), damage.ReportLevelNonEmpty).Check(); err != nil {
		return fmt.Errorf("x11: track damage on window %d: %w", win, err)
	}
	d.mu.Lock()
	d.damageMaps[win] = dmg
	d.mu.Unlock()
	return nil
}

func (d *Display) UnredirectClient(id engine.ClientID) error {
	win, ok := d.windowFor(id)
	if !ok {
		return nil
	}
	d.mu.Lock()
	dmg, tracked := d.damageMaps[win]
	delete(d.damageMaps, win)
	d.mu.Unlock()
	if tracked {
		_ = damage.DestroyChecked(d.conn, dmg).Check()
	}
	if err := composite.UnredirectWindowChecked(d.conn, win, composite.RedirectAutomatic).Check(); err != nil {
		return fmt.Errorf("x11: unredirect window %d: %w", win, err)
	}
	return nil
}

// windowFor resolves a client handle to its X window. The mapping itself is
// owned by the out-of-scope window manager; this is the seam where it would
// be plugged in.
func (d *Display) windowFor(id engine.ClientID) (xproto.Window, bool) {
	return 0, false
}

// EnableCompositing / DisableCompositing drive the overlay window
// lifecycle.
func (d *Display) EnableCompositing() error {
	if d.overlay != 0 {
		return nil
	}
	reply, err := composite.GetOverlayWindow(d.conn, d.screen.Root).Reply()
	if err != nil {
		return fmt.Errorf("x11: get overlay window: %w", err)
	}
	d.overlay = reply.OverlayWin
	return nil
}

func (d *Display) DisableCompositing() error {
	if d.overlay == 0 {
		return nil
	}
	if err := composite.ReleaseOverlayWindowChecked(d.conn, d.screen.Root).Check(); err != nil {
		return fmt.Errorf("x11: release overlay window: %w", err)
	}
	d.overlay = 0
	return nil
}

// RotateScreen is a placeholder for the external "rotate screen" transition
// primitive (component I); the real pixel rotation is driven by the
// scene-graph renderer, out of this package's scope.
func (d *Display) RotateScreen(r engine.Rotation) error {
	rlog.Infof("x11: rotate screen -> %d degrees", r)
	return nil
}

// GrabInput / UngrabInput implement the input blocker's process-wide grab.
func (d *Display) GrabInput() error {
	cookie := xproto.GrabPointer(
		d.conn, true, d.screen.Root,
		xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		d.screen.Root, xproto.CursorNone, xproto.TimeCurrentTime,
	)
	reply, err := cookie.Reply()
	if err != nil {
		return fmt.Errorf("x11: grab pointer: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("x11: grab pointer failed with status %d", reply.Status)
	}
	return nil
}

func (d *Display) UngrabInput() error {
	return xproto.UngrabPointerChecked(d.conn, xproto.TimeCurrentTime).Check()
}

var _ engine.Display = (*Display)(nil)
