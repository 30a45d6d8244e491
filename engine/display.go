// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/display.go
// Summary: Display is the engine's contract with the X server transport,
// implemented for real by the x11 package and by a fake in tests; the same
// testable-driver-abstraction shape this codebase uses elsewhere.

package engine

// Display is everything the render manager needs from an X11 connection.
// The x11 package's Display implementation backs this with real xgb calls;
// tests use a fake that just records what was asked of it.
type Display interface {
	// SetGroupOpacity sets a scene group's composited opacity, 0-255.
	SetGroupOpacity(g Group, opacity int)
	// SetGroupVisible shows or hides a scene group's composited output.
	SetGroupVisible(g Group, visible bool)
	// SetAnchor repositions a group's anchor point (for the applets zoom
	// effect's centered scale).
	SetAnchor(g Group, x, y int)
	// SetChequer toggles the dim checker pattern applied when a blurred
	// background also carries a video overlay, which cannot itself be
	// blurred.
	SetChequer(g Group, applied bool)

	// SetInputRegion programs the X shape extension's ShapeInput region for
	// the overlay window and the stage window to exactly rects.
	SetInputRegion(rects []Rect) error
	// ResetShapeBounding clears ShapeBounding back to None (full window),
	// called on entry to composited mode.
	ResetShapeBounding() error

	// Redirect/Unredirect implement composition bypass for a single client
	// window.
	RedirectClient(id ClientID) error
	UnredirectClient(id ClientID) error

	// EnableCompositing/DisableCompositing toggle the overlay window's
	// lifecycle for the fs_comp true/false transitions.
	EnableCompositing() error
	DisableCompositing() error

	// RotateScreen drives the external "rotate screen" transition primitive
	// the rotation controller delegates to.
	RotateScreen(r Rotation) error

	// GrabInput / UngrabInput implement the input blocker's process-wide
	// grab.
	GrabInput() error
	UngrabInput() error
}
