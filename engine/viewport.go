// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/viewport.go
// Summary: The input-viewport engine. Computes the union of
// rectangles that should accept pointer input and propagates it to the X
// server through an idle-coalesced callback.

package engine

import (
	"time"

	"github.com/android-808/hildon-desktop/internal/rlog"
)

var viewportCoalesceDelay = 4 * time.Millisecond

// ViewportInputs carries the widget rectangles supplied by the caller (the
// out-of-scope window manager / launcher) since their geometry is
// theme-dependent; the render manager only decides whether each is included.
type ViewportInputs struct {
	LeftButton, RightButton, EditButton Rect
	StatusArea                          Rect
	ForegroundNotes                     []Rect
	DialogRects                         []Rect
	AppletRects                         []Rect
	PreviewNotes                        []Rect
	LeftButtonVisible, RightButtonVisible, EditButtonVisible bool
	AnyModalBlocker                                          bool
}

// computeInputRegion decides which rectangles accept pointer input in the
// current state.
func (rm *RenderManager) computeInputRegion(in ViewportInputs) []Rect {
	if rm.hasInputBlocker {
		return []Rect{{X: 0, Y: 0, W: rm.screen.W, H: rm.screen.H}}
	}

	var rects []Rect
	if in.AnyModalBlocker {
		// Start empty: only the note, applet, and preview-note carve-outs
		// below are added.
	} else if rm.state.NeedWholeScreenInput() {
		return []Rect{{X: 0, Y: 0, W: rm.screen.W, H: rm.screen.H}}
	} else {
		if in.LeftButtonVisible {
			rects = append(rects, in.LeftButton)
		}
		if in.RightButtonVisible && !rm.state.IsApp() {
			rects = append(rects, in.RightButton)
		}
		if in.EditButtonVisible {
			rects = append(rects, in.EditButton)
		}
		if rm.state.IsPortrait() || (rm.state.IsApp() && rm.blurFlags.Has(BlurBackground)) {
			rects = append(rects, in.StatusArea)
		}
	}

	if rm.state.UngrabNotes() {
		rects = append(rects, in.ForegroundNotes...)
		rects = append(rects, in.DialogRects...)
	}

	if rm.state.NeedDesktop() {
		rects = append(rects, in.AppletRects...)
	}

	rects = append(rects, in.PreviewNotes...)

	return rects
}

// RebuildInputViewport recomputes new_input_viewport from the last inputs
// provided to SetViewportInputs and arms the coalescing idle unless one is
// already pending.
func (rm *RenderManager) RebuildInputViewport() {
	rm.newViewport = rm.computeInputRegion(rm.lastInputs)
	rm.viewportDirty = true
	rm.scheduleViewportIdle()
}

// SetViewportInputs records the externally-owned widget rectangles and
// immediately recomputes the viewport.
func (rm *RenderManager) SetViewportInputs(in ViewportInputs) {
	rm.lastInputs = in
	rm.RebuildInputViewport()
}

func (rm *RenderManager) scheduleViewportIdle() {
	if rm.viewportPending {
		return
	}
	rm.viewportPending = true
	// The timer goroutine never touches the manager directly; it hands the
	// idle back to the owning loop.
	rm.viewportIdleTimer = time.AfterFunc(viewportCoalesceDelay, func() {
		rm.Post(rm.runViewportIdle)
	})
}

// runViewportIdle is the idle callback itself: it is the only place
// current_input_viewport is replaced, so it always names the last region
// actually handed to X.
func (rm *RenderManager) runViewportIdle() {
	rm.viewportPending = false
	if !rm.viewportDirty {
		return
	}
	if regionsEqual(rm.currentViewport, rm.newViewport) {
		rm.viewportDirty = false
		return
	}
	if rm.display != nil {
		if err := rm.display.SetInputRegion(rm.newViewport); err != nil {
			rlog.Warnf("render-manager: set input region failed, will retry on next rebuild: %v", err)
			return
		}
	}
	rm.currentViewport = rm.newViewport
	rm.viewportDirty = false
}

func regionsEqual(a, b []Rect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FlipInputViewport implements the "flip-on-rotation" rule: transpose every
// rectangle in the current viewport and push the transposed region as the
// new one, so input keeps routing correctly through a rotation's black
// period. The push is synchronous; waiting for the idle would leave a
// mis-routed region exactly when the screen is mid-rotation. Calling it
// twice restores the viewport bit-for-bit.
func (rm *RenderManager) FlipInputViewport() {
	flipped := make([]Rect, len(rm.currentViewport))
	for i, r := range rm.currentViewport {
		flipped[i] = r.Transpose()
	}
	rm.newViewport = flipped
	rm.viewportDirty = true
	rm.runViewportIdle()
}
