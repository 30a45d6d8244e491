// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/inputblocker.go
// Summary: A one-shot, process-wide input grab with timeout
// fallback.

package engine

import (
	"time"

	"github.com/android-808/hildon-desktop/internal/rlog"
)

const inputBlockerTimeout = time.Second

// AddInputBlocker sets the blocker flag, claims the whole screen for input,
// and arms a one-second timeout after which RemoveInputBlocker runs
// automatically if no one called it first.
func (rm *RenderManager) AddInputBlocker() {
	rm.hasInputBlocker = true
	if rm.display != nil {
		_ = rm.display.GrabInput()
	}
	rm.RebuildInputViewport()
	if rm.inputBlockerTimer != nil {
		rm.inputBlockerTimer.Stop()
	}
	rm.inputBlockerTimer = time.AfterFunc(inputBlockerTimeout, func() {
		rm.Post(rm.RemoveInputBlocker)
	})
}

// RemoveInputBlocker cancels the timeout, clears the flag, and recomputes
// the viewport from the state-derived region.
func (rm *RenderManager) RemoveInputBlocker() {
	if rm.inputBlockerTimer != nil {
		rm.inputBlockerTimer.Stop()
		rm.inputBlockerTimer = nil
	}
	if !rm.hasInputBlocker {
		return
	}
	rm.hasInputBlocker = false
	if rm.display != nil {
		_ = rm.display.UngrabInput()
	}
	rm.RebuildInputViewport()
}

// HasInputBlocker reports whether a grab is currently active.
func (rm *RenderManager) HasInputBlocker() bool { return rm.hasInputBlocker }

// SetZoomed records whether an interactive zoom gesture (e.g. the task
// navigator's pinch-to-zoom) is in progress. CapturedEvent consults it so a
// zoom drag keeps receiving events even while the input blocker is armed.
func (rm *RenderManager) SetZoomed(zoomed bool) { rm.zoomed = zoomed }

// Zoomed reports whether an interactive zoom gesture is currently tracked.
func (rm *RenderManager) Zoomed() bool { return rm.zoomed }

// CapturedEvent is the stage-level captured-event hook: it reports
// whether an incoming input event should be swallowed rather than delivered.
// Every event is swallowed while the input blocker is active, except while a
// zoom gesture is in progress.
func (rm *RenderManager) CapturedEvent() bool {
	if !rm.hasInputBlocker {
		return false
	}
	if rm.zoomed {
		return false
	}
	rlog.Debugf("render-manager: input event blocked by input blocker")
	return true
}
