// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/rotation.go
// Summary: The rotation controller.

package engine

import "github.com/android-808/hildon-desktop/internal/rlog"

// SetRotation stores the new rotation, swaps the screen dimensions, drives
// the external rotate-screen primitive, flips the input viewport, and emits
// the rotated event.
func (rm *RenderManager) SetRotation(r Rotation) {
	if r == rm.rotation {
		return
	}
	rm.rotation = r
	rm.screen.W, rm.screen.H = rm.screen.H, rm.screen.W
	if rm.display != nil {
		if err := rm.display.RotateScreen(r); err != nil {
			rlog.Warnf("render-manager: rotate_screen(%d) failed: %v", r, err)
		}
	}
	rm.FlipInputViewport()
	rm.dispatcher.Broadcast(Event{Type: EventRotationChanged, Payload: RotationPayload{Rotation: r}})
	rm.dispatcher.Broadcast(Event{Type: EventRotated, Payload: RotationPayload{Rotation: r}})
}

// Rotation returns the controller's current orientation.
func (rm *RenderManager) Rotation() Rotation { return rm.rotation }

// SetStatePortrait lifts the current state to its portrait sibling. It fails
// (is a no-op) if the current state is not portrait-capable.
func (rm *RenderManager) SetStatePortrait() {
	if !rm.state.IsPortraitCapable() {
		rlog.Warnf("render-manager: set_state_portrait ignored, %s is not portrait-capable", rm.state)
		return
	}
	sibling := rm.state.portraitSibling()
	if sibling == StateUndefined {
		return
	}
	rm.SetState(sibling)
}

// SetStateUnportrait projects the current portrait state back to landscape.
// It fails (is a no-op) if the current state is not portrait.
func (rm *RenderManager) SetStateUnportrait() {
	if !rm.state.IsPortrait() {
		rlog.Warnf("render-manager: set_state_unportrait ignored, %s is not portrait", rm.state)
		return
	}
	sibling := rm.state.landscapeSibling()
	if sibling == StateUndefined {
		return
	}
	rm.SetState(sibling)
}

// NotePortraitForecast records a predictive portrait-forecast hint from a
// client that has not yet mapped; if no dissenting dialog/info-note is
// visible, rotation begins speculatively ahead of the map event.
func (rm *RenderManager) NotePortraitForecast(client ClientID) {
	if rm.anyDissentingNoteVisible() {
		return
	}
	rm.forecastedRotationClient = client
	rm.hasForecastedRotation = true
	rm.SetStatePortrait()
}

func (rm *RenderManager) anyDissentingNoteVisible() bool {
	for _, c := range rm.clients {
		if c.Kind == ClientDialog || c.Kind == ClientNote {
			if a, ok := rm.scene.Lookup(c.Actor); ok && a.Visible && !c.PortraitSupported {
				return true
			}
		}
	}
	return false
}

// anyClientWantsPortrait reports whether any registered client still has a
// non-PortraitNone request outstanding, the "should_be_portrait" check the
// property handler consults before dropping out of a portrait state.
func (rm *RenderManager) anyClientWantsPortrait() bool {
	for _, c := range rm.clients {
		if c.PortraitRequested != PortraitNone {
			return true
		}
	}
	return false
}

// ReverseForecast reverses a speculative portrait rotation begun from
// NotePortraitForecast when its originating client unregisters before any
// client actually demands portrait. It fires only for the forecasting
// client itself going away while no one else has requested portrait; any
// other client unregistering leaves the rotation alone.
func (rm *RenderManager) ReverseForecast(unregistering ClientID) {
	if !rm.hasForecastedRotation || rm.forecastedRotationClient != unregistering {
		return
	}
	rm.hasForecastedRotation = false
	for _, c := range rm.clients {
		if c.PortraitRequested != PortraitNone {
			return // someone else still wants portrait; leave rotation alone
		}
	}
	rm.SetStateUnportrait()
}
