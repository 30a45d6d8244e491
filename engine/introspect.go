// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/introspect.go
// Summary: Read-only accessors for external observers (the debug WebSocket
// endpoint, the terminal inspector) that must never become an input path
// into the engine; every method here is a snapshot, not a mutator.

package engine

// BlurSnapshot is a point-in-time copy of every Range's current value, for
// display or streaming. It carries no interpolation state of its own.
type BlurSnapshot struct {
	HomeRadius     float32
	HomeSaturation float32
	HomeBrightness float32
	HomeZoom       float32
	TaskNavOpacity float32
	TaskNavZoom    float32
	AppletsOpacity float32
	AppletsZoom    float32
	Playing        bool
}

// BlurSnapshot copies out the blur vector's current values.
func (rm *RenderManager) BlurSnapshot() BlurSnapshot {
	return BlurSnapshot{
		HomeRadius:     rm.blur.HomeRadius.Current(),
		HomeSaturation: rm.blur.HomeSaturation.Current(),
		HomeBrightness: rm.blur.HomeBrightness.Current(),
		HomeZoom:       rm.blur.HomeZoom.Current(),
		TaskNavOpacity: rm.blur.TaskNavOpacity.Current(),
		TaskNavZoom:    rm.blur.TaskNavZoom.Current(),
		AppletsOpacity: rm.blur.AppletsOpacity.Current(),
		AppletsZoom:    rm.blur.AppletsZoom.Current(),
		Playing:        rm.blur.Playing(),
	}
}

// BlurFlagsSnapshot returns the BlurFlags set computed by the most recent transition.
func (rm *RenderManager) BlurFlagsSnapshot() BlurFlags { return rm.blurFlags }

// CurrentViewport returns the region last actually handed to the X server,
// not the possibly-still-pending new_input_viewport.
func (rm *RenderManager) CurrentViewport() []Rect {
	return append([]Rect(nil), rm.currentViewport...)
}

// TitlebarButtonsState reports which button set the titlebar should show for the
// current state.
func (rm *RenderManager) TitlebarButtonsState() TitlebarButtons { return rm.titlebarButtons }

// SceneGroupChildren lists every actor directly parented to group, in the
// same bottom-to-top order restack.go reasons about. Intended for read-only
// inspection; callers must not mutate the returned actors' Parent field
// outside Scene.Reparent.
func (rm *RenderManager) SceneGroupChildren(g Group) []*Actor {
	return rm.scene.Children(g)
}

// BlurFrontParent and HomeFrontParent expose the two invariant-governed
// invariant-governed parent choices for display.
func (rm *RenderManager) BlurFrontParent() Group { return rm.scene.BlurFrontParent() }
func (rm *RenderManager) HomeFrontParent() Group { return rm.scene.HomeFrontParent() }

// ClientCount reports how many clients are currently registered.
func (rm *RenderManager) ClientCount() int { return len(rm.clients) }

// TakeBlurredContentsChanged reports whether the set of visible home_blur
// children changed since the last call, clearing the flag; the signal the
// blur group consumes to rebuild its source texture after a restack.
func (rm *RenderManager) TakeBlurredContentsChanged() bool {
	changed := rm.blurredContentsChanged
	rm.blurredContentsChanged = false
	return changed
}

// StatusAreaY reports the status-area client's current y offset: 0 when it
// is on screen, -height while a fullscreen client shoves it away.
func (rm *RenderManager) StatusAreaY() int { return rm.statusAreaY }
