// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/blur.go
// Summary: The blur-parameter vector and its single
// vector-wide transition timeline.

package engine

import (
	"time"

	"github.com/android-808/hildon-desktop/config"
)

// BlurFlag is one bit of the BlurFlags set.
type BlurFlag int

const (
	BlurHome BlurFlag = 1 << iota
	ShowTaskNav
	BlurBackground
	ZoomForLauncher
	ZoomForLauncherSubmenu
	ZoomForHome
	ZoomForTaskNav
	ShowApplets
)

// BlurFlags is a set over the BlurFlag bits.
type BlurFlags int

func (f BlurFlags) Has(bit BlurFlag) bool { return f&BlurFlags(bit) != 0 }

func (f BlurFlags) with(bit BlurFlag) BlurFlags { return f | BlurFlags(bit) }

// zoomFlagCount sums the flags that zoom the home view away from the user.
// ZoomForHome is deliberately not among them: it only selects the task-nav
// zoom target and leaves the home zoom and radius untouched.
func (f BlurFlags) zoomFlagCount() int {
	n := 0
	for _, bit := range []BlurFlag{ZoomForLauncher, ZoomForLauncherSubmenu, ZoomForTaskNav} {
		if f.Has(bit) {
			n++
		}
	}
	return n
}

// blurTargets computes the BlurFlags that should hold for a transition into
// new, given the flags that held before; retaining only BlurBackground,
// which update_blur_state (restack.go) recomputes independently every time.
func blurTargets(new State, previous BlurFlags) BlurFlags {
	flags := previous & BlurFlags(BlurBackground)

	switch new {
	case StateHome, StateHomePortrait:
		flags = flags.with(ZoomForHome)
	case StateTaskNav:
		flags = flags.with(BlurHome).with(ZoomForTaskNav).with(ShowTaskNav)
	case StateLauncher:
		flags = flags.with(BlurHome).with(ZoomForLauncher)
		if previous.Has(ShowTaskNav) {
			flags = flags.with(ZoomForTaskNav)
		}
	case StateHomeEdit, StateHomeEditDialog:
		flags = flags.with(BlurHome)
	case StateLoading, StateLoadingSubwindow:
		if previous.Has(BlurHome) {
			flags = flags.with(BlurHome)
		}
	}

	if new.ShowApplets() {
		flags = flags.with(ShowApplets)
	}

	return flags
}

// BlurVector bundles the eight animated scalars the blur group, task
// navigator, and applets overlay read every frame.
type BlurVector struct {
	HomeRadius      Range
	HomeSaturation  Range
	HomeBrightness  Range
	HomeZoom        Range
	TaskNavOpacity  Range
	TaskNavZoom     Range
	AppletsOpacity  Range
	AppletsZoom     Range

	duration  time.Duration
	easing    EasingFunc
	startTime time.Time
	playing   bool
}

// NewBlurVector creates a vector with every Range at its resting default.
func NewBlurVector() *BlurVector {
	return &BlurVector{
		HomeRadius:     NewRange(0),
		HomeSaturation: NewRange(1),
		HomeBrightness: NewRange(1),
		HomeZoom:       NewRange(1),
		TaskNavOpacity: NewRange(0),
		TaskNavZoom:    NewRange(1),
		AppletsOpacity: NewRange(0),
		AppletsZoom:    NewRange(1),
		easing:         EaseSmoothstep,
	}
}

func (v *BlurVector) ranges() [8]*Range {
	return [8]*Range{
		&v.HomeRadius, &v.HomeSaturation, &v.HomeBrightness, &v.HomeZoom,
		&v.TaskNavOpacity, &v.TaskNavZoom, &v.AppletsOpacity, &v.AppletsZoom,
	}
}

// SetBlur retargets every Range in the vector and (re)starts the
// transition timeline if any Range actually needs to move. now is the
// engine's current time; cfg is a snapshot so retargeting never blocks on
// the live config store's lock.
func (v *BlurVector) SetBlur(flags BlurFlags, cfg config.Config, now time.Time) (started bool) {
	v.playing = false

	v.HomeRadius.Next(0)
	v.HomeSaturation.Next(1)
	v.HomeBrightness.Next(1)
	v.HomeZoom.Next(1)
	v.TaskNavOpacity.Next(0)
	v.TaskNavZoom.Next(1)
	v.AppletsOpacity.Next(0)
	v.AppletsZoom.Next(1)

	if flags.Has(BlurHome) || flags.Has(BlurBackground) {
		radiusKey := "radius"
		if v.zoomActive(flags) {
			radiusKey = "radius_more"
		}
		v.HomeSaturation.Next(float32(cfg.GetFloat("home", "saturation", 0.6)))
		v.HomeBrightness.Next(float32(cfg.GetFloat("home", "brightness", 0.8)))
		v.HomeRadius.Next(float32(cfg.GetFloat("home", radiusKey, 6)))
	}

	z := float32(cfg.GetFloat("home", "zoom", 0.92))
	n := float32(flags.zoomFlagCount())
	if n > 0 {
		v.HomeZoom.Next(1 - (1-z)*(n+1))
		v.AppletsZoom.Next(float32(cfg.GetFloat("home", "zoom_applets", 0.95)))
	}

	switch {
	case flags.Has(ZoomForHome):
		v.TaskNavZoom.Next(float32(cfg.GetFloat("task_nav", "zoom_for_home", 0.9)))
	case flags.Has(ZoomForLauncherSubmenu):
		zoom := float32(cfg.GetFloat("task_nav", "zoom", 0.85))
		v.TaskNavZoom.Next(1 - 2*(1-zoom))
	default:
		v.TaskNavZoom.Next(float32(cfg.GetFloat("task_nav", "zoom", 0.85)))
	}
	if flags.Has(ShowTaskNav) {
		v.TaskNavOpacity.Next(1)
	}

	if flags.Has(ShowApplets) {
		v.AppletsOpacity.Set(1)
	}

	// Evaluate t=0 immediately so the first rendered frame never flickers.
	for _, r := range v.ranges() {
		r.Interpolate(0)
	}

	allEqual := true
	for _, r := range v.ranges() {
		if !r.Equal() {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	v.duration = time.Duration(cfg.GetInt("blur", "duration", 250)) * time.Millisecond
	v.startTime = now
	v.playing = true
	return true
}

func (v *BlurVector) zoomActive(flags BlurFlags) bool {
	return flags.zoomFlagCount() > 0
}

// Update advances every Range to progress t computed from now, returning
// whether the timeline is still in flight afterward.
func (v *BlurVector) Update(now time.Time) (playing bool) {
	if !v.playing {
		return false
	}
	if v.duration <= 0 {
		for _, r := range v.ranges() {
			r.Interpolate(1)
		}
		v.playing = false
		return false
	}
	elapsed := now.Sub(v.startTime)
	if elapsed >= v.duration {
		for _, r := range v.ranges() {
			r.Interpolate(1)
		}
		v.playing = false
		return false
	}
	t := float32(elapsed) / float32(v.duration)
	eased := v.easing(t)
	for _, r := range v.ranges() {
		r.Interpolate(eased)
	}
	return true
}

// Playing reports whether the timeline is mid-transition.
func (v *BlurVector) Playing() bool { return v.playing }

// Stop halts the timeline in place; the current interpolated values are left
// as-is so a subsequent SetBlur anchors from exactly what was on screen.
func (v *BlurVector) Stop() { v.playing = false }
