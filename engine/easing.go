// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/easing.go
// Summary: Easing functions shared by the blur vector's timeline.

package engine

// EasingFunc maps progress in [0,1] to an eased progress in [0,1].
type EasingFunc func(t float32) float32

// EaseLinear applies no easing.
func EaseLinear(t float32) float32 { return t }

// EaseSmoothstep is the default: a gentle S-curve with no flicker on entry.
func EaseSmoothstep(t float32) float32 { return t * t * (3 - 2*t) }

// EaseSmootherstep has zero first and second derivatives at both ends.
func EaseSmootherstep(t float32) float32 { return t * t * t * (t*(t*6-15) + 10) }
