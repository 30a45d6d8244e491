// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import "testing"

func TestVisibleAgainstBlockersFullyCovered(t *testing.T) {
	rect := Rect{X: 10, Y: 10, W: 10, H: 10}
	blockers := []Rect{{X: 0, Y: 0, W: 100, H: 100}}
	if IsVisible(rect, blockers) {
		t.Fatalf("expected rect fully covered by blocker to be invisible")
	}
}

func TestVisibleAgainstBlockersNoOverlap(t *testing.T) {
	rect := Rect{X: 200, Y: 200, W: 10, H: 10}
	blockers := []Rect{{X: 0, Y: 0, W: 100, H: 100}}
	if !IsVisible(rect, blockers) {
		t.Fatalf("expected non-overlapping rect to remain visible")
	}
}

func TestVisibleAgainstBlockersYSplit(t *testing.T) {
	// blocker covers the vertical middle third; rect spans the whole height,
	// so both the top and bottom slivers should remain.
	rect := Rect{X: 0, Y: 0, W: 10, H: 30}
	blockers := []Rect{{X: 0, Y: 10, W: 10, H: 10}}
	remaining := visibleAgainstBlockers(rect, blockers)
	if len(remaining) != 2 {
		t.Fatalf("expected 2 remaining rects after Y-split, got %d: %+v", len(remaining), remaining)
	}
}

func TestBlockersTransitiveInvariant(t *testing.T) {
	// If an actor ends up hidden, the union of blockers fully covers its
	// clipped geometry.
	rect := Rect{X: 5, Y: 5, W: 5, H: 5}
	blockers := []Rect{{X: 0, Y: 0, W: 20, H: 20}}
	if IsVisible(rect, blockers) {
		t.Fatalf("expected rect to be hidden by a blocker that fully covers it")
	}
}
