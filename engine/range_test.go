// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import "testing"

func TestRangeSet(t *testing.T) {
	var r Range
	r.Set(5)
	if r.a != 5 || r.b != 5 || r.current != 5 {
		t.Fatalf("Set did not pin all three fields: %+v", r)
	}
	if !r.Equal() {
		t.Fatalf("expected Equal after Set")
	}
}

func TestRangeNextAnchorsOnCurrent(t *testing.T) {
	var r Range
	r.Set(0)
	r.Next(10)
	r.Interpolate(0.5)
	if r.Current() != 5 {
		t.Fatalf("expected current=5 at t=0.5, got %v", r.Current())
	}

	// Re-target mid-flight: the new start must be the current value, not
	// the old target, or a re-target would cause a visible jump.
	r.Next(20)
	if r.a != 5 {
		t.Fatalf("expected re-target to anchor on current value 5, got a=%v", r.a)
	}
}

func TestRangeInterpolateClampsT(t *testing.T) {
	var r Range
	r.Set(0)
	r.Next(10)
	r.Interpolate(-1)
	if r.Current() != 0 {
		t.Fatalf("expected clamp to a at t<0, got %v", r.Current())
	}
	r.Interpolate(2)
	if r.Current() != 10 {
		t.Fatalf("expected clamp to b at t>1, got %v", r.Current())
	}
}

func TestRangeMonotonicityDuringAnimation(t *testing.T) {
	var r Range
	r.Set(3)
	r.Next(9)
	for i := 0; i <= 10; i++ {
		progress := float32(i) / 10
		r.Interpolate(progress)
		if r.Current() < 3 || r.Current() > 9 {
			t.Fatalf("current %v escaped [3,9] at t=%v", r.Current(), progress)
		}
	}
}
