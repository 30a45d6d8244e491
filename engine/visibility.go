// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/visibility.go
// Summary: SetVisibilities, the rectangle-subtraction
// visibility engine.

package engine

// visibleAgainstBlockers recursively determines the sub-rectangles of rect
// that are not covered by any rectangle in blockers:
//   - fully inside a blocker on both axes  -> invisible (nil)
//   - straddles a blocker on Y             -> split into top/bottom halves
//   - straddles a blocker on X only        -> keep the non-overlapping side
func visibleAgainstBlockers(rect Rect, blockers []Rect) []Rect {
	if rect.Empty() || len(blockers) == 0 {
		if rect.Empty() {
			return nil
		}
		return []Rect{rect}
	}

	b := blockers[0]
	rest := blockers[1:]

	insideX := rect.X >= b.X && rect.X+rect.W <= b.X+b.W
	insideY := rect.Y >= b.Y && rect.Y+rect.H <= b.Y+b.H
	if insideX && insideY {
		return nil
	}

	overlapsY := rect.Y < b.Y+b.H && rect.Y+rect.H > b.Y
	overlapsX := rect.X < b.X+b.W && rect.X+rect.W > b.X
	if !overlapsX || !overlapsY {
		return visibleAgainstBlockers(rect, rest)
	}

	if rect.Y < b.Y && rect.Y+rect.H > b.Y+b.H {
		top := Rect{X: rect.X, Y: rect.Y, W: rect.W, H: b.Y - rect.Y}
		bottom := Rect{X: rect.X, Y: b.Y + b.H, W: rect.W, H: (rect.Y + rect.H) - (b.Y + b.H)}
		var out []Rect
		out = append(out, visibleAgainstBlockers(top, rest)...)
		out = append(out, visibleAgainstBlockers(bottom, rest)...)
		return out
	}

	if insideX {
		if rect.Y < b.Y {
			clipped := Rect{X: rect.X, Y: rect.Y, W: rect.W, H: b.Y - rect.Y}
			return visibleAgainstBlockers(clipped, rest)
		}
		clipped := Rect{X: rect.X, Y: b.Y + b.H, W: rect.W, H: (rect.Y + rect.H) - (b.Y + b.H)}
		return visibleAgainstBlockers(clipped, rest)
	}

	// Straddles along X alone: keep the side that doesn't overlap.
	if rect.X < b.X {
		clipped := Rect{X: rect.X, Y: rect.Y, W: b.X - rect.X, H: rect.H}
		return visibleAgainstBlockers(clipped, rest)
	}
	clipped := Rect{X: b.X + b.W, Y: rect.Y, W: (rect.X + rect.W) - (b.X + b.W), H: rect.H}
	return visibleAgainstBlockers(clipped, rest)
}

// IsVisible reports whether any part of rect survives the blocker list.
func IsVisible(rect Rect, blockers []Rect) bool {
	return len(visibleAgainstBlockers(rect, blockers)) > 0
}

// SetVisibilities hides actors whose geometry is fully covered by opaque
// overlays or siblings. rotating marks actors currently being
// rotated out of view, which are left visible rather than hidden to avoid a
// flicker frame.
func (rm *RenderManager) SetVisibilities(rotating map[ActorID]bool) {
	screen := Rect{X: 0, Y: 0, W: rm.screen.W, H: rm.screen.H}

	var blockers []Rect
	for _, a := range rm.scene.Children(GroupAppTop) {
		blockers = append(blockers, a.Rect)
	}

	fullscreenCovered := !IsVisible(screen, blockers)
	rm.blurGroupHidden = fullscreenCovered
	if rm.display != nil {
		rm.display.SetGroupVisible(GroupHomeBlur, !fullscreenCovered)
	}

	for _, a := range reverseActors(rm.scene.Children(GroupHomeBlur)) {
		if a.Parent == GroupBlurFront || a.OptedOut {
			continue
		}
		if IsVisible(a.Rect, blockers) {
			a.Visible = true
			if a.Opaque {
				blockers = append(blockers, a.Rect)
			}
			continue
		}
		if rotating[a.ID] {
			continue
		}
		a.Visible = false
	}

	anyFullscreen := rm.anyClientFullscreen()
	if anyFullscreen && (rm.state.IsApp() || rm.state == StateHome || rm.state == StateHomePortrait) {
		rm.hideBlurFront = true
		rm.statusAreaY = -rm.statusAreaHeight
	} else {
		rm.hideBlurFront = false
		rm.statusAreaY = 0
	}
	if rm.display != nil {
		rm.display.SetGroupVisible(GroupBlurFront, !rm.hideBlurFront)
	}

	rm.RebuildInputViewport()
}

func reverseActors(actors []*Actor) []*Actor {
	out := make([]*Actor, len(actors))
	for i, a := range actors {
		out[len(actors)-1-i] = a
	}
	return out
}

func (rm *RenderManager) anyClientFullscreen() bool {
	for _, a := range rm.scene.Children(GroupAppTop) {
		if a.Rect.X == 0 && a.Rect.Y == 0 && a.Rect.W == rm.screen.W && a.Rect.H == rm.screen.H {
			return true
		}
	}
	return false
}
