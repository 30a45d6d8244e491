// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/restack.go
// Summary: Restack maps the window-manager client stack onto
// the scene groups, and update_blur_state derives BlurBackground and the
// titlebar foreground decoration from the same scan.

package engine

import "time"

// ClientStack is the window manager's bottom-to-top client order, the sole
// input to Restack beyond the manager's own state.
type ClientStack []ClientID

var restackCoalesceDelay = 8 * time.Millisecond

// RequestRestack coalesces concurrent restack requests into one: the first
// caller arms a timer; a request arriving while one is already armed is a
// no-op until the armed timer fires.
func (rm *RenderManager) RequestRestack(stack ClientStack) {
	rm.pendingStack = stack
	if rm.restackTimer != nil {
		return
	}
	rm.restackTimer = time.AfterFunc(restackCoalesceDelay, func() {
		rm.Post(func() {
			rm.restackTimer = nil
			rm.Restack()
		})
	})
}

// Restack synchronizes the scene groups with the pending client stack
// immediately, for callers (SetState, tests) that need it to have happened
// before they continue.
func (rm *RenderManager) Restack() {
	before := visibleChildIDs(rm.scene.Children(GroupHomeBlur))

	// With no desktop client in the stack, no client is stacked below it.
	pastDesktop := true
	for _, cid := range rm.pendingStack {
		if c, ok := rm.clients[cid]; ok && !c.SelfStacking && c.Kind == ClientDesktop {
			pastDesktop = false
			break
		}
	}
	for _, cid := range rm.pendingStack {
		c, ok := rm.clients[cid]
		if !ok || c.SelfStacking {
			continue
		}
		if c.Kind == ClientDesktop {
			pastDesktop = true
			continue
		}
		a, ok := rm.scene.Lookup(c.Actor)
		if !ok {
			continue
		}
		if a.Parent == GroupHomeBlur || a.Parent == GroupAppTop || a.Parent == GroupDesktop {
			if pastDesktop {
				rm.scene.Reparent(c.Actor, GroupHomeBlur)
				rm.scene.RaiseToTop(c.Actor)
			} else {
				// Stacked below the desktop: the actor leaves the render
				// stack entirely and parks under the desktop actor.
				rm.scene.Reparent(c.Actor, GroupDesktop)
			}
		}
	}

	rm.clipAndDemoteMaximized()

	if rm.state == StateHomeEditDialog {
		rm.forceMaximizedDialogsToAppTop()
	}

	if rm.scene.BlurFrontParent() == GroupHomeBlur {
		rm.scene.RaiseBlurFront()
	}

	rm.updateBlurState()
	rm.SetVisibilities(nil)
	rm.maybeBypassComposition()

	after := visibleChildIDs(rm.scene.Children(GroupHomeBlur))
	if !sameIDs(before, after) {
		rm.blurredContentsChanged = true
	}
}

// clipAndDemoteMaximized walks home_blur top-down; a maximized client is
// reparented into app_top and lowered to its bottom, and the scan stops once
// it (or an occluding candidate) is found.
func (rm *RenderManager) clipAndDemoteMaximized() {
	children := rm.scene.Children(GroupHomeBlur)
	for i := len(children) - 1; i >= 0; i-- {
		a := children[i]
		if a.Parent == GroupBlurFront || a.OptedOut {
			continue
		}
		a.Rect = clipToScreen(a.Rect, rm.screen)
		if a.Rect.Empty() {
			continue
		}
		if isMaximized(a.Rect, rm.screen) {
			rm.scene.Reparent(a.ID, GroupAppTop)
			rm.scene.LowerToBottom(a.ID)
			return
		}
		if coversBottomStrip(a.Rect, rm.screen) {
			return
		}
	}
}

func (rm *RenderManager) forceMaximizedDialogsToAppTop() {
	for _, c := range rm.clients {
		if c.Kind != ClientDialog {
			continue
		}
		a, ok := rm.scene.Lookup(c.Actor)
		if !ok || !isMaximized(a.Rect, rm.screen) {
			continue
		}
		rm.scene.Reparent(c.Actor, GroupAppTop)
	}
}

func isMaximized(r, screen Rect) bool {
	return r.X == 0 && r.Y == 0 && r.W == screen.W && r.H == screen.H
}

// coversBottomStrip reports whether r covers the screen's bottom strip below
// the top margin, which occludes everything stacked beneath it.
func coversBottomStrip(r, screen Rect) bool {
	const topMargin = 56
	return r.X <= 0 && r.X+r.W >= screen.W && r.Y <= topMargin && r.Y+r.H >= screen.H
}

func clipToScreen(r, screen Rect) Rect {
	x0, y0 := max(r.X, screen.X), max(r.Y, screen.Y)
	x1, y1 := min(r.X+r.W, screen.X+screen.W), min(r.Y+r.H, screen.Y+screen.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// updateBlurState accumulates blur, blur_buttons, and has_video_overlay
// from the window-manager stack top-down and applies their consequences:
// the BlurBackground flag, the titlebar foreground decoration, and the
// chequer pattern used when blur cannot compose with a video overlay.
func (rm *RenderManager) updateBlurState() {
	blur, blurButtons, hasVideoOverlay := false, false, false

	for i := len(rm.pendingStack) - 1; i >= 0; i-- {
		c, ok := rm.clients[rm.pendingStack[i]]
		if !ok {
			continue
		}
		// Checked before this client's own type is folded into blur, so a
		// blur-triggering client's own video overlay never counts against
		// itself; only a client already blurred by one above it does.
		if blur && c.HasVideoOverlay {
			hasVideoOverlay = true
		}
		switch c.Kind {
		case ClientApp:
			if c.Fullscreen || (c.ModalBlocker && c.Maximized) {
				blurButtons = true
				goto done
			}
		case ClientDialog, ClientMenu, ClientNote:
			blur = true
			if c.Maximized || c.ModalBlocker {
				blurButtons = true
			}
		}
		if c.Maximized {
			goto done
		}
	}
done:

	if blur && !hasVideoOverlay {
		rm.blurFlags = rm.blurFlags.with(BlurBackground)
	} else {
		rm.blurFlags &^= BlurFlags(BlurBackground)
	}

	rm.titlebarForeground = (blur && !blurButtons) || rm.state == StateTaskNav
	rm.chequerApplied = blur && hasVideoOverlay
	if rm.display != nil {
		rm.display.SetChequer(GroupHomeBlur, rm.chequerApplied)
	}
}

func visibleChildIDs(actors []*Actor) []ActorID {
	var out []ActorID
	for _, a := range actors {
		if a.Visible {
			out = append(out, a.ID)
		}
	}
	return out
}

func sameIDs(a, b []ActorID) bool {
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
