// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/composition.go
// Summary: Composition bypass. Toggles X compositing and
// per-client redirection when a fullscreen opaque client can own the
// framebuffer directly.

package engine

import "github.com/android-808/hildon-desktop/internal/rlog"

// wantComposited reports whether compositing should be active for the
// current state: false exactly in the two non-composited states.
func (rm *RenderManager) wantComposited() bool {
	return !rm.state.IsNonComposited()
}

// enterComposited is invoked from SetState when crossing the
// composited/non-composited boundary. Entering a composited state re-enables
// compositing and redirection for every client (the display marks their
// textures for damage tracking); entering a non-composited state turns
// compositing off. The caller then issues a restack.
func (rm *RenderManager) enterComposited() {
	if rm.wantComposited() {
		if err := rm.transitionToComposited(); err != nil {
			rlog.Warnf("render-manager: failed entering composited mode: %v", err)
		}
		for id := range rm.clients {
			if rm.display != nil {
				_ = rm.display.RedirectClient(id)
			}
		}
		return
	}
	if err := rm.transitionToNonComposited(); err != nil {
		rlog.Warnf("render-manager: failed entering non-composited mode: %v", err)
	}
}

func (rm *RenderManager) transitionToComposited() error {
	rm.fsComp = true
	if rm.display == nil {
		rm.overlayActive = true
		return nil
	}
	if err := rm.display.ResetShapeBounding(); err != nil {
		return err
	}
	if err := rm.display.EnableCompositing(); err != nil {
		return err
	}
	rm.overlayActive = true
	return nil
}

func (rm *RenderManager) transitionToNonComposited() error {
	rm.fsComp = false
	rm.overlayActive = false
	if rm.display == nil {
		return nil
	}
	return rm.display.DisableCompositing()
}

// maybeBypassComposition implements the per-client unredirect rule: while
// compositing is bypassed and the topmost application window is fullscreen
// and opted in, unredirect it so its pixels reach the screen without going
// through the compositor's textures. The reverse happens on any state change
// back into a composited state or when a non-fullscreen client arrives above
// it, both of which route back through here after Restack.
func (rm *RenderManager) maybeBypassComposition() {
	if rm.fsComp {
		rm.clearUnredirected()
		return
	}
	top, ok := rm.topmostAppClient()
	if !ok || !top.Fullscreen || !top.NonComposited {
		rm.clearUnredirected()
		return
	}
	if rm.hasUnredirected && rm.unredirected == top.ID {
		return
	}
	rm.clearUnredirected()
	if rm.display != nil {
		if err := rm.display.UnredirectClient(top.ID); err != nil {
			rlog.Warnf("render-manager: unredirect(%v) failed: %v", top.ID, err)
			return
		}
	}
	rm.unredirected = top.ID
	rm.hasUnredirected = true
}

func (rm *RenderManager) clearUnredirected() {
	if !rm.hasUnredirected {
		return
	}
	if rm.display != nil {
		_ = rm.display.RedirectClient(rm.unredirected)
	}
	rm.hasUnredirected = false
}

func (rm *RenderManager) topmostAppClient() (*Client, bool) {
	for i := len(rm.pendingStack) - 1; i >= 0; i-- {
		c, ok := rm.clients[rm.pendingStack[i]]
		if ok && c.Kind == ClientApp {
			return c, true
		}
	}
	return nil, false
}

// FsComp reports whether X compositing is currently active.
func (rm *RenderManager) FsComp() bool { return rm.fsComp }
