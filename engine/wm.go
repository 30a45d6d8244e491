// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/wm.go
// Summary: Inbound window-manager events: map/unmap/register/unregister
// and property_changed.

package engine

// RegisterClient adds a client to the registry and registers its actor in
// the scene graph, then triggers a restack. A freshly registered client
// joins the top of the pending stack until the window manager's next
// explicit restack replaces the whole order.
func (rm *RenderManager) RegisterClient(c *Client, parent Group, rect Rect) ClientID {
	c.Actor = rm.scene.Register(parent, rect)
	c.Rect = rect
	rm.clients[c.ID] = c
	rm.pendingStack = append(rm.pendingStack, c.ID)
	rm.Restack()
	return c.ID
}

// UnregisterClient removes a client and its actor, resolves any forecast
// reversal, and triggers a restack.
func (rm *RenderManager) UnregisterClient(id ClientID) {
	c, ok := rm.clients[id]
	if !ok {
		return
	}
	rm.ReverseForecast(id)
	rm.scene.Unregister(c.Actor)
	delete(rm.clients, id)
	for i, cid := range rm.pendingStack {
		if cid == id {
			rm.pendingStack = append(rm.pendingStack[:i], rm.pendingStack[i+1:]...)
			break
		}
	}
	rm.Restack()
}

// MapClient marks a client visible and triggers a restack. A client that
// needs blending while compositing is bypassed forces the state machine back
// into a composited app state first, which re-enables redirection for
// everyone and recreates the overlay window.
func (rm *RenderManager) MapClient(id ClientID) {
	c, ok := rm.clients[id]
	if !ok {
		rm.Restack()
		return
	}
	c.Wakeup()
	if a, ok := rm.scene.Lookup(c.Actor); ok {
		a.Visible = true
	}
	if rm.state.IsNonComposited() && clientNeedsCompositing(c) {
		if rm.state.IsPortrait() {
			rm.SetState(StateAppPortrait)
		} else {
			rm.SetState(StateApp)
		}
		return
	}
	rm.Restack()
}

// clientNeedsCompositing reports whether a client cannot be shown while
// compositing is bypassed: anything that blends over another window.
func clientNeedsCompositing(c *Client) bool {
	switch c.Kind {
	case ClientDialog, ClientMenu, ClientNote:
		return true
	case ClientApp:
		return !c.Fullscreen
	}
	return false
}

// UnmapClient hides the client's actor and triggers a restack. A hibernable
// client's actor is held orphaned until a later map wakes it back up.
func (rm *RenderManager) UnmapClient(id ClientID) {
	if c, ok := rm.clients[id]; ok {
		if a, ok := rm.scene.Lookup(c.Actor); ok {
			a.Visible = false
		}
		if c.Hibernable {
			c.Hibernate()
		}
	}
	rm.Restack()
}

// PropertyKind enumerates the window properties the render manager
// interprets from property_changed notifications.
type PropertyKind int

const (
	PropPortraitSupported PropertyKind = iota
	PropPortraitRequested
	PropNonCompositedWindow
	PropHibernable
	PropDoNotDisturb
	PropProgressIndicator
	PropMenuIndicator
)

// PropertyChanged interprets one property_changed event. A value of the
// wrong type or format is silently treated as absent: callers pass
// ok=false in that case rather than a zero value, so this function can tell
// "explicitly cleared" from "malformed".
func (rm *RenderManager) PropertyChanged(client ClientID, kind PropertyKind, value int, ok bool) {
	c, exists := rm.clients[client]
	if !exists {
		return
	}
	switch kind {
	case PropPortraitSupported:
		if ok {
			c.PortraitSupported = value != 0
		}
		c.generation++
	case PropPortraitRequested:
		if !ok {
			return
		}
		c.PortraitRequested = PortraitRequest(value)
		switch {
		case c.PortraitRequested == PortraitDemand:
			rm.SetStatePortrait()
		case c.PortraitRequested == PortraitSoft && !rm.anyDissentingNoteVisible():
			rm.SetStatePortrait()
		case c.PortraitRequested == PortraitNone && rm.state.IsPortrait() && !rm.anyClientWantsPortrait():
			rm.SetStateUnportrait()
		}
	case PropNonCompositedWindow:
		c.NonComposited = ok && value != 0
		rm.maybeBypassComposition()
	case PropHibernable:
		c.Hibernable = ok
	case PropDoNotDisturb:
		// Interpreted by the out-of-scope notification UI; no render-manager
		// state changes on its own.
	case PropProgressIndicator, PropMenuIndicator:
		// Titlebar repaint only; no state machine effect.
	}
}
