// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/client.go
// Summary: The window-manager client model: per-client properties, a
// per-client generation counter bumped on portrait-relevant mutations, and
// the portrait-capability lookup through transient_for chains.

package engine

import "github.com/google/uuid"

// ClientID identifies a window-manager client.
type ClientID uuid.UUID

// ClientKind distinguishes the per-client subtypes the stacking and blur
// scans treat differently.
type ClientKind int

const (
	ClientApp ClientKind = iota
	ClientDialog
	ClientMenu
	ClientNote
	ClientApplet
	ClientStatusArea
	ClientDesktop
)

// PortraitRequest is the value of the portrait-requested property.
type PortraitRequest int

const (
	PortraitNone    PortraitRequest = 0
	PortraitSoft    PortraitRequest = 1
	PortraitDemand  PortraitRequest = 2
)

// Client is one window-manager client tracked by the render manager.
type Client struct {
	ID     ClientID
	Kind   ClientKind
	Actor  ActorID
	Desk   int // virtual-desktop index
	Rect   Rect

	SelfStacking bool // opts out of restack reparenting
	ModalBlocker bool
	Maximized    bool
	Fullscreen   bool
	HasVideoOverlay bool
	NonComposited   bool // opted into bypass when fullscreen

	PortraitSupported bool
	PortraitRequested PortraitRequest
	TransientFor       ClientID
	hasTransientFor    bool

	Hibernable      bool
	hibernateRefs   int // explicit refcount while orphaned for hibernation
	actorRefs       int // held while an animation borrows the actor

	generation int // bumped whenever a portrait-relevant property mutates
}

// SetTransientFor records the client this one is transient for and bumps the
// generation counter.
func (c *Client) SetTransientFor(parent ClientID) {
	c.TransientFor = parent
	c.hasTransientFor = true
	c.generation++
}

// HoldActor takes a reference on the client's actor for the duration of an
// animation (the zoom into a task-nav thumbnail), so the actor outlives an
// unmap that happens mid-flight.
func (c *Client) HoldActor() { c.actorRefs++ }

// ReleaseActor drops the animation reference; the transition's completion
// callback is the only caller.
func (c *Client) ReleaseActor() {
	if c.actorRefs > 0 {
		c.actorRefs--
	}
}

// Hibernate increments the hibernation refcount while the client's process
// is suspended and its actor is orphaned.
func (c *Client) Hibernate() { c.hibernateRefs++ }

// Wakeup decrements the hibernation refcount on a restored map. It is a
// no-op once the count reaches zero.
func (c *Client) Wakeup() {
	if c.hibernateRefs > 0 {
		c.hibernateRefs--
	}
}

// Hibernating reports whether the client is currently held orphaned.
func (c *Client) Hibernating() bool { return c.hibernateRefs > 0 }

// ResolvePortraitSupported walks the transient_for chain to find an
// explicit portrait-supported answer. The walk is depth-bounded so a cycle
// cannot hang it; clients is the registry it walks. The result is not
// cached: every call walks the chain again, and the generation counters are
// not consulted.
func ResolvePortraitSupported(clients map[ClientID]*Client, id ClientID) (bool, bool) {
	const maxDepth = 16
	cur := id
	for depth := 0; depth < maxDepth; depth++ {
		c, ok := clients[cur]
		if !ok {
			return false, false
		}
		if c.PortraitSupported {
			return true, true
		}
		if !c.hasTransientFor {
			return false, true
		}
		cur = c.TransientFor
	}
	return false, false
}
