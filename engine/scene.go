// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/scene.go
// Summary: The six logical scene groups and the arena-indexed
// actor graph they are built from.
//
// Actors are never referenced by owning pointer: every actor is addressed by
// a UUID looked up through the arena and names its parent as a Group value,
// so a destroyed actor simply leaves a dangling handle that resolves to
// "absent" instead of a use-after-free.

package engine

import (
	"github.com/google/uuid"
)

// Group names the six fixed logical scene containers, the desktop actor's
// own subtree, and the implicit root.
type Group int

const (
	GroupRoot Group = iota
	GroupHomeBlur
	GroupAppTop
	GroupFront
	GroupBlurFront
	GroupTaskNav
	GroupLauncher
	GroupDesktop
)

func (g Group) String() string {
	switch g {
	case GroupRoot:
		return "root"
	case GroupHomeBlur:
		return "home_blur"
	case GroupAppTop:
		return "app_top"
	case GroupFront:
		return "front"
	case GroupBlurFront:
		return "blur_front"
	case GroupTaskNav:
		return "task_nav"
	case GroupLauncher:
		return "launcher"
	case GroupDesktop:
		return "desktop"
	}
	return "unknown"
}

// ActorID is a stable handle into the scene arena.
type ActorID uuid.UUID

// Rect is a screen-space rectangle; the X shape extension's wire layout is
// (i16 x, i16 y, u16 w, u16 h), which these fields match in range if not in
// byte layout; the x11 package is responsible for the wire encoding.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Transpose swaps axes, used when the input viewport flips on rotation.
func (r Rect) Transpose() Rect {
	return Rect{X: r.Y, Y: r.X, W: r.H, H: r.W}
}

// Actor is one node in the scene graph.
type Actor struct {
	ID       ActorID
	Parent   Group
	Rect     Rect
	Visible  bool
	Opaque   bool // non-ARGB and not client-shaped
	OptedOut bool // declines reparenting / restack participation
	ZOrder   int  // higher raises later within its group
}

// Scene owns the actor arena and enforces the fixed parent/child
// invariants: blur_front's parent is a pure function of BlurButtons(state);
// home_front's parent is a pure function of HomeFront(state).
type Scene struct {
	actors map[ActorID]*Actor
	order  []ActorID // insertion order, used to derive per-group stacking

	blurFrontParent Group // GroupHomeBlur or GroupRoot
	homeFrontParent Group // GroupBlurFront or GroupDesktop
	blurFrontZ      int   // stacking position among home_blur children
}

// NewScene creates an empty scene graph.
func NewScene() *Scene {
	return &Scene{
		actors:          make(map[ActorID]*Actor),
		blurFrontParent: GroupRoot,
		homeFrontParent: GroupDesktop,
	}
}

// Register adds a new actor to the arena, returning its handle. Actors are
// created by the external compositor on window mapping; this is the
// registration call that hands the scene graph a weak reference to it.
func (s *Scene) Register(parent Group, rect Rect) ActorID {
	id := ActorID(uuid.New())
	s.actors[id] = &Actor{ID: id, Parent: parent, Rect: rect}
	s.order = append(s.order, id)
	return id
}

// Unregister drops an actor from the arena. Any handle still held elsewhere
// now resolves to absent via Lookup.
func (s *Scene) Unregister(id ActorID) {
	delete(s.actors, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Lookup resolves a handle to its actor, or (nil, false) if it has been
// unregistered; the arena's answer to a dangling weak reference.
func (s *Scene) Lookup(id ActorID) (*Actor, bool) {
	a, ok := s.actors[id]
	return a, ok
}

// Reparent moves an actor to a new group. It is the only way a parent
// changes, so the parent invariants can be checked at a single choke point.
func (s *Scene) Reparent(id ActorID, group Group) {
	if a, ok := s.actors[id]; ok {
		a.Parent = group
	}
}

// Children returns the actors directly parented to group, in ascending
// ZOrder (bottom to top); the order restack.go reasons about.
func (s *Scene) Children(group Group) []*Actor {
	var out []*Actor
	for _, id := range s.order {
		a := s.actors[id]
		if a != nil && a.Parent == group {
			out = append(out, a)
		}
	}
	sortByZOrder(out)
	return out
}

func sortByZOrder(actors []*Actor) {
	for i := 1; i < len(actors); i++ {
		for j := i; j > 0 && actors[j-1].ZOrder > actors[j].ZOrder; j-- {
			actors[j-1], actors[j] = actors[j], actors[j-1]
		}
	}
}

// RaiseToTop gives an actor the highest ZOrder within its current parent.
func (s *Scene) RaiseToTop(id ActorID) {
	a, ok := s.actors[id]
	if !ok {
		return
	}
	max := 0
	for _, sibling := range s.Children(a.Parent) {
		if sibling.ZOrder > max {
			max = sibling.ZOrder
		}
	}
	a.ZOrder = max + 1
}

// LowerToBottom gives an actor the lowest ZOrder within its current parent.
func (s *Scene) LowerToBottom(id ActorID) {
	a, ok := s.actors[id]
	if !ok {
		return
	}
	min := 0
	for _, sibling := range s.Children(a.Parent) {
		if sibling.ZOrder < min {
			min = sibling.ZOrder
		}
	}
	a.ZOrder = min - 1
}

// RaiseBlurFront restacks blur_front above every other home_blur child,
// re-applied after each restack while blur_front still lives inside
// home_blur.
func (s *Scene) RaiseBlurFront() {
	top := 0
	for _, a := range s.Children(GroupHomeBlur) {
		if a.ZOrder > top {
			top = a.ZOrder
		}
	}
	s.blurFrontZ = top + 1
}

// BlurFrontZ returns blur_front's stacking position among home_blur's
// children.
func (s *Scene) BlurFrontZ() int { return s.blurFrontZ }

// SyncBlurFront applies the blur_front parent invariant for the given state:
// parent(blur_front) = home_blur iff BlurButtons(state), else root.
func (s *Scene) SyncBlurFront(st State) {
	if st.BlurButtons() {
		s.blurFrontParent = GroupHomeBlur
	} else {
		s.blurFrontParent = GroupRoot
	}
}

// BlurFrontParent returns blur_front's current logical parent.
func (s *Scene) BlurFrontParent() Group { return s.blurFrontParent }

// SyncHomeFront applies the home_front parent invariant for the given state:
// parent(home_front) = blur_front iff HomeFront(state), else the desktop
// actor.
func (s *Scene) SyncHomeFront(st State) {
	if st.HomeFront() {
		s.homeFrontParent = GroupBlurFront
	} else {
		s.homeFrontParent = GroupDesktop
	}
}

// HomeFrontParent returns home_front's current logical parent.
func (s *Scene) HomeFrontParent() Group { return s.homeFrontParent }
