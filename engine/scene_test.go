// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import "testing"

func TestSceneLookupAfterUnregisterIsAbsent(t *testing.T) {
	s := NewScene()
	id := s.Register(GroupHomeBlur, Rect{W: 10, H: 10})
	if _, ok := s.Lookup(id); !ok {
		t.Fatalf("expected freshly registered actor to be present")
	}
	s.Unregister(id)
	if _, ok := s.Lookup(id); ok {
		t.Fatalf("expected unregistered actor's handle to resolve to absent")
	}
}

func TestBlurFrontParentInvariant(t *testing.T) {
	s := NewScene()
	s.SyncBlurFront(StateHome)
	if s.BlurFrontParent() != GroupHomeBlur {
		t.Fatalf("expected blur_front under home_blur in Home, got %s", s.BlurFrontParent())
	}
	s.SyncBlurFront(StateApp)
	if s.BlurFrontParent() != GroupRoot {
		t.Fatalf("expected blur_front under root in App, got %s", s.BlurFrontParent())
	}
}

func TestHomeFrontParentInvariant(t *testing.T) {
	s := NewScene()
	s.SyncHomeFront(StateHome)
	if s.HomeFrontParent() != GroupBlurFront {
		t.Fatalf("expected home_front under blur_front in Home, got %s", s.HomeFrontParent())
	}
	s.SyncHomeFront(StateApp)
	if s.HomeFrontParent() != GroupDesktop {
		t.Fatalf("expected home_front under the desktop actor in App, got %s", s.HomeFrontParent())
	}
}

func TestChildrenOrderedByZOrder(t *testing.T) {
	s := NewScene()
	a := s.Register(GroupHomeBlur, Rect{})
	b := s.Register(GroupHomeBlur, Rect{})
	s.RaiseToTop(a)
	children := s.Children(GroupHomeBlur)
	if len(children) != 2 || children[1].ID != a {
		t.Fatalf("expected %v raised to top, got order %+v", a, children)
	}
	_ = b
}
