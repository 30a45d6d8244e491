// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: x11/fake.go
// Summary: FakeDisplay stands in for a real X connection so integration
// tests and the fake-client harness can exercise the render manager without
// a running X server.

package x11

import (
	"sync"

	"github.com/android-808/hildon-desktop/engine"
)

// FakeDisplay records every call it receives instead of talking to a real
// X server. Safe for concurrent use by a test and the manager's own
// goroutine-confined calls, since the manager never calls it concurrently
// with itself, but the fake-client harness may poll it from another
// goroutine for assertions.
type FakeDisplay struct {
	mu sync.Mutex

	Regions     [][]engine.Rect
	Rotations   []engine.Rotation
	Compositing bool
	Redirected  map[engine.ClientID]bool
	Grabbed     bool
}

// NewFakeDisplay returns a FakeDisplay with compositing initially on, the
// resting state of a freshly started compositor.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{Compositing: true, Redirected: make(map[engine.ClientID]bool)}
}

func (f *FakeDisplay) SetGroupOpacity(g engine.Group, opacity int)  {}
func (f *FakeDisplay) SetGroupVisible(g engine.Group, visible bool) {}
func (f *FakeDisplay) SetAnchor(g engine.Group, x, y int)           {}
func (f *FakeDisplay) SetChequer(g engine.Group, applied bool)      {}

func (f *FakeDisplay) SetInputRegion(rects []engine.Rect) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Regions = append(f.Regions, append([]engine.Rect(nil), rects...))
	return nil
}

func (f *FakeDisplay) ResetShapeBounding() error { return nil }

func (f *FakeDisplay) RedirectClient(id engine.ClientID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Redirected[id] = true
	return nil
}

func (f *FakeDisplay) UnredirectClient(id engine.ClientID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Redirected[id] = false
	return nil
}

func (f *FakeDisplay) EnableCompositing() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Compositing = true
	return nil
}

func (f *FakeDisplay) DisableCompositing() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Compositing = false
	return nil
}

func (f *FakeDisplay) RotateScreen(r engine.Rotation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Rotations = append(f.Rotations, r)
	return nil
}

func (f *FakeDisplay) GrabInput() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Grabbed = true
	return nil
}

func (f *FakeDisplay) UngrabInput() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Grabbed = false
	return nil
}

var _ engine.Display = (*FakeDisplay)(nil)
