// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/fake_display_test.go
// Summary: A no-op Display recording what was asked of it, so engine tests
// never need a running X server.

package engine

type fakeDisplay struct {
	regions        [][]Rect
	rotations      []Rotation
	redirected     map[ClientID]bool
	compositing    bool
	shapeReset     int
	grabs, ungrabs int
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{redirected: make(map[ClientID]bool), compositing: true}
}

func (f *fakeDisplay) SetGroupOpacity(g Group, opacity int)    {}
func (f *fakeDisplay) SetGroupVisible(g Group, visible bool)   {}
func (f *fakeDisplay) SetAnchor(g Group, x, y int)             {}
func (f *fakeDisplay) SetChequer(g Group, applied bool)        {}

func (f *fakeDisplay) SetInputRegion(rects []Rect) error {
	cp := append([]Rect(nil), rects...)
	f.regions = append(f.regions, cp)
	return nil
}

func (f *fakeDisplay) ResetShapeBounding() error {
	f.shapeReset++
	return nil
}

func (f *fakeDisplay) RedirectClient(id ClientID) error {
	f.redirected[id] = true
	return nil
}

func (f *fakeDisplay) UnredirectClient(id ClientID) error {
	f.redirected[id] = false
	return nil
}

func (f *fakeDisplay) EnableCompositing() error {
	f.compositing = true
	return nil
}

func (f *fakeDisplay) DisableCompositing() error {
	f.compositing = false
	return nil
}

func (f *fakeDisplay) RotateScreen(r Rotation) error {
	f.rotations = append(f.rotations, r)
	return nil
}

func (f *fakeDisplay) GrabInput() error {
	f.grabs++
	return nil
}

func (f *fakeDisplay) UngrabInput() error {
	f.ungrabs++
	return nil
}
