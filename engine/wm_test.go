// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"testing"

	"github.com/google/uuid"
)

func TestPortraitDemandRotatesAppToPortrait(t *testing.T) {
	rm, disp := newTestManager(t)

	app := &Client{ID: ClientID(uuid.New()), Kind: ClientApp,
		Fullscreen: true, PortraitSupported: true,
		Rect: Rect{X: 0, Y: 0, W: 800, H: 480}}
	rm.RegisterClient(app, GroupHomeBlur, app.Rect)
	rm.SetState(StateApp)

	rotated := 0
	rm.Dispatcher().Subscribe(EventRotated, ListenerFunc(func(e Event) {
		p, ok := e.Payload.(RotationPayload)
		if ok && p.Rotation == Rotation90 {
			rotated++
		}
	}))

	rm.PropertyChanged(app.ID, PropPortraitRequested, int(PortraitDemand), true)

	if rm.State() != StateAppPortrait {
		t.Fatalf("expected StateAppPortrait, got %s", rm.State())
	}
	if rm.Rotation() != Rotation90 {
		t.Fatalf("expected rotation 90, got %d", rm.Rotation())
	}
	if rotated != 1 {
		t.Fatalf("expected exactly one rotated(90) event, got %d", rotated)
	}
	if len(disp.rotations) != 1 || disp.rotations[0] != Rotation90 {
		t.Fatalf("expected one rotate-screen call for 90 degrees, got %v", disp.rotations)
	}
	if rm.screen.W != 480 || rm.screen.H != 800 {
		t.Fatalf("expected screen dimensions swapped to 480x800, got %dx%d", rm.screen.W, rm.screen.H)
	}
}

func TestPropertyChangedLeavesPortraitWhenRequestDrops(t *testing.T) {
	rm, _ := newTestManager(t)
	rm.SetState(StateHome)

	client := &Client{ID: ClientID(uuid.New()), Kind: ClientApp}
	rm.RegisterClient(client, GroupAppTop, Rect{})

	rm.PropertyChanged(client.ID, PropPortraitRequested, int(PortraitDemand), true)
	if rm.State() != StateHomePortrait {
		t.Fatalf("expected PortraitDemand to drive StateHomePortrait, got %s", rm.State())
	}

	// The client withdraws its request and no one else wants portrait: the
	// manager must fall back out of the portrait state on its own.
	rm.PropertyChanged(client.ID, PropPortraitRequested, int(PortraitNone), true)
	if rm.State() != StateHome {
		t.Fatalf("expected withdrawn request to drive StateHome, got %s", rm.State())
	}
}

func TestPropertyChangedStaysPortraitWhileAnotherClientWants(t *testing.T) {
	rm, _ := newTestManager(t)
	rm.SetState(StateHome)

	demander := &Client{ID: ClientID(uuid.New()), Kind: ClientApp}
	other := &Client{ID: ClientID(uuid.New()), Kind: ClientApp}
	rm.RegisterClient(demander, GroupAppTop, Rect{})
	rm.RegisterClient(other, GroupAppTop, Rect{})

	rm.PropertyChanged(demander.ID, PropPortraitRequested, int(PortraitDemand), true)
	rm.PropertyChanged(other.ID, PropPortraitRequested, int(PortraitDemand), true)
	if rm.State() != StateHomePortrait {
		t.Fatalf("expected StateHomePortrait, got %s", rm.State())
	}

	// demander withdraws, but other still wants portrait: must stay put.
	rm.PropertyChanged(demander.ID, PropPortraitRequested, int(PortraitNone), true)
	if rm.State() != StateHomePortrait {
		t.Fatalf("expected StateHomePortrait to persist while another client still wants it, got %s", rm.State())
	}
}
