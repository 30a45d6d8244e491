// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"testing"

	"github.com/google/uuid"
)

func TestRestackReparentsBelowDesktopClients(t *testing.T) {
	rm, _ := newTestManager(t)

	below := &Client{ID: ClientID(uuid.New()), Kind: ClientApp, Rect: Rect{W: 300, H: 200}}
	desk := &Client{ID: ClientID(uuid.New()), Kind: ClientDesktop}
	above := &Client{ID: ClientID(uuid.New()), Kind: ClientApp, Rect: Rect{W: 300, H: 200}}
	rm.RegisterClient(below, GroupHomeBlur, below.Rect)
	rm.RegisterClient(desk, GroupHomeBlur, Rect{})
	rm.RegisterClient(above, GroupHomeBlur, above.Rect)

	rm.pendingStack = ClientStack{below.ID, desk.ID, above.ID}
	rm.Restack()

	if a, ok := rm.scene.Lookup(below.Actor); !ok || a.Parent != GroupDesktop {
		t.Fatalf("expected the client stacked below the desktop parked under the desktop actor")
	}
	if a, ok := rm.scene.Lookup(above.Actor); !ok || a.Parent != GroupHomeBlur {
		t.Fatalf("expected the client stacked above the desktop kept in home_blur")
	}
}

func TestUpdateBlurStateOwnOverlayNotCounted(t *testing.T) {
	rm, _ := newTestManager(t)

	// A single maximized dialog that itself carries a video overlay: it
	// triggers blur for itself, but its own overlay must not count against
	// it; only a client already blurred by one above it would.
	dialog := &Client{ID: ClientID(uuid.New()), Kind: ClientDialog, Maximized: true, HasVideoOverlay: true}
	rm.clients[dialog.ID] = dialog
	rm.pendingStack = ClientStack{dialog.ID}

	rm.updateBlurState()

	if !rm.blurFlags.Has(BlurBackground) {
		t.Fatalf("expected BlurBackground set: a client's own video overlay must not suppress its own blur")
	}
}

func TestUpdateBlurStateOverlayBelowBlurringClientCounts(t *testing.T) {
	rm, _ := newTestManager(t)

	dialog := &Client{ID: ClientID(uuid.New()), Kind: ClientDialog}
	overlayApp := &Client{ID: ClientID(uuid.New()), Kind: ClientApp, HasVideoOverlay: true}
	// Bottom-to-top: overlayApp first, dialog above it. The top-down scan
	// meets the dialog (sets blur) before the overlay app it blurs.
	rm.clients[dialog.ID] = dialog
	rm.clients[overlayApp.ID] = overlayApp
	rm.pendingStack = ClientStack{overlayApp.ID, dialog.ID}

	rm.updateBlurState()

	if rm.blurFlags.Has(BlurBackground) {
		t.Fatalf("expected BlurBackground cleared: a video overlay under an already-blurring client disqualifies blur")
	}
}
