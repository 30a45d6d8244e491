// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/android-808/hildon-desktop/config"
)

func newTestManager(t *testing.T) (*RenderManager, *fakeDisplay) {
	t.Helper()
	store := config.NewStoreFromConfig(nil)
	disp := newFakeDisplay()
	now := time.Now()
	rm := New(disp, store, func() time.Time { return now })
	return rm, disp
}

func TestSetStateNoOpIntoSameState(t *testing.T) {
	rm, _ := newTestManager(t)
	rm.SetState(StateHome)
	prev := rm.PreviousState()
	rm.SetState(StateHome)
	if rm.PreviousState() != prev {
		t.Fatalf("setting the current state again must be a no-op")
	}
}

func TestSetStateRejectsReentrancy(t *testing.T) {
	rm, _ := newTestManager(t)
	rm.inSetState = true
	rm.SetState(StateApp)
	if rm.State() != StateUndefined {
		t.Fatalf("expected re-entrant set_state to be rejected, got state=%s", rm.State())
	}
}

func TestHomeToTaskNavEmptyRedirectsToHome(t *testing.T) {
	rm, _ := newTestManager(t)
	rm.SetState(StateHome)
	rm.SetState(StateTaskNav)
	if rm.State() != StateHome {
		t.Fatalf("expected empty task-nav to redirect to Home, got %s", rm.State())
	}
}

func TestHomeToAppClearsHomeBlurZoom(t *testing.T) {
	rm, _ := newTestManager(t)
	rm.SetState(StateHome)

	cid := ClientID(uuid.New())
	client := &Client{ID: cid, Kind: ClientApp, Maximized: true, Fullscreen: true,
		Rect: Rect{X: 0, Y: 0, W: 800, H: 480}}
	rm.RegisterClient(client, GroupHomeBlur, client.Rect)

	rm.SetState(StateApp)
	if rm.State() != StateApp {
		t.Fatalf("expected state App, got %s", rm.State())
	}
	if rm.blurFlags.Has(ZoomForHome) {
		t.Fatalf("expected ZoomForHome cleared entering App")
	}
	if rm.titlebarButtons != ButtonsSwitcher {
		t.Fatalf("expected Switcher titlebar buttons in App state")
	}
}

func TestCompositionParityInvariant(t *testing.T) {
	rm, _ := newTestManager(t)
	for _, s := range []State{StateHome, StateApp, StateNonComposited, StateNonCompositedPortrait, StateTaskNav} {
		rm.SetState(s)
		want := !s.IsNonComposited()
		if rm.FsComp() != want {
			t.Fatalf("fsComp mismatch for state %s: got %v want %v", s, rm.FsComp(), want)
		}
	}
}

func drainTimeline(rm *RenderManager) {
	for rm.blur.Playing() {
		rm.Tick(rm.now().Add(time.Hour))
	}
}

func transitionCompleteCounter(rm *RenderManager) *int {
	n := new(int)
	rm.Dispatcher().Subscribe(EventTransitionComplete, ListenerFunc(func(Event) { *n++ }))
	return n
}

func TestTaskNavRedirectEmitsNoTransitionComplete(t *testing.T) {
	rm, _ := newTestManager(t)
	rm.SetState(StateHome)
	drainTimeline(rm)

	n := transitionCompleteCounter(rm)
	rm.SetState(StateTaskNav)
	if rm.State() != StateHome {
		t.Fatalf("expected redirect back to Home, got %s", rm.State())
	}
	if *n != 0 {
		t.Fatalf("redirected no-op transition must not emit transition-complete, got %d", *n)
	}
	if rm.TitlebarButtonsState() != ButtonsLauncher {
		t.Fatalf("expected Launcher titlebar buttons after redirect, got %d", rm.TitlebarButtonsState())
	}
}

func TestTaskNavRedirectsWhenModalBlockerPresent(t *testing.T) {
	rm, _ := newTestManager(t)
	rm.SetState(StateHome)
	drainTimeline(rm)

	// The task navigator is non-empty, but a modally-blocking dialog keeps
	// it unreachable all the same.
	app := &Client{ID: ClientID(uuid.New()), Kind: ClientApp, Rect: Rect{W: 400, H: 240}}
	dialog := &Client{ID: ClientID(uuid.New()), Kind: ClientDialog, ModalBlocker: true,
		Rect: Rect{X: 100, Y: 100, W: 200, H: 100}}
	rm.RegisterClient(app, GroupHomeBlur, app.Rect)
	rm.RegisterClient(dialog, GroupHomeBlur, dialog.Rect)

	rm.SetState(StateTaskNav)
	if rm.State() != StateHome {
		t.Fatalf("expected a modal blocker to redirect TaskNav to Home, got %s", rm.State())
	}
}

func TestHomeToAppEmitsTransitionCompleteOnce(t *testing.T) {
	rm, _ := newTestManager(t)
	rm.SetState(StateHome)
	drainTimeline(rm)

	cid := ClientID(uuid.New())
	client := &Client{ID: cid, Kind: ClientApp, Maximized: true,
		Rect: Rect{X: 0, Y: 0, W: 800, H: 480}}
	rm.RegisterClient(client, GroupHomeBlur, client.Rect)

	n := transitionCompleteCounter(rm)
	rm.SetState(StateApp)
	drainTimeline(rm)

	if *n != 1 {
		t.Fatalf("expected exactly one transition-complete, got %d", *n)
	}
	if !rm.blurGroupHidden {
		t.Fatalf("expected the desktop (blur group) hidden under a maximized client")
	}
}

func TestRapidStateChangesSettleOnLast(t *testing.T) {
	rm, _ := newTestManager(t)

	// A live app client so TaskNav is not redirected away.
	cid := ClientID(uuid.New())
	rm.RegisterClient(&Client{ID: cid, Kind: ClientApp, Rect: Rect{X: 0, Y: 0, W: 400, H: 240}},
		GroupHomeBlur, Rect{X: 0, Y: 0, W: 400, H: 240})

	n := transitionCompleteCounter(rm)
	rm.SetState(StateApp)
	rm.SetState(StateTaskNav)
	rm.SetState(StateLauncher)
	rm.SetState(StateHome)
	if rm.State() != StateHome {
		t.Fatalf("expected final state Home, got %s", rm.State())
	}
	if rm.blur.HomeZoom.Target() == 0 {
		t.Fatalf("unexpected zero zoom target after settling on Home")
	}
	if *n != 0 {
		t.Fatalf("no transition-complete may fire while each timeline is interrupted, got %d", *n)
	}

	// No Range's current value may ever escape [min(a,b), max(a,b)].
	for i, r := range rm.blur.ranges() {
		lo, hi := min32(r.a, r.b), max32(r.a, r.b)
		if r.Current() < lo || r.Current() > hi {
			t.Fatalf("range %d current %v escaped [%v,%v]", i, r.Current(), lo, hi)
		}
	}
	drainTimeline(rm)
	if *n != 1 {
		t.Fatalf("expected exactly one transition-complete after the last timeline settles, got %d", *n)
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func TestNonCompositedDialogMapsAbove(t *testing.T) {
	rm, disp := newTestManager(t)

	app := &Client{ID: ClientID(uuid.New()), Kind: ClientApp,
		Fullscreen: true, Maximized: true, NonComposited: true,
		Rect: Rect{X: 0, Y: 0, W: 800, H: 480}}
	rm.RegisterClient(app, GroupHomeBlur, app.Rect)
	rm.SetState(StateApp)

	rm.SetState(StateNonComposited)
	if rm.FsComp() {
		t.Fatalf("expected compositing off in NonComposited")
	}
	if disp.compositing {
		t.Fatalf("expected the overlay window released")
	}
	if redir, ok := disp.redirected[app.ID]; !ok || redir {
		t.Fatalf("expected the fullscreen opted-in app unredirected")
	}

	dialog := &Client{ID: ClientID(uuid.New()), Kind: ClientDialog,
		Rect: Rect{X: 100, Y: 100, W: 600, H: 300}}
	rm.RegisterClient(dialog, GroupHomeBlur, dialog.Rect)
	rm.MapClient(dialog.ID)

	if rm.State() != StateApp {
		t.Fatalf("expected a mapped dialog to force the App state, got %s", rm.State())
	}
	if !rm.FsComp() || !disp.compositing {
		t.Fatalf("expected compositing re-enabled with the overlay recreated")
	}
	if !disp.redirected[app.ID] || !disp.redirected[dialog.ID] {
		t.Fatalf("expected redirection re-enabled for every client")
	}
}

func TestInputBlockerExpiry(t *testing.T) {
	rm, disp := newTestManager(t)
	rm.SetState(StateHome)
	rm.AddInputBlocker()
	if !rm.HasInputBlocker() {
		t.Fatalf("expected input blocker active")
	}
	if disp.grabs != 1 {
		t.Fatalf("expected one grab call, got %d", disp.grabs)
	}

	// Exercise the manual release path rather than waiting out the real
	// 1-second timer in a unit test.
	rm.RemoveInputBlocker()
	if rm.HasInputBlocker() {
		t.Fatalf("expected input blocker cleared after RemoveInputBlocker")
	}
	if disp.ungrabs != 1 {
		t.Fatalf("expected one ungrab call, got %d", disp.ungrabs)
	}
}

func TestFlipInputViewportRoundTrips(t *testing.T) {
	rm, _ := newTestManager(t)
	rm.currentViewport = []Rect{{X: 1, Y: 2, W: 3, H: 4}}
	before := append([]Rect(nil), rm.currentViewport...)

	rm.FlipInputViewport()
	rm.runViewportIdle()
	rm.FlipInputViewport()
	rm.runViewportIdle()

	if len(rm.currentViewport) != len(before) || rm.currentViewport[0] != before[0] {
		t.Fatalf("expected viewport to round-trip through two flips, got %+v want %+v", rm.currentViewport, before)
	}
}
