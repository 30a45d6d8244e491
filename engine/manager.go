// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/manager.go
// Summary: The render manager's state machine: SetState and its
// sync-before/sync-after orchestration of restacking, visibility, the
// input viewport, the blur transition, composition bypass, and rotation.
//
// A single RenderManager value is owned by one goroutine and passed
// explicitly into collaborators. Nothing here reaches into package-level
// state.

package engine

import (
	"time"

	"github.com/android-808/hildon-desktop/config"
	"github.com/android-808/hildon-desktop/internal/rlog"
)

// TitlebarButtons names the button set shown for the current state.
type TitlebarButtons int

const (
	ButtonsNone TitlebarButtons = iota
	ButtonsLauncher
	ButtonsSwitcher
	ButtonsBack
)

// Rotation is the screen's current orientation.
type Rotation int

const (
	Rotation0 Rotation = 0
	Rotation90 Rotation = 90
)

// RenderManager is the top-level value this package exists to implement.
// Exactly one instance should exist per compositor process.
type RenderManager struct {
	state         State
	previousState State
	inSetState    bool

	scene      *Scene
	blur       *BlurVector
	blurFlags  BlurFlags
	dispatcher *EventDispatcher

	clients map[ClientID]*Client

	screen   Rect
	rotation Rotation

	fsComp        bool // true = compositing active
	overlayActive bool
	unredirected  ClientID
	hasUnredirected bool

	currentViewport   []Rect
	newViewport       []Rect
	viewportDirty     bool
	viewportPending   bool
	viewportIdleTimer *time.Timer
	lastInputs        ViewportInputs

	hasInputBlocker bool
	inputBlockerTimer *time.Timer
	zoomed bool

	blurGroupHidden    bool
	hideBlurFront      bool
	statusAreaY        int
	statusAreaHeight   int

	loadingImageOwner   ActorID
	loadingImageHasOwner bool
	loadingImageOriginalParent Group

	zoomReleaseClient ClientID
	hasZoomRelease    bool

	forecastedRotationClient ClientID
	hasForecastedRotation    bool

	titlebarButtons    TitlebarButtons
	titlebarForeground bool
	chequerApplied     bool

	pendingStack            ClientStack
	restackTimer            *time.Timer
	blurredContentsChanged  bool

	cfg *config.Store

	display Display

	work chan func()

	now func() time.Time
}

// New constructs a RenderManager. display is the X11 transport abstraction;
// cfg is the configuration store backing every SetBlur call. now lets tests
// substitute a deterministic clock.
func New(display Display, cfg *config.Store, now func() time.Time) *RenderManager {
	if now == nil {
		now = time.Now
	}
	return &RenderManager{
		state:            StateUndefined,
		previousState:    StateUndefined,
		fsComp:           true,
		overlayActive:    true,
		scene:            NewScene(),
		blur:             NewBlurVector(),
		dispatcher:       NewEventDispatcher(),
		clients:          make(map[ClientID]*Client),
		screen:           Rect{X: 0, Y: 0, W: 800, H: 480},
		statusAreaHeight: 56,
		cfg:              cfg,
		display:          display,
		work:             make(chan func(), 64),
		now:              now,
	}
}

// Dispatcher exposes the event dispatcher so collaborators (debugws, the
// inspector TUI) can Subscribe.
func (rm *RenderManager) Dispatcher() *EventDispatcher { return rm.dispatcher }

// State returns the current UI state.
func (rm *RenderManager) State() State { return rm.state }

// PreviousState returns the state the manager was in before the current one.
func (rm *RenderManager) PreviousState() State { return rm.previousState }

// SetScreenSize updates the screen rectangle used by the visibility and
// input-viewport engines.
func (rm *RenderManager) SetScreenSize(w, h int) {
	rm.screen.W, rm.screen.H = w, h
}

// SetState performs one atomic transition old -> target. Re-entrant calls
// (e.g. from within a state-change notification handler driven by this very
// call) are rejected with a diagnostic. Transitioning into the current
// state is a no-op.
func (rm *RenderManager) SetState(target State) {
	if rm.inSetState {
		rlog.Warnf("render-manager: rejected re-entrant set_state(%s) while in %s", target, rm.state)
		return
	}
	if target == rm.state {
		return
	}

	rm.inSetState = true
	defer func() { rm.inSetState = false }()

	old := rm.state

	// Redirect TaskNav when it would be empty or blocked; otherwise the
	// transition zooms out from the focused application actor, which is
	// held alive until the timeline's completion releases it (sync-after).
	if target == StateTaskNav {
		if rm.taskNavWouldBeEmpty() || rm.anyModalBlocker() {
			if old.IsPortrait() {
				target = StateHomePortrait
			} else {
				target = StateHome
			}
			if target == old {
				return
			}
		} else if top, ok := rm.topmostAppClient(); ok {
			top.HoldActor()
			rm.zoomReleaseClient = top.ID
			rm.hasZoomRelease = true
		}
	}

	rm.previousState = old
	rm.state = target

	if old.IsNonComposited() != target.IsNonComposited() {
		rm.enterComposited()
		rm.Restack()
	}

	if old.IsLoading() && !target.IsLoading() {
		rm.restoreLoadingImageOwner()
	}

	if old.IsPortrait() != target.IsPortrait() {
		newRotation := Rotation0
		if target.IsPortrait() {
			newRotation = Rotation90
		}
		rm.SetRotation(newRotation)
	}

	rm.blurFlags = blurTargets(target, rm.blurFlags)
	rm.titlebarButtons = rm.titlebarButtonsFor(target, old)

	rm.syncBefore()

	rm.dispatcher.Broadcast(Event{Type: EventStateChanged, Payload: StatePayload{State: target, Previous: old}})

	started := rm.blur.SetBlur(rm.blurFlags, rm.cfg.Snapshot(), rm.now())
	if !started {
		rm.syncAfter()
	}

	rm.maybeBypassComposition()
}

// taskNavWouldBeEmpty reports whether the task navigator has no application
// windows to show.
func (rm *RenderManager) taskNavWouldBeEmpty() bool {
	for _, c := range rm.clients {
		if c.Kind == ClientApp {
			return false
		}
	}
	return true
}

// anyModalBlocker scans every client, of any kind, for an active modal
// blocker. Dialogs, menus, and notes are the usual carriers.
func (rm *RenderManager) anyModalBlocker() bool {
	for _, c := range rm.clients {
		if c.ModalBlocker {
			return true
		}
	}
	return false
}

func (rm *RenderManager) titlebarButtonsFor(target, old State) TitlebarButtons {
	switch {
	case target == StateTaskNav:
		return ButtonsLauncher
	case target.IsApp():
		return ButtonsSwitcher
	case target == StateLauncher:
		if old == StateTaskNav {
			return ButtonsBack
		}
		return ButtonsLauncher
	default:
		return ButtonsLauncher
	}
}

// syncBefore runs ahead of the blur timeline: reparent blur_front and
// home_front, then restack, which cascades into visibilities and the input
// viewport.
func (rm *RenderManager) syncBefore() {
	rm.scene.SyncBlurFront(rm.state)
	rm.scene.SyncHomeFront(rm.state)
	rm.Restack()
}

// syncAfter runs once the transition settles: it re-applies blur_front's
// parent, releases any actor held for the task-nav zoom, and emits
// transition-complete. SetState calls it directly when the blur vector
// determined there was nothing to animate; otherwise Tick calls it once
// Update reports that the timeline has finished.
func (rm *RenderManager) syncAfter() {
	rm.scene.SyncBlurFront(rm.state)
	if rm.hasZoomRelease {
		if c, ok := rm.clients[rm.zoomReleaseClient]; ok {
			c.ReleaseActor()
		}
		rm.hasZoomRelease = false
	}
	rm.dispatcher.Broadcast(Event{Type: EventTransitionComplete})
}

// Tick advances the blur timeline. The caller (the process's single main
// loop) is expected to call this once per frame while Playing() is true.
func (rm *RenderManager) Tick(now time.Time) {
	if !rm.blur.Playing() {
		return
	}
	rm.applyBlurFrame()
	if !rm.blur.Update(now) {
		rm.syncAfter()
	}
}

// applyBlurFrame derives the task-nav opacity/visibility and applets zoom
// anchor from the current Range values, once per frame. The actual scene-graph actor mutation (opacity, anchor point) is
// delegated to the Display so tests can observe it without a real renderer.
func (rm *RenderManager) applyBlurFrame() {
	opacity255 := int(255 * rm.blur.TaskNavOpacity.Current())
	if rm.display == nil {
		return
	}
	rm.display.SetGroupOpacity(GroupTaskNav, opacity255)
	if opacity255 == 0 {
		rm.display.SetGroupVisible(GroupTaskNav, false)
		rm.promoteLoadingImageIfAny()
	} else {
		rm.display.SetGroupVisible(GroupTaskNav, true)
	}
	// home_front (the applets layer) lives inside blur_front; its opacity
	// and the centered scale's anchor repositioning land there.
	rm.display.SetGroupOpacity(GroupBlurFront, int(255*rm.blur.AppletsOpacity.Current()))
	anchorX := int(float32(rm.screen.W) * (1 - rm.blur.AppletsZoom.Current()) / 2)
	anchorY := int(float32(rm.screen.H) * (1 - rm.blur.AppletsZoom.Current()) / 2)
	rm.display.SetAnchor(GroupBlurFront, anchorX, anchorY)
}

func (rm *RenderManager) promoteLoadingImageIfAny() {
	if !rm.loadingImageHasOwner {
		return
	}
	rm.scene.Reparent(rm.loadingImageOwner, GroupBlurFront)
}

func (rm *RenderManager) restoreLoadingImageOwner() {
	if !rm.loadingImageHasOwner {
		return
	}
	rm.scene.Reparent(rm.loadingImageOwner, rm.loadingImageOriginalParent)
	rm.loadingImageHasOwner = false
}

// BorrowLoadingImage records that the loading image actor was lifted from
// originalParent so it can be restored when the state leaves a Loading* mode.
func (rm *RenderManager) BorrowLoadingImage(id ActorID, originalParent Group) {
	rm.loadingImageOwner = id
	rm.loadingImageOriginalParent = originalParent
	rm.loadingImageHasOwner = true
	rm.scene.Reparent(id, GroupBlurFront)
}
