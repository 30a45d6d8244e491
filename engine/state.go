// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/state.go
// Summary: UI state enum and the derived boolean predicates the state
// machine and input-viewport engine consult on every transition.

package engine

// State is the render manager's current UI mode. Exactly one value holds at
// any time.
type State int

const (
	StateUndefined State = iota
	StateHome
	StateHomeEdit
	StateHomeEditDialog
	StateHomePortrait
	StateApp
	StateAppPortrait
	StateTaskNav
	StateLauncher
	StateNonComposited
	StateNonCompositedPortrait
	StateLoading
	StateLoadingSubwindow
)

var stateNames = map[State]string{
	StateUndefined:             "Undefined",
	StateHome:                  "Home",
	StateHomeEdit:              "HomeEdit",
	StateHomeEditDialog:        "HomeEditDialog",
	StateHomePortrait:          "HomePortrait",
	StateApp:                   "App",
	StateAppPortrait:           "AppPortrait",
	StateTaskNav:               "TaskNav",
	StateLauncher:              "Launcher",
	StateNonComposited:         "NonComposited",
	StateNonCompositedPortrait: "NonCompositedPortrait",
	StateLoading:               "Loading",
	StateLoadingSubwindow:      "LoadingSubwindow",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsApp reports whether the state is an application foreground state.
func (s State) IsApp() bool {
	return s == StateApp || s == StateAppPortrait
}

// IsPortrait reports whether the state's screen orientation is portrait.
func (s State) IsPortrait() bool {
	switch s {
	case StateHomePortrait, StateAppPortrait, StateNonCompositedPortrait:
		return true
	}
	return false
}

// IsPortraitCapable reports whether the state has a portrait sibling that
// set_state_portrait may lift it into.
func (s State) IsPortraitCapable() bool {
	return s.IsApp() || s == StateHome || s == StateNonComposited
}

// portraitSibling returns the portrait counterpart of a landscape state, or
// StateUndefined if the state has none.
func (s State) portraitSibling() State {
	switch s {
	case StateHome:
		return StateHomePortrait
	case StateApp:
		return StateAppPortrait
	case StateNonComposited:
		return StateNonCompositedPortrait
	}
	return StateUndefined
}

// landscapeSibling returns the landscape counterpart of a portrait state, or
// StateUndefined if the state is not portrait.
func (s State) landscapeSibling() State {
	switch s {
	case StateHomePortrait:
		return StateHome
	case StateAppPortrait:
		return StateApp
	case StateNonCompositedPortrait:
		return StateNonComposited
	}
	return StateUndefined
}

// IsNonComposited reports whether compositing should be bypassed in this state.
func (s State) IsNonComposited() bool {
	return s == StateNonComposited || s == StateNonCompositedPortrait
}

// IsLoading reports whether this is one of the loading states.
func (s State) IsLoading() bool {
	return s == StateLoading || s == StateLoadingSubwindow
}

// NeedTaskNav reports whether the task navigator actor must be shown.
func (s State) NeedTaskNav() bool { return s == StateTaskNav }

// NeedDesktop reports whether the desktop actor must be shown.
func (s State) NeedDesktop() bool {
	switch s {
	case StateHome, StateHomeEdit, StateHomeEditDialog, StateHomePortrait, StateTaskNav, StateLauncher:
		return true
	}
	return false
}

// ShowApplets reports whether home applets should be visible.
func (s State) ShowApplets() bool {
	switch s {
	case StateHome, StateHomePortrait, StateHomeEdit:
		return true
	}
	return false
}

// ShowStatusArea reports whether the status area client should be shown.
func (s State) ShowStatusArea() bool {
	return s != StateLoading && s != StateLoadingSubwindow
}

// ShowOperator reports whether the operator logo/applet should be shown.
func (s State) ShowOperator() bool {
	return s == StateHome || s == StateHomePortrait
}

// BlurButtons reports whether the blur_front group (titlebar buttons, edit
// button, home_front, loading image) should live inside home_blur.
func (s State) BlurButtons() bool {
	switch s {
	case StateHome, StateHomeEdit, StateHomeEditDialog, StateHomePortrait, StateLoading:
		return true
	}
	return false
}

// HomeFront reports whether the home_front (applets) group should be parented
// under blur_front rather than directly under the desktop actor.
func (s State) HomeFront() bool {
	return s.BlurButtons()
}

// ToolbarForeground reports whether the titlebar foreground decoration
// should be applied (independent of BlurBackground; see update_blur_state).
func (s State) ToolbarForeground() bool {
	return s == StateTaskNav
}

// NeedWholeScreenInput reports whether the input-viewport engine should grab
// the entire screen regardless of visible widget rectangles.
func (s State) NeedWholeScreenInput() bool {
	return s.IsLoading()
}

// DiscardPreviewNote reports whether incoming-event preview notes should be
// dropped rather than shown, in this state.
func (s State) DiscardPreviewNote() bool {
	return s == StateTaskNav || s == StateLauncher
}

// UngrabNotes reports whether foreground notes and dialogs should contribute
// their rectangles to the input viewport ("ungrab for notes").
func (s State) UngrabNotes() bool {
	return !s.IsLoading()
}
