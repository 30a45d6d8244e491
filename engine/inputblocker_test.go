// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import "testing"

func TestCapturedEventSwallowsWhileBlockedExceptZoom(t *testing.T) {
	rm, _ := newTestManager(t)

	if rm.CapturedEvent() {
		t.Fatalf("expected no swallow before the input blocker is armed")
	}

	rm.AddInputBlocker()
	if !rm.CapturedEvent() {
		t.Fatalf("expected the input blocker to swallow events once armed")
	}

	rm.SetZoomed(true)
	if !rm.Zoomed() {
		t.Fatalf("expected Zoomed to report true after SetZoomed(true)")
	}
	if rm.CapturedEvent() {
		t.Fatalf("expected a zoom gesture in progress to bypass the swallow")
	}

	rm.SetZoomed(false)
	if !rm.CapturedEvent() {
		t.Fatalf("expected swallowing to resume once the zoom gesture ends")
	}

	rm.RemoveInputBlocker()
	if rm.CapturedEvent() {
		t.Fatalf("expected no swallow once the input blocker is removed")
	}
}
