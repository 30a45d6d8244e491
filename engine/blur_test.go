// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"testing"
	"time"

	"github.com/android-808/hildon-desktop/config"
)

func TestSetBlurSkipsTimelineWhenAlreadyEqual(t *testing.T) {
	v := NewBlurVector()
	cfg := config.NewStoreFromConfig(nil).Snapshot()
	now := time.Now()

	// First call establishes a target; drain it so every Range is settled.
	v.SetBlur(BlurFlags(0), cfg, now)
	for v.Update(now.Add(time.Hour)) {
	}

	started := v.SetBlur(BlurFlags(0), cfg, now)
	if started {
		t.Fatalf("expected SetBlur to skip the timeline when every Range is already at target")
	}
}

func TestSetBlurHomeUsesRadiusMoreWhenZooming(t *testing.T) {
	v := NewBlurVector()
	cfg := config.NewStoreFromConfig(nil).Snapshot()
	now := time.Now()

	v.SetBlur(BlurFlags(BlurHome)|BlurFlags(ZoomForLauncher), cfg, now)
	want := float32(cfg.GetFloat("home", "radius_more", 9))
	if v.HomeRadius.Target() != want {
		t.Fatalf("expected radius_more target %v, got %v", want, v.HomeRadius.Target())
	}
}

func TestSetBlurZoomForHomeLeavesHomeZoomAlone(t *testing.T) {
	v := NewBlurVector()
	cfg := config.NewStoreFromConfig(nil).Snapshot()
	now := time.Now()

	// ZoomForHome selects the task-nav zoom target only; the home view and
	// the applets keep their resting scale, and the blur radius stays at the
	// plain value rather than radius_more.
	v.SetBlur(BlurFlags(BlurHome)|BlurFlags(ZoomForHome), cfg, now)
	if want := float32(cfg.GetFloat("home", "radius", 6)); v.HomeRadius.Target() != want {
		t.Fatalf("expected plain radius target %v, got %v", want, v.HomeRadius.Target())
	}
	if v.HomeZoom.Target() != 1 {
		t.Fatalf("expected home zoom left at 1, got %v", v.HomeZoom.Target())
	}
	if v.AppletsZoom.Target() != 1 {
		t.Fatalf("expected applets zoom left at 1, got %v", v.AppletsZoom.Target())
	}
}

func TestSetBlurTaskNavZoomThreeWays(t *testing.T) {
	cfg := config.NewStoreFromConfig(nil).Snapshot()
	now := time.Now()
	zoom := float32(cfg.GetFloat("task_nav", "zoom", 0.85))
	zoomForHome := float32(cfg.GetFloat("task_nav", "zoom_for_home", 0.9))

	home := NewBlurVector()
	home.SetBlur(BlurFlags(ZoomForHome), cfg, now)
	if home.TaskNavZoom.Target() != zoomForHome {
		t.Fatalf("expected zoom_for_home target %v, got %v", zoomForHome, home.TaskNavZoom.Target())
	}

	plain := NewBlurVector()
	plain.SetBlur(BlurFlags(ZoomForTaskNav), cfg, now)
	if plain.TaskNavZoom.Target() != zoom {
		t.Fatalf("expected plain zoom target %v, got %v", zoom, plain.TaskNavZoom.Target())
	}

	submenu := NewBlurVector()
	submenu.SetBlur(BlurFlags(ZoomForLauncherSubmenu), cfg, now)
	want := 1 - 2*(1-zoom)
	if submenu.TaskNavZoom.Target() != want {
		t.Fatalf("expected submenu-derived target %v, got %v", want, submenu.TaskNavZoom.Target())
	}
}

func TestBlurTimelineNeverSnapsToOldTarget(t *testing.T) {
	v := NewBlurVector()
	cfg := config.NewStoreFromConfig(nil).Snapshot()
	now := time.Now()

	v.SetBlur(BlurFlags(BlurHome), cfg, now)
	mid := now.Add(v.duration / 2)
	v.Update(mid)
	midValue := v.HomeRadius.Current()

	// Re-target mid-flight with a different flag set; the new animation must
	// anchor on midValue, not jump back toward the first call's start.
	v.SetBlur(BlurFlags(0), cfg, mid)
	if v.HomeRadius.a != midValue {
		t.Fatalf("expected re-target to anchor on %v, got a=%v", midValue, v.HomeRadius.a)
	}
}
