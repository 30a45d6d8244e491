// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Compiled-in defaults for the render manager's configuration sections.

package config

func defaultConfig() Config {
	cfg := make(Config)
	applyDefaults(cfg)
	return cfg
}

// applyDefaults seeds every section's defaults without overwriting values
// already present, so a partially-customized file keeps the user's overrides.
func applyDefaults(cfg Config) {
	cfg.RegisterDefaults("home", Section{
		"saturation":   0.6,
		"brightness":   0.8,
		"radius":       6,
		"radius_more":  9,
		"zoom":         0.92,
		"zoom_applets": 0.95,
	})
	cfg.RegisterDefaults("task_nav", Section{
		"zoom":           0.85,
		"zoom_for_home":  0.9,
	})
	cfg.RegisterDefaults("blur", Section{
		"duration": 250,
	})
	cfg.RegisterDefaults("launcher_glow", Section{
		"duration_in":  200,
		"duration_out": 200,
		"brightness":   1.1,
		"radius":       4,
	})
}
