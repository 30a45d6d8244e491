// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Section-keyed configuration store for the render manager, loaded from and
// persisted to a single JSON document under the user's config directory.

package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/go-json-experiment/json"

	"github.com/android-808/hildon-desktop/internal/rlog"
)

// Section holds one configuration section's key/value pairs.
type Section map[string]interface{}

// Config holds every configuration section, keyed by section name.
type Config map[string]Section

const configFileName = "render-manager.json"

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hildon-desktop", configFileName), nil
}

// Store owns the live configuration and guards it against concurrent reload.
type Store struct {
	mu  sync.RWMutex
	cfg Config
}

// NewStore loads configuration from disk, applying compiled-in defaults for any
// missing section or key. A missing file is not an error: the store falls back
// to defaults and writes them out so the file exists for the next run.
func NewStore() (*Store, error) {
	s := &Store{cfg: make(Config)}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStoreFromConfig builds a Store around an already-loaded configuration,
// applying defaults for anything missing. Used by tests and by any caller
// that manages its own config file I/O.
func NewStoreFromConfig(cfg Config) *Store {
	if cfg == nil {
		cfg = make(Config)
	}
	applyDefaults(cfg)
	return &Store{cfg: cfg}
}

func (s *Store) reload() error {
	path, err := configPath()
	if err != nil {
		rlog.Warnf("config: cannot resolve config path: %v", err)
		s.mu.Lock()
		s.cfg = defaultConfig()
		s.mu.Unlock()
		return nil
	}

	cfg := make(Config)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			rlog.Warnf("config: %s is invalid, using defaults: %v", path, jsonErr)
			cfg = make(Config)
		} else {
			rlog.Infof("config: loaded %s", path)
		}
	case os.IsNotExist(err):
		rlog.Infof("config: no file at %s, writing defaults", path)
	default:
		rlog.Warnf("config: failed to read %s: %v", path, err)
	}

	applyDefaults(cfg)

	if err == nil {
		s.mu.Lock()
		s.cfg = cfg
		s.mu.Unlock()
		return nil
	}

	if writeErr := writeConfig(path, cfg); writeErr != nil {
		rlog.Warnf("config: failed to write defaults to %s: %v", path, writeErr)
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Reload re-reads the configuration file, replacing the in-memory snapshot.
// Safe to call concurrently with Snapshot; a transition already holding a
// Snapshot keeps reading its own consistent copy.
func (s *Store) Reload() error {
	return s.reload()
}

// Snapshot returns an independent copy of the current configuration, safe to
// read from without holding the store's lock for the duration of a transition.
func (s *Store) Snapshot() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Clone(s.cfg)
}

func writeConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
