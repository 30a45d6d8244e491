// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/rlog/rlog.go
// Summary: Leveled diagnostic logging for the render manager.
// Notes: Thin wrapper over log.Printf so call sites stay one line, matching
// the rest of this codebase's logging style, with a severity filter on top.

package rlog

import (
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// Level controls which severities are emitted.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var current = LevelInfo

func init() {
	switch os.Getenv("HDRM_LOG_LEVEL") {
	case "debug":
		current = LevelDebug
	case "warn":
		current = LevelWarn
	case "error":
		current = LevelError
	}
}

// SetLevel adjusts the minimum severity that is emitted.
func SetLevel(l Level) { current = l }

func logf(l Level, prefix, format string, args ...interface{}) {
	if l < current {
		return
	}
	log.Printf(prefix+format, args...)
}

func Debugf(format string, args ...interface{}) { logf(LevelDebug, "DEBUG: ", format, args...) }
func Infof(format string, args ...interface{})  { logf(LevelInfo, "INFO: ", format, args...) }
func Warnf(format string, args ...interface{})  { logf(LevelWarn, "WARN: ", format, args...) }
func Errorf(format string, args ...interface{}) { logf(LevelError, "ERROR: ", format, args...) }

// Duration renders a time.Duration the way operator-facing diagnostics do
// elsewhere in this codebase, e.g. timeline durations and viewport-rebuild
// latency.
func Duration(d time.Duration) string {
	return humanize.RelTime(time.Now().Add(-d), time.Now(), "", "")
}
