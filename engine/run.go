// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: engine/run.go
// Summary: The render manager's owning loop. All mutation happens on the
// goroutine running Run; cross-goroutine inputs (the X11 event reader, a
// config-reload signal handler) hand work over through Post.

package engine

import (
	"context"
	"time"
)

const frameInterval = 16 * time.Millisecond

// Post enqueues fn for execution on the goroutine running Run. It blocks
// only when the work queue is full, which back-pressures a producer that
// outruns the loop rather than dropping its work.
func (rm *RenderManager) Post(fn func()) {
	rm.work <- fn
}

// Run drains posted work and drives the blur timeline one frame at a time
// until ctx is cancelled. It must be the only goroutine calling the
// manager's mutating methods for the duration.
func (rm *RenderManager) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-rm.work:
			fn()
		case now := <-ticker.C:
			rm.Tick(now)
		}
	}
}
