// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package agent keeps the local mirror of GitHub entities fresh.
//
// There is one agent per user, repository and organization that somebody
// showed interest in. An agent runs on its own goroutine: it activates by
// loading its backing record, refreshes immediately and then once per sync
// interval, and retires once nobody called Sync for IdleFactor intervals.
// Each refresh fetches only the sub-resources whose cache metadata expired,
// merges the results into storage and publishes the resulting change
// summary unless it is empty.
//
// The [Registry] maps entity ids to live agents and creates them on demand.
package agent

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
)

const deactivateTimeout = 10 * time.Second

type key struct {
	kind models.EntityKind
	id   int64
}

type agent struct {
	key
	impl     refresher
	registry *Registry

	lastInterest atomic.Int64
	requester    atomic.Int64

	force chan struct{}
	done  chan struct{}

	logger *logger.Logger
}

func (a *agent) touch(requesterID int64, now time.Time) {
	a.lastInterest.Store(now.UnixNano())
	if requesterID != 0 {
		a.requester.Store(requesterID)
	}
}

func (a *agent) idle(now time.Time, timeout time.Duration) bool {
	return now.Sub(time.Unix(0, a.lastInterest.Load())) > timeout
}

// requestForce asks for one forced refresh without blocking.
func (a *agent) requestForce() {
	select {
	case a.force <- struct{}{}:
	default:
	}
}

// run is the agent's goroutine. previous is a retiring agent for the same
// entity whose state must be saved before this one loads it.
func (a *agent) run(ctx context.Context, previous *agent) {
	defer a.registry.finished(a)

	if previous != nil {
		select {
		case <-previous.done:
		case <-ctx.Done():
			return
		}
	}

	if err := a.impl.activate(ctx); err != nil {
		a.logger.Err(err).Str("func", "agent.run").Msg("agent refused activation")
		a.registry.refuse(a, err)
		return
	}
	a.logger.Debug().Msg("agent activated")

	ticker := time.NewTicker(a.registry.deps.Interval)
	defer ticker.Stop()

	force := false
	for {
		if a.registry.tryRetire(a) {
			a.logger.Debug().Msg("agent idle, deactivating")
			a.stop(ctx)
			return
		}

		a.tick(ctx, force)
		force = false

		select {
		case <-ctx.Done():
			a.stop(ctx)
			return
		case <-ticker.C:
		case <-a.force:
			force = true
		}
	}
}

func (a *agent) tick(ctx context.Context, force bool) {
	changes, err := a.impl.refresh(ctx, a.requester.Load(), force)
	if err != nil {
		a.logger.Warn().Err(err).Str("func", "agent.tick").Msg("refresh incomplete")
	}
	if ctx.Err() != nil || changes.IsEmpty() {
		return
	}
	if err = a.registry.deps.Publisher.Publish(changes); err != nil {
		a.logger.Err(err).Str("func", "agent.tick").Msg("failed to publish changes")
	}
}

func (a *agent) stop(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deactivateTimeout)
	defer cancel()

	if err := a.impl.deactivate(ctx); err != nil {
		a.logger.Err(err).Str("func", "agent.stop").Msg("failed to persist agent state")
	}
}
