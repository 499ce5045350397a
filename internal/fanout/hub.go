// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fanout delivers change summaries from sync agents and webhook
// ingestion to every connected sync session.
//
// A notification is only a wake-up signal. Each subscription keeps at most
// one pending summary: summaries published while the subscriber is busy are
// unioned into it, so a slow session never blocks a publisher and never
// loses an id. Nothing is kept for sessions that are not subscribed; a
// reconnecting session reconciles through its version cursors instead.
package fanout

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/models"
)

// Hub is the registry of live subscriptions.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
	closed bool

	logger *logger.Logger
}

// NewHub returns an empty hub.
func NewHub(logger *logger.Logger) *Hub {
	return &Hub{subs: make(map[uint64]*Subscription), logger: logger}
}

// Publish hands summary to every current subscriber. It never blocks on a
// subscriber.
func (h *Hub) Publish(summary models.ChangeSummary) error {
	if summary.IsEmpty() {
		return ErrEmptySummary
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrHubClosed
	}
	for _, s := range h.subs {
		s.offer(summary)
	}

	h.logger.Debug().Str("func", "Hub.Publish").Int("subscribers", len(h.subs)).Stringer("summary", summary).Msg("change summary published")
	return nil
}

// Subscribe registers a new subscriber. The caller must Close it when the
// connection ends.
func (h *Hub) Subscribe() *Subscription {
	s := &Subscription{
		hub:    h,
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(s.done)
		return s
	}
	h.nextID++
	s.id = h.nextID
	h.subs[s.id] = s
	return s
}

// Len returns the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Run closes the hub once ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	<-ctx.Done()
	h.Close()
	h.logger.Info().Msg("change hub closed")
	return nil
}

// Close ends every subscription and rejects further publishing.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, s := range h.subs {
		delete(h.subs, id)
		s.closeOnce.Do(func() { close(s.done) })
	}
}

func (h *Hub) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

// Subscription is one session's mailbox.
type Subscription struct {
	hub *Hub
	id  uint64

	mu      sync.Mutex
	pending models.ChangeSummary

	signal    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func (s *Subscription) offer(summary models.ChangeSummary) {
	s.mu.Lock()
	s.pending.UnionWith(summary)
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

// C is signalled whenever a summary is pending.
func (s *Subscription) C() <-chan struct{} {
	return s.signal
}

// Done is closed when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Take returns and clears the pending summary. ok is false when nothing
// is pending.
func (s *Subscription) Take() (summary models.ChangeSummary, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending.IsEmpty() {
		return models.ChangeSummary{}, false
	}
	summary = s.pending
	s.pending = models.ChangeSummary{}
	return summary, true
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	s.hub.remove(s.id)
	s.closeOnce.Do(func() { close(s.done) })
}
