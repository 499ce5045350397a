package agent

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-ship-sync/internal/adapter"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/store"
	"github.com/MKhiriev/go-ship-sync/models"
)

const (
	defaultInterval   = 60 * time.Second
	defaultIdleFactor = 3
)

// Dependencies are the collaborators shared by every agent.
type Dependencies struct {
	GitHub        adapter.GitHubAdapter
	Accounts      store.AccountRepository
	Repositories  store.RepositoryRepository
	Organizations store.OrganizationRepository
	Metadata      store.MetadataRepository
	Publisher     Publisher

	// Interval is the refresh period of every agent.
	Interval time.Duration
	// IdleFactor is the number of intervals an agent survives without
	// sync interest.
	IdleFactor int
	Now        func() time.Time
}

// Registry owns the live agents. It is safe for concurrent use.
type Registry struct {
	deps    *Dependencies
	factory func(k key) refresher

	mu       sync.Mutex
	agents   map[key]*agent
	retiring map[key]*agent

	// refused holds entities whose backing record was missing, until when
	// Sync ignores them.
	refused map[key]time.Time
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewRegistry returns an empty registry. Agents start on the first Sync.
func NewRegistry(deps Dependencies, logger *logger.Logger) *Registry {
	if deps.Interval <= 0 {
		deps.Interval = defaultInterval
	}
	if deps.IdleFactor <= 0 {
		deps.IdleFactor = defaultIdleFactor
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Registry{
		deps:     &deps,
		agents:   make(map[key]*agent),
		retiring: make(map[key]*agent),
		refused:  make(map[key]time.Time),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
	}
	r.factory = r.newRefresher
	return r
}

func (r *Registry) newRefresher(k key) refresher {
	log := r.logger.ForEntity(string(k.kind), k.id)
	switch k.kind {
	case models.EntityRepository:
		return newRepositoryAgent(k.id, r.deps, log)
	case models.EntityOrganization:
		return newOrganizationAgent(k.id, r.deps, log)
	default:
		return newUserAgent(k.id, r.deps, r, log)
	}
}

// Sync records interest of requesterID in an entity and starts its agent
// if it is not running. It never blocks on the agent.
func (r *Registry) Sync(kind models.EntityKind, id, requesterID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a := r.ensure(key{kind: kind, id: id}); a != nil {
		a.touch(requesterID, r.deps.Now())
	}
}

// ForceSyncRepositories makes the user's agent refetch the repository list
// regardless of its cache metadata.
func (r *Registry) ForceSyncRepositories(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a := r.ensure(key{kind: models.EntityAccount, id: userID}); a != nil {
		a.touch(userID, r.deps.Now())
		a.requestForce()
	}
}

// Len returns the number of live agents.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.agents)
}

// Run blocks until ctx is done and then shuts every agent down.
func (r *Registry) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.deps.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Shutdown()
			return nil
		case <-ticker.C:
			r.logger.Debug().Int("agents", r.Len()).Msg("agent registry")
		}
	}
}

// Shutdown stops every agent and waits until their state is persisted.
// Later Sync calls are ignored.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}

// ensure returns the live agent for k, spawning it when absent. Callers
// hold r.mu.
func (r *Registry) ensure(k key) *agent {
	if r.closed {
		return nil
	}
	if a, ok := r.agents[k]; ok {
		return a
	}
	if until, ok := r.refused[k]; ok {
		if r.deps.Now().Before(until) {
			return nil
		}
		delete(r.refused, k)
	}

	a := &agent{
		key:      k,
		impl:     r.factory(k),
		registry: r,
		force:    make(chan struct{}, 1),
		done:     make(chan struct{}),
		logger:   r.logger.ForEntity(string(k.kind), k.id),
	}
	r.agents[k] = a

	previous := r.retiring[k]
	r.wg.Add(1)
	go a.run(r.ctx, previous)
	return a
}

// tryRetire removes a from the registry when it has been idle for too long.
// Holding r.mu makes the check atomic with Sync: an agent touched after the
// check is a new agent.
func (r *Registry) tryRetire(a *agent) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !a.idle(r.deps.Now(), time.Duration(r.deps.IdleFactor)*r.deps.Interval) {
		return false
	}
	if r.agents[a.key] == a {
		delete(r.agents, a.key)
	}
	r.retiring[a.key] = a
	return true
}

// refuse removes an agent whose activation failed. A missing backing record
// keeps the entity refused for one idle window; other failures may be
// retried by the next Sync.
func (r *Registry) refuse(a *agent, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.agents[a.key] == a {
		delete(r.agents, a.key)
	}
	if errors.Is(err, ErrActivation) {
		r.refused[a.key] = r.deps.Now().Add(time.Duration(r.deps.IdleFactor) * r.deps.Interval)
	}
}

// finished runs when an agent's goroutine exits.
func (r *Registry) finished(a *agent) {
	r.mu.Lock()
	if r.retiring[a.key] == a {
		delete(r.retiring, a.key)
	}
	if r.agents[a.key] == a {
		delete(r.agents, a.key)
	}
	r.mu.Unlock()

	close(a.done)
	r.wg.Done()
}
