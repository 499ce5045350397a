package agent

import (
	"context"

	"github.com/MKhiriev/go-ship-sync/models"
)

// Publisher receives the change summaries agents produce.
type Publisher interface {
	Publish(summary models.ChangeSummary) error
}

// Syncer signals sync interest in an entity. Agents use it to keep the
// entities they discover alive.
type Syncer interface {
	Sync(kind models.EntityKind, id, requesterID int64)
}

// refresher is the entity specific part of an agent. Its methods are only
// called from the agent's own goroutine.
type refresher interface {
	// activate loads the backing record. An error wrapping ErrActivation
	// makes the agent refuse to start.
	activate(ctx context.Context) error

	// refresh fetches every expired sub-resource with the token of
	// requesterID and merges the results. A failed sub-resource does not
	// stop the others; their errors are joined.
	refresh(ctx context.Context, requesterID int64, force bool) (models.ChangeSummary, error)

	// deactivate persists state before the agent is dropped.
	deactivate(ctx context.Context) error
}
