package session

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ship-sync/models"
)

// Transport delivers JSON messages to one connected client.
type Transport interface {
	Send(ctx context.Context, msg any) error
}

// Notifications is a change summary subscription. C signals that a summary
// is pending, Take drains it, Done is closed when the subscription ends.
type Notifications interface {
	C() <-chan struct{}
	Take() (models.ChangeSummary, bool)
	Done() <-chan struct{}
}

// AgentSyncer keeps sync agents alive.
type AgentSyncer interface {
	Sync(kind models.EntityKind, id, requesterID int64)
}

// UsageRecorder records that a user synced on the day of now.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, userID int64, now time.Time) error
}
