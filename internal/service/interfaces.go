package service

import (
	"context"

	"github.com/MKhiriev/go-ship-sync/internal/fanout"
	"github.com/MKhiriev/go-ship-sync/models"
	"github.com/google/uuid"
)

// AuthService verifies the credentials presented to the API.
type AuthService interface {
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	VerifyInternalToken(ctx context.Context, token string) error
}

// QueryService manages saved queries. Every effective change is published
// as a change summary naming the acting user.
type QueryService interface {
	GetQuery(ctx context.Context, id uuid.UUID) (models.Query, error)
	SaveQuery(ctx context.Context, userID int64, query models.Query) error
	SetWatching(ctx context.Context, userID int64, queryID uuid.UUID, watching bool) error
}

// SyncService runs sync sessions and feeds them change notifications.
type SyncService interface {
	// Connect runs a session for an authenticated user until ctx is done or
	// the transport fails.
	Connect(ctx context.Context, userID int64, hello models.HelloRequest, transport Transport) error
	PublishChanges(ctx context.Context, summary models.ChangeSummary) error
	ForceSyncRepositories(ctx context.Context, userID int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.BuildInfo
}

// Transport delivers messages to one connected client.
type Transport interface {
	Send(ctx context.Context, msg any) error
}

// ChangeHub is the fan-out sessions subscribe to.
type ChangeHub interface {
	Publish(summary models.ChangeSummary) error
	Subscribe() *fanout.Subscription
}

// AgentRegistry starts and keeps alive entity sync agents.
type AgentRegistry interface {
	Sync(kind models.EntityKind, id, requesterID int64)
	ForceSyncRepositories(userID int64)
}
