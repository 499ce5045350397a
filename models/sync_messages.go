package models

import "time"

// MessageType discriminates the JSON messages exchanged over a sync connection.
type MessageType string

const (
	MessageHello        MessageType = "hello"
	MessageSync         MessageType = "sync"
	MessageRateLimit    MessageType = "ratelimit"
	MessageSubscription MessageType = "subscription"
)

// HelloRequest is the first message a client sends after connecting.
// Versions is optional: when absent the server resumes from the state it
// persisted for ClientID.
type HelloRequest struct {
	Msg         MessageType     `json:"msg"`
	ClientBuild int64           `json:"clientBuild"`
	UserID      int64           `json:"user"`
	ClientID    string          `json:"clientId"`
	Versions    *VersionDetails `json:"versions,omitempty"`
}

// HelloResponse answers a hello. Clients wipe their local database when the
// purge identifier changes.
type HelloResponse struct {
	Msg             MessageType     `json:"msg"`
	PurgeIdentifier string          `json:"purgeIdentifier"`
	SpiderProgress  *SpiderProgress `json:"spiderProgress,omitempty"`
}

// SyncResponse is one page of changes.
type SyncResponse struct {
	Msg            MessageType     `json:"msg"`
	Logs           []SyncLogEntry  `json:"logs"`
	Remaining      int64           `json:"remaining"`
	Versions       VersionDetails  `json:"versions"`
	SpiderProgress *SpiderProgress `json:"spiderProgress,omitempty"`
}

// RateLimitResponse advises the client that GitHub refuses requests for the
// user until the given time.
type RateLimitResponse struct {
	Msg   MessageType `json:"msg"`
	Until time.Time   `json:"until"`
}

// SubscriptionResponse tells the client its plan state.
type SubscriptionResponse struct {
	Msg  MessageType `json:"msg"`
	Mode string      `json:"mode"`
}

// SpiderProgress reports how far the initial import of the user's data got.
type SpiderProgress struct {
	Summary  string  `json:"summary"`
	Progress float64 `json:"progress"`
}
