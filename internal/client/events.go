package client

import "github.com/MKhiriev/go-ship-sync/models"

// Event is anything the monitor renders.
type Event interface {
	event()
}

type (
	// Connected is sent once the hello went out.
	Connected struct{ ClientID string }
	// Hello carries the server's hello answer.
	Hello struct{ models.HelloResponse }
	// Page carries one sync page.
	Page struct{ models.SyncResponse }
	// RateLimited tells that GitHub refuses the user's token.
	RateLimited struct{ models.RateLimitResponse }
	// Subscription carries the plan state.
	Subscription struct{ models.SubscriptionResponse }
	// Disconnected ends a connection. Err is nil on a normal close.
	Disconnected struct{ Err error }
)

func (Connected) event()    {}
func (Hello) event()        {}
func (Page) event()         {}
func (RateLimited) event()  {}
func (Subscription) event() {}
func (Disconnected) event() {}
