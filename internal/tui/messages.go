package tui

import "github.com/MKhiriev/go-ship-sync/internal/client"

// eventMsg carries one client event together with the channel the next one
// comes from.
type eventMsg struct {
	event  client.Event
	events <-chan client.Event
}
