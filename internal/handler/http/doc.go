// Package http is the HTTP surface of the sync server: the websocket sync
// endpoint, change ingestion for webhook processing, saved query routes and
// the version endpoint. Tracing, access logging, authentication and rate
// limiting are chi middlewares applied per route group.
package http
