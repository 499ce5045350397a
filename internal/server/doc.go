// Package server runs the HTTP server and the background workers until the
// process receives a stop signal, then shuts both down gracefully.
package server
