package client

import "errors"

var (
	ErrNoToken            = errors.New("no token: pass -token or -sign-key with -user")
	ErrUnknownMessageType = errors.New("unknown message type")
)
