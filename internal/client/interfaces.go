// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable sync clients.
type Client interface {
	// Run connects and delivers events until ctx is done or the connection
	// drops.
	Run(ctx context.Context, events chan<- Event) error
}
