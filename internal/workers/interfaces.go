// Package workers runs the long-lived background components of the server
// (the agent registry, the change hub) under one errgroup.
package workers

import "context"

// Worker blocks in Run until ctx is done or it fails. A worker must release
// its resources before Run returns.
type Worker interface {
	Run(ctx context.Context) error
}
