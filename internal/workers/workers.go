package workers

import (
	"context"

	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"golang.org/x/sync/errgroup"
)

type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

func NewWorkers(logger *logger.Logger, workers ...Worker) *Workers {
	return &Workers{workers: workers, logger: logger}
}

// Run starts every worker and waits for all of them. The first failure
// cancels the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}

	w.logger.Info().Int("workers", len(w.workers)).Msg("workers started")
	err := g.Wait()
	w.logger.Info().Err(err).Msg("workers stopped")
	return err
}
