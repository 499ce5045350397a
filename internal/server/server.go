package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-ship-sync/internal/config"
	"github.com/MKhiriev/go-ship-sync/internal/handler"
	"github.com/MKhiriev/go-ship-sync/internal/logger"
	"github.com/MKhiriev/go-ship-sync/internal/workers"
	"golang.org/x/sync/errgroup"
)

type server struct {
	httpServer   *httpServer
	workers      *workers.Workers
	shutdownOnce sync.Once
	logger       *logger.Logger
}

func NewServer(handlers *handler.Handlers, workers *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoHTTPHandler
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:    workers,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.run(ctx)
}

// run serves until ctx is done or a component fails. Workers outlive the
// HTTP server so sessions can still read while they wind down.
func (s *server) run(ctx context.Context) error {
	serveCtx, cancelServe := context.WithCancel(ctx)
	defer cancelServe()

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	g := new(errgroup.Group)
	g.Go(func() error {
		defer cancelServe()
		return s.httpServer.run()
	})
	g.Go(func() error {
		defer cancelServe()
		if s.workers == nil {
			<-workerCtx.Done()
			return nil
		}
		return s.workers.Run(workerCtx)
	})
	g.Go(func() error {
		<-serveCtx.Done()
		s.Shutdown()
		cancelWorkers()
		return nil
	})

	err := g.Wait()
	s.logger.Info().Err(err).Msg("server shut down")
	return err
}

func (s *server) Shutdown() {
	s.shutdownOnce.Do(s.httpServer.shutdown)
}
