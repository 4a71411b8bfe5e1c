// Package app wires configuration, data and adapters into a runnable
// tracker service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kilianp07/predtrack/api"
	"github.com/kilianp07/predtrack/config"
	"github.com/kilianp07/predtrack/core/dataset"
	coremetrics "github.com/kilianp07/predtrack/core/metrics"
	corepref "github.com/kilianp07/predtrack/core/preferences"
	"github.com/kilianp07/predtrack/core/tracker"
	"github.com/kilianp07/predtrack/infra/logger"
	"github.com/kilianp07/predtrack/infra/metrics"
	_ "github.com/kilianp07/predtrack/infra/preferences"
)

// Service owns the tracker, the preference service and the metrics sinks.
type Service struct {
	Tracker *tracker.Tracker
	Prefs   *corepref.Service

	cfg  *config.Config
	sink coremetrics.Sink
	log  logger.Logger
}

// New loads the dataset and builds every component described by cfg.
func New(cfg *config.Config) (*Service, error) {
	logger.Configure(cfg.Log.Options())
	logg := logger.New("service")

	ds, err := dataset.NewLoader(logger.New("dataset")).Load(cfg.Data.Predictions, cfg.Data.BlogPosts)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := corepref.NewStore(cfg.Preferences.Module())
	if err != nil {
		if cerr := closeSink(sink); cerr != nil {
			logg.Warnf("close metrics sink: %v", cerr)
		}
		return nil, fmt.Errorf("preferences store: %w", err)
	}

	tr := tracker.New(ds, tracker.Options{
		Segments: cfg.Timeline.Segments,
		CacheTTL: cfg.Cache.TTL(),
		Sink:     sink,
		Log:      logger.New("tracker"),
	})
	logg.Infof("loaded %d predictions and %d blog posts", len(ds.Predictions), len(ds.Posts))
	return &Service{
		Tracker: tr,
		Prefs:   corepref.NewService(store, cfg.Preferences.Theme()),
		cfg:     cfg,
		sink:    sink,
		log:     logg,
	}, nil
}

// Handler returns the HTTP API of the service.
func (s *Service) Handler() http.Handler {
	return api.NewRouter(api.Deps{
		Tracker:    s.Tracker,
		Prefs:      s.Prefs,
		Metrics:    metrics.Handler(nil),
		Log:        logger.New("api"),
		BasePath:   s.cfg.Server.BasePath,
		WriteToken: s.cfg.Server.WriteToken,
	})
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve publishes the accuracy snapshot, then serves the API on ln until
// ctx is cancelled.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	if err := s.Tracker.PublishSnapshot(); err != nil {
		s.log.Warnf("publish snapshot: %v", err)
	}
	watchCtx, stopWatch := context.WithCancel(ctx)
	watched := s.Prefs.Watch(watchCtx, func(c corepref.Change) {
		s.log.Infof("theme changed from %s to %s", c.Previous, c.Theme)
	})

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("serving on %s%s", ln.Addr(), s.cfg.Server.BasePath)
		errCh <- srv.Serve(ln)
	}()

	var err error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = srv.Shutdown(shutdownCtx)
		cancel()
		<-errCh
	case err = <-errCh:
	}
	stopWatch()
	<-watched
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close releases the preference store and the metrics sinks.
func (s *Service) Close() error {
	var errs []error
	if err := s.Prefs.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := closeSink(s.sink); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func closeSink(sink coremetrics.Sink) error {
	if c, ok := sink.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
