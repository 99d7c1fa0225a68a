package download

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ytget/media-downloader/internal/logging"
	"github.com/ytget/media-downloader/internal/model"
)

var (
	ErrBusy       = errors.New("a download is already in progress")
	ErrNotRunning = errors.New("no download in progress")
)

// DefaultEventBuffer is the capacity of the events channel
const DefaultEventBuffer = 64

// Service runs downloads on a background goroutine, one at a time
type Service struct {
	fetcher Fetcher
	logger  *zap.Logger
	events  chan model.Event
	busy    atomic.Bool
	wg      sync.WaitGroup

	mu      sync.Mutex
	shim    *Shim
	cancel  context.CancelFunc
	current *model.DownloadRequest
}

// NewService creates a new download service
func NewService(cfg Config, fetcher Fetcher, logger *zap.Logger) *Service {
	logger = logging.OrNop(logger)
	return &Service{
		fetcher: fetcher,
		logger:  logger,
		events:  make(chan model.Event, DefaultEventBuffer),
		shim:    NewShim(cfg, fetcher, logger),
	}
}

// Events returns the channel progress and terminal events are published on.
// Every accepted request ends with exactly one terminal event.
func (s *Service) Events() <-chan model.Event {
	return s.events
}

// Busy reports whether a request is in flight
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// Current returns the in-flight request
func (s *Service) Current() (*model.DownloadRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != nil
}

// OutputDir returns where files are written
func (s *Service) OutputDir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shim.OutputDir()
}

// Reconfigure replaces the download configuration. It fails while busy.
func (s *Service) Reconfigure(cfg Config) error {
	if err := cfg.withDefaults().Validate(); err != nil {
		return err
	}
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.busy.Store(false)

	s.mu.Lock()
	s.shim = NewShim(cfg, s.fetcher, s.logger)
	s.mu.Unlock()
	s.logger.Info("download configuration updated", zap.String("output_dir", cfg.OutputDir))
	return nil
}

// Start begins downloading url in the background. It returns ErrBusy if a
// request is already in flight and model.ErrEmptyURL for blank input.
func (s *Service) Start(ctx context.Context, url string, mode model.Mode) (*model.DownloadRequest, error) {
	req, err := model.NewDownloadRequest(url, mode)
	if err != nil {
		return nil, err
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	shim := s.shim
	s.cancel = cancel
	s.current = req
	s.mu.Unlock()

	s.logger.Info("download accepted",
		zap.String("request_id", req.ID),
		zap.String("url", req.URL),
		zap.Stringer("mode", req.Mode))

	s.wg.Add(1)
	go s.run(runCtx, cancel, shim, req)
	return req, nil
}

// Cancel aborts the in-flight request. The request still ends with a terminal event.
func (s *Service) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return ErrNotRunning
	}
	s.logger.Info("cancelling download", zap.String("request_id", s.current.ID))
	s.cancel()
	return nil
}

// Wait blocks until the in-flight request, if any, has published its terminal event
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) run(ctx context.Context, cancel context.CancelFunc, shim *Shim, req *model.DownloadRequest) {
	defer s.wg.Done()

	var (
		result *model.Result
		err    error
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("download panicked: %v", r)
		}
		ev := s.terminalEvent(ctx, req, result, err)
		cancel()

		s.mu.Lock()
		s.cancel = nil
		s.current = nil
		s.mu.Unlock()
		s.busy.Store(false)

		// terminal events are never dropped
		s.events <- ev
	}()

	s.publish(model.Event{RequestID: req.ID, Kind: model.EventStarted})

	result, err = shim.Download(ctx, req.URL, req.Mode, func(percent float64, tick model.ProgressEvent) {
		s.publish(model.Event{
			RequestID:       req.ID,
			Kind:            model.EventProgress,
			Percent:         percent,
			DownloadedBytes: tick.DownloadedBytes,
			TotalBytes:      tick.Total(),
		})
	})
}

func (s *Service) terminalEvent(ctx context.Context, req *model.DownloadRequest, result *model.Result, err error) model.Event {
	log := s.logger.With(zap.String("request_id", req.ID))

	switch {
	case err == nil:
		log.Info("download completed", zap.String("output", result.OutputPath))
		return model.Event{RequestID: req.ID, Kind: model.EventCompleted, Percent: 100, Result: result}
	case ctx.Err() != nil:
		log.Info("download cancelled", zap.Error(err))
		return model.Event{RequestID: req.ID, Kind: model.EventCancelled, Err: err}
	default:
		log.Warn("download failed", zap.Error(err))
		return model.Event{RequestID: req.ID, Kind: model.EventFailed, Err: err}
	}
}

// publish delivers a non-terminal event, dropping it if the consumer is behind
func (s *Service) publish(ev model.Event) {
	select {
	case s.events <- ev:
	default:
		s.logger.Debug("dropping event, consumer is behind",
			zap.String("request_id", ev.RequestID),
			zap.String("kind", string(ev.Kind)))
	}
}
