package download

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ytget/media-downloader/internal/logging"
	"github.com/ytget/media-downloader/internal/model"
	"github.com/ytget/media-downloader/internal/platform"
)

// Fetcher is the boundary to the external media engine. Fetch blocks until the
// URL has been downloaded and post-processed, and returns the produced file
// path when the engine reports one.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts Options, hook func(model.ProgressEvent)) (string, error)
}

// Shim performs a single delegated download per call
type Shim struct {
	cfg     Config
	fetcher Fetcher
	logger  *zap.Logger
}

// NewShim creates a shim writing into cfg.OutputDir, or the working directory when empty
func NewShim(cfg Config, fetcher Fetcher, logger *zap.Logger) *Shim {
	cfg = cfg.withDefaults()
	if cfg.OutputDir == "" {
		cfg.OutputDir = platform.DefaultOutputDir()
	}
	return &Shim{
		cfg:     cfg,
		fetcher: fetcher,
		logger:  logging.OrNop(logger),
	}
}

// OutputDir returns the directory files are written to
func (s *Shim) OutputDir() string {
	return s.cfg.OutputDir
}

// Config returns the effective configuration
func (s *Shim) Config() Config {
	return s.cfg
}

// Download fetches url in the given mode. It blocks until the engine finishes;
// engine errors are returned unchanged.
func (s *Shim) Download(ctx context.Context, url string, mode model.Mode, onProgress ProgressFunc) (*model.Result, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, model.ErrEmptyURL
	}

	if err := platform.CreateDirectoryIfNotExists(s.cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	opts := BuildOptions(mode, s.cfg)
	s.logger.Debug("starting fetch",
		zap.String("url", url),
		zap.Stringer("mode", mode),
		zap.String("format", opts.Format),
		zap.String("output", opts.OutputTemplate))

	// engine callbacks may arrive on the engine's reader goroutine
	var (
		mu       sync.Mutex
		lastFile string
	)
	hook := ProgressHook(onProgress)
	tracked := func(tick model.ProgressEvent) {
		if tick.Filename != "" {
			mu.Lock()
			lastFile = tick.Filename
			mu.Unlock()
		}
		if hook != nil {
			hook(tick)
		}
	}

	path, err := s.fetcher.Fetch(ctx, url, opts, tracked)
	if err != nil {
		return nil, err
	}

	if path == "" {
		mu.Lock()
		path = lastFile
		mu.Unlock()
	}
	if path != "" {
		if _, statErr := os.Stat(path); statErr != nil {
			s.logger.Debug("reported output path not found", zap.String("path", path), zap.Error(statErr))
		}
	}

	return &model.Result{OutputPath: path}, nil
}
