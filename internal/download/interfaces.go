package download

import (
	"context"

	"github.com/ytget/media-downloader/internal/model"
)

// Downloader defines the interface the UI uses to drive downloads.
type Downloader interface {
	// Start validates the request and begins it in the background
	Start(ctx context.Context, url string, mode model.Mode) (*model.DownloadRequest, error)

	// Cancel aborts the in-flight request
	Cancel() error

	// Busy reports whether a request is in flight
	Busy() bool

	// Events delivers progress and completion for every request
	Events() <-chan model.Event

	// OutputDir returns where files are written
	OutputDir() string

	// Reconfigure replaces the download configuration while idle
	Reconfigure(cfg Config) error
}
