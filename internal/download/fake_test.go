package download

import (
	"context"
	"sync"

	"github.com/ytget/media-downloader/internal/model"
)

type fetchCall struct {
	URL  string
	Opts Options
}

// fakeFetcher stands in for the media engine
type fakeFetcher struct {
	mu    sync.Mutex
	calls []fetchCall
	fn    func(ctx context.Context, hook func(model.ProgressEvent)) (string, error)
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string, opts Options, hook func(model.ProgressEvent)) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{URL: url, Opts: opts})
	fn := f.fn
	f.mu.Unlock()

	if fn == nil {
		return "", nil
	}
	return fn(ctx, hook)
}

func (f *fakeFetcher) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fetchCall(nil), f.calls...)
}
