package download

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/ytget/media-downloader/internal/logging"
	"github.com/ytget/media-downloader/internal/model"
)

const (
	DefaultProgressInterval = 500 * time.Millisecond

	// printed by the engine once the final file is in place
	printFinalPath = "after_move:filepath"
)

// YTDLPFetcher runs downloads through the yt-dlp executable
type YTDLPFetcher struct {
	executable       string
	progressInterval time.Duration
	logger           *zap.Logger

	// swapped in tests
	installYTDLP  func(ctx context.Context) error
	installFFmpeg func(ctx context.Context) error

	installMu       sync.Mutex
	ytdlpInstalled  bool
	ffmpegInstalled bool
}

// NewYTDLPFetcher creates a fetcher. An empty executable means the binary is
// resolved, and downloaded if missing, by go-ytdlp on first use. ffmpeg and
// ffprobe are resolved the same way before the first audio extraction.
func NewYTDLPFetcher(executable string, logger *zap.Logger) *YTDLPFetcher {
	f := &YTDLPFetcher{
		executable:       executable,
		progressInterval: DefaultProgressInterval,
		logger:           logging.OrNop(logger),
	}
	f.installYTDLP = f.installManagedYTDLP
	f.installFFmpeg = f.installManagedFFmpeg
	return f
}

// Fetch implements Fetcher
func (f *YTDLPFetcher) Fetch(ctx context.Context, url string, opts Options, hook func(model.ProgressEvent)) (string, error) {
	_, extractsAudio := opts.ExtractsAudio()
	if err := f.ensureInstalled(ctx, extractsAudio); err != nil {
		return "", err
	}

	result, err := f.command(opts, hook).Run(ctx, url)
	if err != nil {
		return "", err
	}

	return lastLine(result.Stdout), nil
}

// ensureInstalled makes sure a yt-dlp binary is available, plus ffmpeg when
// the request transcodes audio. A failed attempt is retried on the next fetch.
func (f *YTDLPFetcher) ensureInstalled(ctx context.Context, needFFmpeg bool) error {
	f.installMu.Lock()
	defer f.installMu.Unlock()

	if f.executable == "" && !f.ytdlpInstalled {
		if err := f.installYTDLP(ctx); err != nil {
			return err
		}
		f.ytdlpInstalled = true
	}

	if needFFmpeg && !f.ffmpegInstalled {
		if err := f.installFFmpeg(ctx); err != nil {
			return err
		}
		f.ffmpegInstalled = true
	}
	return nil
}

func (f *YTDLPFetcher) installManagedYTDLP(ctx context.Context) error {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return err
	}
	f.logger.Info("yt-dlp ready", zap.String("path", resolved.Executable), zap.String("version", resolved.Version))
	return nil
}

// installManagedFFmpeg uses a system ffmpeg/ffprobe when present, otherwise
// downloads them into the go-ytdlp cache, which is on the engine's PATH.
func (f *YTDLPFetcher) installManagedFFmpeg(ctx context.Context) error {
	if _, err := ytdlp.InstallFFmpeg(ctx, nil); err != nil {
		return err
	}
	f.logger.Info("ffmpeg ready")
	return nil
}

// command translates Options into a yt-dlp invocation
func (f *YTDLPFetcher) command(opts Options, hook func(model.ProgressEvent)) *ytdlp.Command {
	dl := ytdlp.New().
		Format(opts.Format).
		Output(opts.OutputTemplate).
		Print(printFinalPath)

	if f.executable != "" {
		dl.SetExecutable(f.executable)
	}
	if opts.Quiet {
		dl.Quiet()
	}
	if opts.NoPlaylist {
		dl.NoPlaylist()
	}
	if pp, ok := opts.ExtractsAudio(); ok {
		dl.ExtractAudio().
			AudioFormat(pp.PreferredCodec).
			AudioQuality(pp.PreferredQuality)
	}

	if hook != nil {
		dl.ProgressFunc(f.progressInterval, func(update ytdlp.ProgressUpdate) {
			hook(toProgressEvent(update))
		})
	}

	return dl
}

func toProgressEvent(update ytdlp.ProgressUpdate) model.ProgressEvent {
	return model.ProgressEvent{
		Status:          model.ProgressStatus(update.Status),
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		Filename:        update.Filename,
	}
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
