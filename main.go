package main

import (
	"context"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/media-downloader/internal/config"
	"github.com/ytget/media-downloader/internal/download"
	"github.com/ytget/media-downloader/internal/logging"
	"github.com/ytget/media-downloader/internal/platform"
	"github.com/ytget/media-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID = "com.ytget.media-downloader"

	shutdownTimeout = 3 * time.Second
)

func main() {
	logger, err := logging.New(os.Getenv("MEDIA_DL_DEBUG") != "")
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.RedirectStdLog(logger)

	logger.Info("starting", zap.String("version", version))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logging.WithLogger(ctx, logger)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow("")

	// Initialize services
	settings := config.NewSettings(myApp)
	if err := settings.Validate(); err != nil {
		logger.Warn("stored settings are invalid, defaults apply where needed", zap.Error(err))
	}
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		logger.Warn("failed to ensure downloads dir", zap.String("dir", downloadsDir), zap.Error(err))
	}

	fetcher := download.NewYTDLPFetcher(settings.GetYTDLPPath(), logger)
	downloadSvc := download.NewService(settings.DownloadConfig(), fetcher, logger)

	// Create and setup UI
	ui.NewRootUI(ctx, myWindow, settings, downloadSvc)

	// Show and run
	myWindow.ShowAndRun()

	// Window closed: abort whatever is still running
	cancel()
	if err := downloadSvc.Cancel(); err == nil {
		done := make(chan struct{})
		go func() {
			downloadSvc.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(shutdownTimeout):
			logger.Warn("download did not stop in time")
		}
	}
}
