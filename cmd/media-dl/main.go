package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ytget/media-downloader/internal/download"
	"github.com/ytget/media-downloader/internal/logging"
	"github.com/ytget/media-downloader/internal/model"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// newFetcher builds the engine for a run; swapped in tests
var newFetcher = func(executable string, logger *zap.Logger) download.Fetcher {
	return download.NewYTDLPFetcher(executable, logger)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(ctx).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(ctx context.Context) *cli.App {
	return &cli.App{
		Name:      "media-dl",
		Usage:     "download the audio or video of a single URL",
		Version:   version,
		ArgsUsage: "URL",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "mode",
				Value: string(model.ModeAudio),
				Usage: "`MODE` to download: audio or video",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "save downloaded file to `DIR` (default: working directory)",
			},
			&cli.StringFlag{
				Name:  "codec",
				Value: download.DefaultAudioCodec,
				Usage: "audio `CODEC` for audio mode",
			},
			&cli.StringFlag{
				Name:  "quality",
				Value: download.DefaultAudioQuality,
				Usage: "audio `QUALITY` (bitrate in kbps or VBR level)",
			},
			&cli.StringFlag{
				Name:  "container",
				Value: download.DefaultVideoContainer,
				Usage: "preferred video `CONTAINER`: mp4 or webm",
			},
			&cli.StringFlag{
				Name:  "yt-dlp",
				Usage: "use the yt-dlp executable at `PATH` instead of a managed one",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "verbose logging",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one URL", 2)
			}

			mode, err := model.ParseMode(c.String("mode"))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			cfg := download.Config{
				OutputDir:      c.String("output"),
				AudioCodec:     c.String("codec"),
				AudioQuality:   c.String("quality"),
				VideoContainer: c.String("container"),
			}

			logger, err := logging.New(c.Bool("debug"))
			if err != nil {
				return fmt.Errorf("can't initialize zap logger: %w", err)
			}
			defer logger.Sync()
			zap.RedirectStdLog(logger)

			ctx := logging.WithLogger(ctx, logger)
			fetcher := newFetcher(c.String("yt-dlp"), logger)
			return run(ctx, c.App.Writer, c.App.ErrWriter, c.Args().First(), mode, cfg, fetcher)
		},
		HideHelpCommand: true,
	}
}

// run downloads url, drawing progress on errOut, and prints the produced file path to out
func run(ctx context.Context, out, errOut io.Writer, url string, mode model.Mode, cfg download.Config, fetcher download.Fetcher) error {
	logger := logging.FromContext(ctx)
	sugar := logger.Sugar()

	shim := download.NewShim(cfg, fetcher, logger)
	if err := shim.Config().Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	sugar.Infof("Downloading %s (%s) into %s", url, mode, shim.OutputDir())

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(errOut),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)

	result, err := shim.Download(ctx, url, mode, func(percent float64, _ model.ProgressEvent) {
		_ = bar.Set(int(percent))
	})
	_ = bar.Finish()
	if err != nil {
		if ctx.Err() != nil {
			sugar.Info("Download cancelled")
		}
		return err
	}

	summary := result.DisplayName()
	if info, statErr := os.Stat(result.OutputPath); statErr == nil {
		summary = fmt.Sprintf("%s (%s)", summary, humanize.Bytes(uint64(info.Size())))
	}
	sugar.Infof("Download complete: %s", summary)
	fmt.Fprintln(out, result.OutputPath)
	return nil
}
