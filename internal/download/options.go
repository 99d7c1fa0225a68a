package download

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/ytget/media-downloader/internal/model"
)

// Post-processor keys understood by the engine
const (
	PostProcessorExtractAudio = "FFmpegExtractAudio"
)

// Default values
const (
	DefaultAudioCodec       = "mp3"
	DefaultAudioQuality     = "192"
	DefaultVideoContainer   = "mp4"
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
	AudioFormatSelector     = "bestaudio/best"
)

// SupportedAudioCodecs lists the codecs the extract-audio post-processor accepts
var SupportedAudioCodecs = []string{"mp3", "m4a", "aac", "opus", "vorbis", "flac", "wav"}

// SupportedVideoContainers lists the containers the video format selector can prefer
var SupportedVideoContainers = []string{"mp4", "webm"}

// containerAudioExt pairs each video container with the audio stream extension it muxes cleanly with
var containerAudioExt = map[string]string{
	"mp4":  "m4a",
	"webm": "webm",
}

// bitrate ("192", "320K") or VBR level ("0".."10")
var audioQualityPattern = regexp.MustCompile(`^[0-9]+[kK]?$`)

// Config holds the engineer-configurable parts of every request
type Config struct {
	OutputDir        string
	FilenameTemplate string
	AudioCodec       string
	AudioQuality     string
	VideoContainer   string
}

// DefaultConfig returns the configuration used when nothing is customised.
// OutputDir is left empty and resolved to the working directory by NewShim.
func DefaultConfig() Config {
	return Config{
		FilenameTemplate: DefaultFilenameTemplate,
		AudioCodec:       DefaultAudioCodec,
		AudioQuality:     DefaultAudioQuality,
		VideoContainer:   DefaultVideoContainer,
	}
}

// withDefaults fills empty fields from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FilenameTemplate == "" {
		c.FilenameTemplate = d.FilenameTemplate
	}
	if c.AudioCodec == "" {
		c.AudioCodec = d.AudioCodec
	}
	if c.AudioQuality == "" {
		c.AudioQuality = d.AudioQuality
	}
	if c.VideoContainer == "" {
		c.VideoContainer = d.VideoContainer
	}
	return c
}

// Validate reports every invalid field at once
func (c Config) Validate() error {
	var result *multierror.Error

	if !isSupportedCodec(c.AudioCodec) {
		result = multierror.Append(result, fmt.Errorf("unsupported audio codec %q (want one of %s)",
			c.AudioCodec, strings.Join(SupportedAudioCodecs, ", ")))
	}
	if !audioQualityPattern.MatchString(c.AudioQuality) {
		result = multierror.Append(result, fmt.Errorf("invalid audio quality %q", c.AudioQuality))
	}
	if _, ok := containerAudioExt[c.VideoContainer]; !ok {
		result = multierror.Append(result, fmt.Errorf("unsupported video container %q", c.VideoContainer))
	}
	if !strings.Contains(c.FilenameTemplate, "%(ext)s") {
		result = multierror.Append(result, fmt.Errorf("filename template %q must contain %%(ext)s", c.FilenameTemplate))
	}

	return result.ErrorOrNil()
}

// PostProcessor is a transcoding step applied after the raw download
type PostProcessor struct {
	Key              string
	PreferredCodec   string
	PreferredQuality string
}

// Options is the configuration object handed to a Fetcher for one request
type Options struct {
	Format         string
	OutputTemplate string
	PostProcessors []PostProcessor
	Quiet          bool
	NoPlaylist     bool
}

// ExtractsAudio reports whether the audio transcode post-processor is configured
func (o Options) ExtractsAudio() (PostProcessor, bool) {
	for _, pp := range o.PostProcessors {
		if pp.Key == PostProcessorExtractAudio {
			return pp, true
		}
	}
	return PostProcessor{}, false
}

// BuildOptions returns the static engine configuration for a mode
func BuildOptions(mode model.Mode, cfg Config) Options {
	cfg = cfg.withDefaults()
	opts := Options{
		OutputTemplate: filepath.Join(cfg.OutputDir, cfg.FilenameTemplate),
		Quiet:          true,
		NoPlaylist:     true,
	}

	if mode.IsAudio() {
		opts.Format = AudioFormatSelector
		opts.PostProcessors = []PostProcessor{{
			Key:              PostProcessorExtractAudio,
			PreferredCodec:   cfg.AudioCodec,
			PreferredQuality: cfg.AudioQuality,
		}}
		return opts
	}

	opts.Format = VideoFormatSelector(cfg.VideoContainer)
	return opts
}

// VideoFormatSelector prefers a combined stream in container, falling back to a
// single file in that container and finally to whatever is best.
func VideoFormatSelector(container string) string {
	audioExt, ok := containerAudioExt[container]
	if !ok {
		container, audioExt = DefaultVideoContainer, containerAudioExt[DefaultVideoContainer]
	}
	return fmt.Sprintf("bestvideo[ext=%s]+bestaudio[ext=%s]/best[ext=%s]/best", container, audioExt, container)
}

func isSupportedCodec(codec string) bool {
	for _, c := range SupportedAudioCodecs {
		if c == codec {
			return true
		}
	}
	return false
}
