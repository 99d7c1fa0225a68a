package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/media-downloader/internal/download"
	"github.com/ytget/media-downloader/internal/model"
	"github.com/ytget/media-downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyDefaultMode        = "default_mode"
	KeyAudioCodec         = "audio_codec"
	KeyAudioQuality       = "audio_quality"
	KeyVideoContainer     = "video_container"
	KeyFilenameTemplate   = "filename_template"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyYTDLPPath          = "ytdlp_path"
)

// Default values
const (
	DefaultMode               = model.ModeAudio
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory. Until one is
// chosen the default is resolved on every launch and never stored.
func (s *Settings) GetDownloadDirectory() string {
	if dir := s.app.Preferences().String(KeyDownloadDir); dir != "" {
		return dir
	}
	return platform.DefaultOutputDir()
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetDefaultMode returns the mode preselected in the window
func (s *Settings) GetDefaultMode() model.Mode {
	mode, err := model.ParseMode(s.app.Preferences().String(KeyDefaultMode))
	if err != nil {
		return DefaultMode
	}
	return mode
}

// SetDefaultMode sets the mode preselected in the window
func (s *Settings) SetDefaultMode(mode model.Mode) {
	s.app.Preferences().SetString(KeyDefaultMode, string(mode))
}

// GetAudioCodec returns the codec audio downloads are transcoded to
func (s *Settings) GetAudioCodec() string {
	return s.app.Preferences().StringWithFallback(KeyAudioCodec, download.DefaultAudioCodec)
}

// SetAudioCodec sets the audio transcode codec
func (s *Settings) SetAudioCodec(codec string) {
	if codec == "" {
		codec = download.DefaultAudioCodec
	}
	s.app.Preferences().SetString(KeyAudioCodec, codec)
}

// GetAudioQuality returns the audio transcode quality (bitrate or VBR level)
func (s *Settings) GetAudioQuality() string {
	return s.app.Preferences().StringWithFallback(KeyAudioQuality, download.DefaultAudioQuality)
}

// SetAudioQuality sets the audio transcode quality
func (s *Settings) SetAudioQuality(quality string) {
	if quality == "" {
		quality = download.DefaultAudioQuality
	}
	s.app.Preferences().SetString(KeyAudioQuality, quality)
}

// GetVideoContainer returns the preferred video container
func (s *Settings) GetVideoContainer() string {
	return s.app.Preferences().StringWithFallback(KeyVideoContainer, download.DefaultVideoContainer)
}

// SetVideoContainer sets the preferred video container
func (s *Settings) SetVideoContainer(container string) {
	if container == "" {
		container = download.DefaultVideoContainer
	}
	s.app.Preferences().SetString(KeyVideoContainer, container)
}

// GetFilenameTemplate returns the filename template
func (s *Settings) GetFilenameTemplate() string {
	template := s.app.Preferences().String(KeyFilenameTemplate)
	if template == "" {
		s.SetFilenameTemplate(download.DefaultFilenameTemplate)
		return download.DefaultFilenameTemplate
	}
	return template
}

// SetFilenameTemplate sets the filename template
func (s *Settings) SetFilenameTemplate(template string) {
	if template == "" {
		template = download.DefaultFilenameTemplate
	}
	s.app.Preferences().SetString(KeyFilenameTemplate, template)
}

// GetYTDLPPath returns the yt-dlp executable override, empty for the managed install
func (s *Settings) GetYTDLPPath() string {
	return s.app.Preferences().String(KeyYTDLPPath)
}

// SetYTDLPPath sets the yt-dlp executable override
func (s *Settings) SetYTDLPPath(path string) {
	s.app.Preferences().SetString(KeyYTDLPPath, path)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal the file after a successful download
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal the file after a successful download
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetAudioCodecOptions returns available audio codecs
func (s *Settings) GetAudioCodecOptions() []string {
	return download.SupportedAudioCodecs
}

// GetVideoContainerOptions returns available video containers
func (s *Settings) GetVideoContainerOptions() []string {
	return download.SupportedVideoContainers
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}

// DownloadConfig assembles the download configuration from the stored settings
func (s *Settings) DownloadConfig() download.Config {
	return download.Config{
		OutputDir:        s.GetDownloadDirectory(),
		FilenameTemplate: s.GetFilenameTemplate(),
		AudioCodec:       s.GetAudioCodec(),
		AudioQuality:     s.GetAudioQuality(),
		VideoContainer:   s.GetVideoContainer(),
	}
}

// Validate reports every invalid stored setting
func (s *Settings) Validate() error {
	return s.DownloadConfig().Validate()
}
