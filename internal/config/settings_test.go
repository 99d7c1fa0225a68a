package config

import (
	"os"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/media-downloader/internal/download"
	"github.com/ytget/media-downloader/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Default is the working directory
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, settings.GetDownloadDirectory())
	// the default is not pinned to the first launch directory
	assert.Empty(t, app.Preferences().String(KeyDownloadDir))

	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)
	assert.Equal(t, customDir, settings.GetDownloadDirectory())
}

func TestDefaultMode(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	assert.Equal(t, model.ModeAudio, settings.GetDefaultMode())

	settings.SetDefaultMode(model.ModeVideo)
	assert.Equal(t, model.ModeVideo, settings.GetDefaultMode())

	// garbage falls back to the default
	app.Preferences().SetString(KeyDefaultMode, "hologram")
	assert.Equal(t, model.ModeAudio, settings.GetDefaultMode())
}

func TestAudioSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	assert.Equal(t, "mp3", settings.GetAudioCodec())
	assert.Equal(t, "192", settings.GetAudioQuality())

	settings.SetAudioCodec("opus")
	settings.SetAudioQuality("0")
	assert.Equal(t, "opus", settings.GetAudioCodec())
	assert.Equal(t, "0", settings.GetAudioQuality())

	// empty values reset to defaults
	settings.SetAudioCodec("")
	settings.SetAudioQuality("")
	assert.Equal(t, download.DefaultAudioCodec, settings.GetAudioCodec())
	assert.Equal(t, download.DefaultAudioQuality, settings.GetAudioQuality())
}

func TestVideoContainer(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	assert.Equal(t, "mp4", settings.GetVideoContainer())

	settings.SetVideoContainer("webm")
	assert.Equal(t, "webm", settings.GetVideoContainer())
}

func TestFilenameTemplate(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	template := settings.GetFilenameTemplate()
	if template != download.DefaultFilenameTemplate {
		t.Errorf("Expected default template %s, got %s", download.DefaultFilenameTemplate, template)
	}

	customTemplate := "%(uploader)s - %(title)s.%(ext)s"
	settings.SetFilenameTemplate(customTemplate)
	if got := settings.GetFilenameTemplate(); got != customTemplate {
		t.Errorf("Expected template %s, got %s", customTemplate, got)
	}

	// Test empty template defaults back
	settings.SetFilenameTemplate("")
	if got := settings.GetFilenameTemplate(); got != download.DefaultFilenameTemplate {
		t.Errorf("Empty template should default to %s, got %s", download.DefaultFilenameTemplate, got)
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("en")
	if got := settings.GetLanguage(); got != "en" {
		t.Errorf("Expected language 'en', got %s", got)
	}
}

func TestAutoReveal(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	assert.False(t, settings.GetAutoRevealOnComplete())
	settings.SetAutoRevealOnComplete(true)
	assert.True(t, settings.GetAutoRevealOnComplete())
}

func TestYTDLPPath(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	assert.Empty(t, settings.GetYTDLPPath())
	settings.SetYTDLPPath("/opt/yt-dlp")
	assert.Equal(t, "/opt/yt-dlp", settings.GetYTDLPPath())
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}

func TestOptions(t *testing.T) {
	settings := NewSettings(test.NewApp())

	assert.Contains(t, settings.GetAudioCodecOptions(), "mp3")
	assert.Equal(t, []string{"mp4", "webm"}, settings.GetVideoContainerOptions())
}

func TestDownloadConfig(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)
	settings.SetDownloadDirectory("/srv/media")
	settings.SetAudioCodec("flac")
	settings.SetVideoContainer("webm")

	cfg := settings.DownloadConfig()

	assert.Equal(t, download.Config{
		OutputDir:        "/srv/media",
		FilenameTemplate: download.DefaultFilenameTemplate,
		AudioCodec:       "flac",
		AudioQuality:     download.DefaultAudioQuality,
		VideoContainer:   "webm",
	}, cfg)
	assert.NoError(t, settings.Validate())
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)
	settings.SetAudioCodec("midi")
	settings.SetVideoContainer("avi")

	err := settings.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "midi")
	assert.Contains(t, err.Error(), "avi")
}

func TestDownloadDirectory_FollowsWorkingDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	first := t.TempDir()
	second := t.TempDir()

	t.Chdir(first)
	assert.Equal(t, first, settings.GetDownloadDirectory())

	t.Chdir(second)
	assert.Equal(t, second, settings.GetDownloadDirectory())
	assert.Equal(t, second, settings.DownloadConfig().OutputDir)
}
