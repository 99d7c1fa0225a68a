package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/media-downloader/internal/config"
	"github.com/ytget/media-downloader/internal/model"
)

func newTestSettingsDialog(t *testing.T) (*SettingsDialog, fyne.App, *int) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	settings := config.NewSettings(app)
	saved := 0
	sd := NewSettingsDialog(settings, NewLocalization(), app.NewWindow("test"), func() { saved++ })
	sd.loadCurrentSettings()
	return sd, app, &saved
}

func TestSettingsDialog_SaveKeepsDefaultDirectoryUnset(t *testing.T) {
	wd := t.TempDir()
	t.Chdir(wd)
	sd, app, saved := newTestSettingsDialog(t)
	settings := sd.settings

	sd.codecSelect.SetSelected("opus")
	sd.modeSelect.SetSelected(string(model.ModeVideo))
	sd.onSave(true)

	assert.Equal(t, 1, *saved)
	assert.Equal(t, "opus", settings.GetAudioCodec())
	assert.Equal(t, model.ModeVideo, settings.GetDefaultMode())
	assert.Empty(t, app.Preferences().String(config.KeyDownloadDir))
	assert.Equal(t, wd, settings.DownloadConfig().OutputDir)
}

func TestSettingsDialog_SaveStoresChosenDirectory(t *testing.T) {
	sd, _, saved := newTestSettingsDialog(t)
	settings := sd.settings
	dir := t.TempDir()

	sd.downloadDirEntry.SetText(dir)
	sd.onSave(true)

	assert.Equal(t, 1, *saved)
	assert.Equal(t, dir, settings.GetDownloadDirectory())
}

func TestSettingsDialog_InvalidInputNotSaved(t *testing.T) {
	sd, _, saved := newTestSettingsDialog(t)
	settings := sd.settings

	sd.qualityEntry.SetText("loud")
	sd.filenameEntry.SetText("%(title)s")
	sd.onSave(true)

	assert.Equal(t, 0, *saved)
	assert.Equal(t, "192", settings.GetAudioQuality())
	require.NotEqual(t, "%(title)s", settings.GetFilenameTemplate())
}
