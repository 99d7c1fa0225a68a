package ui

import (
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/media-downloader/internal/config"
	"github.com/ytget/media-downloader/internal/download"
	"github.com/ytget/media-downloader/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	downloadDirEntry *widget.Entry
	modeSelect       *widget.Select
	codecSelect      *widget.Select
	qualityEntry     *widget.Entry
	containerSelect  *widget.Select
	filenameEntry    *widget.Entry
	ytdlpEntry       *widget.Entry
	languageSelect   *widget.Select
	autoRevealCheck  *widget.Check

	// display name -> language code
	languageCodes map[string]string
	// directory shown when the dialog opened
	loadedDir string
}

// ShowSettingsDialog opens the settings dialog; onSaved runs after a successful save
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window, onSaved)
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	// Download directory selection
	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.modeSelect = widget.NewSelect([]string{string(model.ModeAudio), string(model.ModeVideo)}, nil)
	sd.codecSelect = widget.NewSelect(sd.settings.GetAudioCodecOptions(), nil)

	sd.qualityEntry = widget.NewEntry()
	sd.qualityEntry.SetPlaceHolder(download.DefaultAudioQuality)

	sd.containerSelect = widget.NewSelect(sd.settings.GetVideoContainerOptions(), nil)

	sd.filenameEntry = widget.NewEntry()
	sd.filenameEntry.SetPlaceHolder(download.DefaultFilenameTemplate)

	sd.ytdlpEntry = widget.NewEntry()

	// Language selection shows display names, stores codes
	sd.languageCodes = make(map[string]string)
	languageOptions := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.autoRevealCheck = widget.NewCheck(l.GetText(KeyAutoReveal), nil)

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(l.GetText(KeyDefaultMode), sd.modeSelect),
		widget.NewFormItem(l.GetText(KeyAudioCodec), sd.codecSelect),
		widget.NewFormItem(l.GetText(KeyAudioQuality), sd.qualityEntry),
		widget.NewFormItem(l.GetText(KeyVideoContainer), sd.containerSelect),
		widget.NewFormItem(l.GetText(KeyFilenameTemplate), sd.filenameEntry),
		widget.NewFormItem(l.GetText(KeyYTDLPPath), sd.ytdlpEntry),
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
	)

	content := container.NewVBox(form, sd.autoRevealCheck)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		content,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(560, 460))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.loadedDir = sd.settings.GetDownloadDirectory()
	sd.downloadDirEntry.SetText(sd.loadedDir)
	sd.modeSelect.SetSelected(string(sd.settings.GetDefaultMode()))
	sd.codecSelect.SetSelected(sd.settings.GetAudioCodec())
	sd.qualityEntry.SetText(sd.settings.GetAudioQuality())
	sd.containerSelect.SetSelected(sd.settings.GetVideoContainer())
	sd.filenameEntry.SetText(sd.settings.GetFilenameTemplate())
	sd.ytdlpEntry.SetText(sd.settings.GetYTDLPPath())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
		}
	}
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// candidateConfig is the download configuration the form currently describes
func (sd *SettingsDialog) candidateConfig() download.Config {
	cfg := sd.settings.DownloadConfig()
	if dir := strings.TrimSpace(sd.downloadDirEntry.Text); dir != "" {
		cfg.OutputDir = dir
	}
	if sd.codecSelect.Selected != "" {
		cfg.AudioCodec = sd.codecSelect.Selected
	}
	if q := strings.TrimSpace(sd.qualityEntry.Text); q != "" {
		cfg.AudioQuality = q
	}
	if sd.containerSelect.Selected != "" {
		cfg.VideoContainer = sd.containerSelect.Selected
	}
	if tmpl := strings.TrimSpace(sd.filenameEntry.Text); tmpl != "" {
		cfg.FilenameTemplate = tmpl
	}
	return cfg
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	cfg := sd.candidateConfig()
	if err := cfg.Validate(); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}

	// an untouched default stays unset so it keeps following the launch directory
	if cfg.OutputDir != sd.loadedDir {
		sd.settings.SetDownloadDirectory(cfg.OutputDir)
	}
	sd.settings.SetAudioCodec(cfg.AudioCodec)
	sd.settings.SetAudioQuality(cfg.AudioQuality)
	sd.settings.SetVideoContainer(cfg.VideoContainer)
	sd.settings.SetFilenameTemplate(cfg.FilenameTemplate)
	sd.settings.SetYTDLPPath(strings.TrimSpace(sd.ytdlpEntry.Text))
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if mode, err := model.ParseMode(sd.modeSelect.Selected); err == nil {
		sd.settings.SetDefaultMode(mode)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
