package ui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ytget/media-downloader/internal/config"
	"github.com/ytget/media-downloader/internal/download"
	"github.com/ytget/media-downloader/internal/logging"
	"github.com/ytget/media-downloader/internal/model"
	"github.com/ytget/media-downloader/internal/platform"
)

// ViewState is everything the window shows, guarded by RootUI.mu
type ViewState struct {
	Status          model.TaskStatus
	StatusText      string
	Detail          string
	Percent         float64 // 0 to 100
	ProgressVisible bool
	DownloadEnabled bool
	CancelEnabled   bool
	OutputPath      string
}

// RootUI represents the main window
type RootUI struct {
	ctx          context.Context
	window       fyne.Window
	downloadSvc  download.Downloader
	settings     *config.Settings
	localization *Localization
	logger       *zap.Logger

	urlLabel    *widget.Label
	urlEntry    *widget.Entry
	formatCard  *widget.Card
	modeGroup   *widget.RadioGroup
	progressBar *widget.ProgressBar
	downloadBtn *widget.Button
	cancelBtn   *widget.Button
	revealBtn   *widget.Button
	openBtn     *widget.Button
	statusLabel *widget.Label
	detailLabel *widget.Label

	// swapped in tests
	revealFile func(path string) error
	openFile   func(path string) error

	mu                 sync.Mutex
	state              ViewState
	modeByLabel        map[string]model.Mode
	pendingReconfigure bool
}

// NewRootUI creates and initializes the main UI. Events from downloadSvc are
// consumed until ctx is done.
func NewRootUI(ctx context.Context, window fyne.Window, settings *config.Settings, downloadSvc download.Downloader) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		ctx:          ctx,
		window:       window,
		downloadSvc:  downloadSvc,
		settings:     settings,
		localization: localization,
		logger:       logging.FromContext(ctx).Named("ui"),
		revealFile:   platform.OpenFileInManager,
		openFile:     platform.OpenFileWithDefaultApp,
		state: ViewState{
			Status:          model.TaskStatusIdle,
			DownloadEnabled: true,
		},
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	ui.render(ui.Snapshot())

	go ui.pumpEvents()

	ui.logger.Info("window ready", zap.String("output_dir", downloadSvc.OutputDir()))
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlLabel = widget.NewLabelWithStyle(ui.localization.GetText(KeyURLLabel), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.modeGroup = widget.NewRadioGroup(nil, nil)
	ui.modeGroup.Horizontal = true
	ui.modeGroup.Required = true
	ui.refreshModeOptions(ui.settings.GetDefaultMode())
	ui.formatCard = widget.NewCard("", ui.localization.GetText(KeyFormatGroup), ui.modeGroup)

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Min = 0
	ui.progressBar.Max = 100

	ui.downloadBtn = widget.NewButton(ui.localization.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.cancelBtn = widget.NewButton(ui.localization.GetText(KeyCancel), ui.onCancelClick)

	ui.revealBtn = widget.NewButton(IconFolder+" "+ui.localization.GetText(KeyReveal), ui.onRevealClick)
	ui.revealBtn.Importance = widget.LowImportance

	ui.openBtn = widget.NewButton(ui.localization.GetText(KeyOpen), ui.onOpenClick)
	ui.openBtn.Importance = widget.LowImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord
	ui.detailLabel = widget.NewLabel("")
	ui.detailLabel.TextStyle = fyne.TextStyle{Italic: true}

	header := container.NewBorder(nil, nil, nil, settingsBtn, ui.urlLabel)

	buttons := container.NewCenter(container.NewHBox(ui.downloadBtn, ui.cancelBtn, ui.revealBtn, ui.openBtn))

	content := container.NewVBox(
		header,
		ui.urlEntry,
		ui.formatCard,
		ui.progressBar,
		buttons,
		ui.statusLabel,
		ui.detailLabel,
	)

	ui.window.SetContent(container.NewPadded(content))
	ui.window.Resize(fyne.NewSize(WindowMinWidth, WindowMinHeight))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// refreshModeOptions rebuilds the radio labels for the current language and codecs
func (ui *RootUI) refreshModeOptions(selected model.Mode) {
	audio := ui.localization.Format(KeyAudioOption, strings.ToUpper(ui.settings.GetAudioCodec()))
	video := ui.localization.Format(KeyVideoOption, strings.ToUpper(ui.settings.GetVideoContainer()))

	ui.mu.Lock()
	ui.modeByLabel = map[string]model.Mode{audio: model.ModeAudio, video: model.ModeVideo}
	ui.mu.Unlock()

	ui.modeGroup.Options = []string{audio, video}
	if selected == model.ModeVideo {
		ui.modeGroup.SetSelected(video)
	} else {
		ui.modeGroup.SetSelected(audio)
	}
	ui.modeGroup.Refresh()
}

// selectedMode returns the mode picked in the radio group
func (ui *RootUI) selectedMode() model.Mode {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	if mode, ok := ui.modeByLabel[ui.modeGroup.Selected]; ok {
		return mode
	}
	return config.DefaultMode
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all static texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlLabel.SetText(ui.localization.GetText(KeyURLLabel))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.formatCard.SetSubTitle(ui.localization.GetText(KeyFormatGroup))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.cancelBtn.SetText(ui.localization.GetText(KeyCancel))
	ui.revealBtn.SetText(IconFolder + " " + ui.localization.GetText(KeyReveal))
	ui.openBtn.SetText(ui.localization.GetText(KeyOpen))
	ui.refreshModeOptions(ui.selectedMode())
}

// onDownloadClick handles the download button click and Enter in the URL field
func (ui *RootUI) onDownloadClick() {
	if ui.Snapshot().Status.IsActive() || ui.downloadSvc.Busy() {
		return
	}

	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.update(func(s *ViewState) {
			s.StatusText = ui.localization.GetText(KeyPleaseEnterURL)
			s.Detail = ""
		})
		return
	}

	ui.update(func(s *ViewState) {
		s.Status = model.TaskStatusRequesting
		s.StatusText = ui.localization.GetText(KeyStatusStarting)
		s.Detail = ""
		s.Percent = 0
		s.ProgressVisible = true
		s.DownloadEnabled = false
		s.CancelEnabled = true
		s.OutputPath = ""
	})

	mode := ui.selectedMode()
	req, err := ui.downloadSvc.Start(ui.ctx, urlText, mode)
	if err != nil {
		ui.logger.Warn("download rejected", zap.String("url", urlText), zap.Error(err))
		ui.fail(err)
		return
	}

	ui.logger.Info("download requested",
		zap.String("request_id", req.ID),
		zap.String("url", req.URL),
		zap.Stringer("mode", mode))
}

// onCancelClick aborts the in-flight download
func (ui *RootUI) onCancelClick() {
	if err := ui.downloadSvc.Cancel(); err != nil {
		if !errors.Is(err, download.ErrNotRunning) {
			ui.logger.Warn("cancel failed", zap.Error(err))
		}
		return
	}
	ui.update(func(s *ViewState) {
		s.StatusText = ui.localization.GetText(KeyStatusCancelling)
		s.CancelEnabled = false
	})
}

// onRevealClick shows the produced file in the system file manager
func (ui *RootUI) onRevealClick() {
	ui.withOutputFile(ui.revealFile)
}

// onOpenClick opens the produced file with its default application
func (ui *RootUI) onOpenClick() {
	ui.withOutputFile(ui.openFile)
}

func (ui *RootUI) withOutputFile(action func(path string) error) {
	path := ui.Snapshot().OutputPath
	if path == "" {
		return
	}
	if err := action(path); err != nil {
		ui.logger.Warn("file action failed", zap.String("path", path), zap.Error(err))
		dialog.ShowError(errors.New(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.applySettings)
}

// applySettings pushes saved settings to the download service, deferring while busy
func (ui *RootUI) applySettings() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()

	err := ui.downloadSvc.Reconfigure(ui.settings.DownloadConfig())
	switch {
	case errors.Is(err, download.ErrBusy):
		ui.mu.Lock()
		ui.pendingReconfigure = true
		ui.mu.Unlock()
		dialog.ShowInformation(ui.localization.GetText(KeySettings), ui.localization.GetText(KeySettingsDeferred), ui.window)
	case err != nil:
		ui.logger.Error("settings rejected", zap.Error(err))
		dialog.ShowError(err, ui.window)
	default:
		dialog.ShowInformation(ui.localization.GetText(KeySettings), ui.localization.GetText(KeySettingsSaved), ui.window)
	}
}

// pumpEvents forwards service events to the UI until the context ends
func (ui *RootUI) pumpEvents() {
	events := ui.downloadSvc.Events()
	for {
		select {
		case <-ui.ctx.Done():
			return
		case ev := <-events:
			ui.handleEvent(ev)
		}
	}
}

// handleEvent applies one service event to the view state
func (ui *RootUI) handleEvent(ev model.Event) {
	switch ev.Kind {
	case model.EventStarted:
		ui.logger.Debug("engine started", zap.String("request_id", ev.RequestID))

	case model.EventProgress:
		ui.update(func(s *ViewState) {
			if !s.Status.IsActive() {
				return
			}
			s.Status = model.TaskStatusDownloading
			s.Percent = ev.Percent
			s.ProgressVisible = true
			s.StatusText = ui.localization.Format(KeyStatusProgress, ev.Percent)
			if ev.TotalBytes > 0 {
				s.Detail = ui.localization.Format(KeyBytesOf,
					humanize.Bytes(uint64(ev.DownloadedBytes)), humanize.Bytes(uint64(ev.TotalBytes)))
			}
		})

	case model.EventCompleted:
		var path, name string
		if ev.Result != nil && ev.Result.OutputPath != "" {
			path = ev.Result.OutputPath
			name = filepath.Base(path)
		}
		ui.update(func(s *ViewState) {
			s.Status = model.TaskStatusDone
			s.StatusText = ui.localization.GetText(KeyStatusSuccess)
			s.Percent = 100
			s.OutputPath = path
			s.Detail = name
			s.DownloadEnabled = true
			s.CancelEnabled = false
		})
		if path != "" && ui.settings.GetAutoRevealOnComplete() {
			go func() {
				if err := ui.revealFile(path); err != nil {
					ui.logger.Warn("auto reveal failed", zap.String("path", path), zap.Error(err))
				}
			}()
		}
		ui.applyPendingSettings()

	case model.EventFailed:
		ui.fail(ev.Err)
		ui.applyPendingSettings()

	case model.EventCancelled:
		ui.update(func(s *ViewState) {
			s.Status = model.TaskStatusCancelled
			s.StatusText = ui.localization.GetText(KeyStatusCancelled)
			s.Detail = ""
			s.DownloadEnabled = true
			s.CancelEnabled = false
		})
		ui.applyPendingSettings()
	}
}

// fail moves the window to the Failed state showing err verbatim
func (ui *RootUI) fail(err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	ui.update(func(s *ViewState) {
		s.Status = model.TaskStatusFailed
		s.StatusText = ui.localization.Format(KeyStatusError, msg)
		s.Detail = ""
		s.DownloadEnabled = true
		s.CancelEnabled = false
	})
}

func (ui *RootUI) applyPendingSettings() {
	ui.mu.Lock()
	pending := ui.pendingReconfigure
	ui.pendingReconfigure = false
	ui.mu.Unlock()
	if !pending {
		return
	}
	if err := ui.downloadSvc.Reconfigure(ui.settings.DownloadConfig()); err != nil {
		ui.logger.Error("deferred settings rejected", zap.Error(err))
	}
}

// Snapshot returns a copy of the current view state
func (ui *RootUI) Snapshot() ViewState {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.state
}

// update mutates the view state and schedules a redraw on the Fyne thread
func (ui *RootUI) update(fn func(s *ViewState)) {
	ui.mu.Lock()
	fn(&ui.state)
	snapshot := ui.state
	ui.mu.Unlock()

	fyne.Do(func() {
		ui.render(snapshot)
	})
}

// render copies a state snapshot onto the widgets. Must run on the Fyne thread.
func (ui *RootUI) render(s ViewState) {
	ui.statusLabel.SetText(s.StatusText)
	ui.detailLabel.SetText(s.Detail)

	if s.ProgressVisible {
		ui.progressBar.SetValue(s.Percent)
		ui.progressBar.Show()
	} else {
		ui.progressBar.Hide()
	}

	setEnabled(ui.downloadBtn, s.DownloadEnabled)
	setEnabled(ui.cancelBtn, s.CancelEnabled)
	if s.OutputPath != "" && s.Status == model.TaskStatusDone {
		ui.revealBtn.Show()
		ui.openBtn.Show()
	} else {
		ui.revealBtn.Hide()
		ui.openBtn.Hide()
	}
}

func setEnabled(w fyne.Disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}
