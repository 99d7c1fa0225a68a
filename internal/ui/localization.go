package ui

import (
	"fmt"
	"sync"
)

// Localization manages UI text translations
type Localization struct {
	mu              sync.RWMutex
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyURLLabel          = "url_label"
	KeyEnterURL          = "enter_url"
	KeyFormatGroup       = "format_group"
	KeyAudioOption       = "audio_option"
	KeyVideoOption       = "video_option"
	KeyDownload          = "download"
	KeyCancel            = "cancel"
	KeyReveal            = "reveal"
	KeyOpen              = "open"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyDownloadDirectory = "download_directory"
	KeyDefaultMode       = "default_mode"
	KeyAudioCodec        = "audio_codec"
	KeyAudioQuality      = "audio_quality"
	KeyVideoContainer    = "video_container"
	KeyFilenameTemplate  = "filename_template"
	KeyYTDLPPath         = "ytdlp_path"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeySettingsDeferred  = "settings_deferred"
	KeyStatusStarting    = "status_starting"
	KeyStatusProgress    = "status_progress"
	KeyStatusSuccess     = "status_success"
	KeyStatusError       = "status_error"
	KeyStatusCancelling  = "status_cancelling"
	KeyStatusCancelled   = "status_cancelled"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyBytesOf           = "bytes_of"
	KeyErrorOpeningFile  = "error_opening_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.mu.Lock()
		l.currentLanguage = lang
		l.mu.Unlock()
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.GetCurrentLanguage()]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns the localized text for key used as a format string
func (l *Localization) Format(key string, args ...interface{}) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YouTube Downloader",
		KeyURLLabel:          "Enter Video URL:",
		KeyEnterURL:          "Paste YouTube URL here...",
		KeyFormatGroup:       "Download Format",
		KeyAudioOption:       "Audio (%s)",
		KeyVideoOption:       "Video (%s)",
		KeyDownload:          "Download",
		KeyCancel:            "Cancel",
		KeyReveal:            "Show in Folder",
		KeyOpen:              "Open",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyDownloadDirectory: "Download Directory",
		KeyDefaultMode:       "Default Format",
		KeyAudioCodec:        "Audio Codec",
		KeyAudioQuality:      "Audio Quality",
		KeyVideoContainer:    "Video Container",
		KeyFilenameTemplate:  "Filename Template",
		KeyYTDLPPath:         "yt-dlp Executable (empty = managed)",
		KeyAutoReveal:        "Show file in folder when done",
		KeySave:              "Save",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeySettingsDeferred:  "Settings saved. They apply after the current download.",
		KeyStatusStarting:    "Starting download...",
		KeyStatusProgress:    "Downloading... %.1f%%",
		KeyStatusSuccess:     "Download successful!",
		KeyStatusError:       "Error: %s",
		KeyStatusCancelling:  "Cancelling...",
		KeyStatusCancelled:   "Download cancelled.",
		KeyPleaseEnterURL:    "Please enter a valid URL.",
		KeyBytesOf:           "%s of %s",
		KeyErrorOpeningFile:  "Error opening file",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YouTube Загрузчик",
		KeyURLLabel:          "Введите URL видео:",
		KeyEnterURL:          "Вставьте URL YouTube...",
		KeyFormatGroup:       "Формат загрузки",
		KeyAudioOption:       "Аудио (%s)",
		KeyVideoOption:       "Видео (%s)",
		KeyDownload:          "Скачать",
		KeyCancel:            "Отмена",
		KeyReveal:            "Показать в папке",
		KeyOpen:              "Открыть",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyDownloadDirectory: "Папка загрузки",
		KeyDefaultMode:       "Формат по умолчанию",
		KeyAudioCodec:        "Аудиокодек",
		KeyAudioQuality:      "Качество аудио",
		KeyVideoContainer:    "Видеоконтейнер",
		KeyFilenameTemplate:  "Шаблон имени файла",
		KeyYTDLPPath:         "Путь к yt-dlp (пусто = автоматически)",
		KeyAutoReveal:        "Показывать файл после загрузки",
		KeySave:              "Сохранить",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeySettingsDeferred:  "Настройки сохранены и вступят в силу после текущей загрузки.",
		KeyStatusStarting:    "Начинаем загрузку...",
		KeyStatusProgress:    "Загрузка... %.1f%%",
		KeyStatusSuccess:     "Загрузка завершена!",
		KeyStatusError:       "Ошибка: %s",
		KeyStatusCancelling:  "Отмена...",
		KeyStatusCancelled:   "Загрузка отменена.",
		KeyPleaseEnterURL:    "Пожалуйста, введите корректный URL.",
		KeyBytesOf:           "%s из %s",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
	}
}
