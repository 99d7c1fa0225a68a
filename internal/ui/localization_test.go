package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalization_Defaults(t *testing.T) {
	l := NewLocalization()

	assert.Equal(t, "en", l.GetCurrentLanguage())
	assert.Equal(t, "Download successful!", l.GetText(KeyStatusSuccess))
	assert.Equal(t, "Please enter a valid URL.", l.GetText(KeyPleaseEnterURL))
	assert.Equal(t, "Downloading... 25.0%", l.Format(KeyStatusProgress, 25.0))
	assert.Equal(t, "Error: net unreachable", l.Format(KeyStatusError, "net unreachable"))
}

func TestLocalization_SetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("ru")
	assert.Equal(t, "ru", l.GetCurrentLanguage())
	assert.Equal(t, "Скачать", l.GetText(KeyDownload))

	// unknown languages are ignored
	l.SetLanguage("xx")
	assert.Equal(t, "ru", l.GetCurrentLanguage())

	l.SetLanguage("system")
	assert.Equal(t, "en", l.GetCurrentLanguage())
}

func TestLocalization_Fallbacks(t *testing.T) {
	l := NewLocalization()
	assert.Equal(t, "no_such_key", l.GetText("no_such_key"))
}

func TestLocalization_AllLanguagesComplete(t *testing.T) {
	l := NewLocalization()
	for lang := range l.GetAvailableLanguages() {
		texts, ok := l.texts[lang]
		if !assert.True(t, ok, "missing texts for %s", lang) {
			continue
		}
		for key := range l.texts["en"] {
			assert.Contains(t, texts, key, "language %s lacks %s", lang, key)
		}
	}
}
