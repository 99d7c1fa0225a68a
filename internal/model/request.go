package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mode selects what the engine produces for a request
type Mode string

const (
	// ModeAudio extracts the best audio stream and transcodes it
	ModeAudio Mode = "audio"

	// ModeVideo keeps a combined video+audio stream in the preferred container
	ModeVideo Mode = "video"
)

var (
	ErrEmptyURL    = errors.New("empty URL")
	ErrInvalidMode = errors.New("invalid mode")
)

// String returns the string representation of Mode
func (m Mode) String() string {
	return string(m)
}

// IsAudio reports whether the mode requests audio extraction
func (m Mode) IsAudio() bool {
	return m == ModeAudio
}

// ParseMode converts user input ("audio", "Video", ...) into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAudio:
		return ModeAudio, nil
	case ModeVideo:
		return ModeVideo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// DownloadRequest is a single-use request created per button press
type DownloadRequest struct {
	ID        string
	URL       string
	Mode      Mode
	CreatedAt time.Time
}

// NewDownloadRequest validates the URL and mode and returns a new request.
// The URL is trimmed of surrounding whitespace.
func NewDownloadRequest(url string, mode Mode) (*DownloadRequest, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrEmptyURL
	}
	if mode != ModeAudio && mode != ModeVideo {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	return &DownloadRequest{
		ID:        generateRequestID(),
		URL:       url,
		Mode:      mode,
		CreatedAt: time.Now(),
	}, nil
}

// Result describes what a successful request produced
type Result struct {
	OutputPath string // path to the produced media file, empty if the engine did not report it
}

// DisplayName returns the produced file name without directory and extension
func (r *Result) DisplayName() string {
	if r == nil || r.OutputPath == "" {
		return ""
	}
	// support both / and \ separators
	parts := strings.FieldsFunc(r.OutputPath, func(c rune) bool {
		return c == '/' || c == '\\'
	})
	if len(parts) == 0 {
		return ""
	}
	name := parts[len(parts)-1]
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}

func generateRequestID() string {
	return "req-" + uuid.NewString()
}
