package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressEvent_Percent(t *testing.T) {
	tests := []struct {
		name     string
		event    ProgressEvent
		expected float64
		ok       bool
	}{
		{
			name:     "exact total",
			event:    ProgressEvent{Status: ProgressStatusDownloading, DownloadedBytes: 50, TotalBytes: 200},
			expected: 25.0,
			ok:       true,
		},
		{
			name:     "estimate only",
			event:    ProgressEvent{Status: ProgressStatusDownloading, DownloadedBytes: 300, TotalBytesEstimate: 400},
			expected: 75.0,
			ok:       true,
		},
		{
			name:     "exact wins over estimate",
			event:    ProgressEvent{Status: ProgressStatusDownloading, DownloadedBytes: 100, TotalBytes: 200, TotalBytesEstimate: 1000},
			expected: 50.0,
			ok:       true,
		},
		{
			name:  "no total",
			event: ProgressEvent{Status: ProgressStatusDownloading, DownloadedBytes: 100},
		},
		{
			name:  "not downloading",
			event: ProgressEvent{Status: ProgressStatusFinished, DownloadedBytes: 200, TotalBytes: 200},
		},
		{
			name:  "post processing",
			event: ProgressEvent{Status: ProgressStatusPostProcessing, DownloadedBytes: 10, TotalBytes: 200},
		},
		{
			name:     "estimate undershoot is clamped",
			event:    ProgressEvent{Status: ProgressStatusDownloading, DownloadedBytes: 120, TotalBytesEstimate: 100},
			expected: 100,
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percent, ok := tt.event.Percent()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, percent)
		})
	}
}

func TestEventKind_IsTerminal(t *testing.T) {
	assert.False(t, EventStarted.IsTerminal())
	assert.False(t, EventProgress.IsTerminal())
	assert.True(t, EventCompleted.IsTerminal())
	assert.True(t, EventFailed.IsTerminal())
	assert.True(t, EventCancelled.IsTerminal())
}
