package download

// Package download implements the fetch pipeline built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp). The Shim turns a URL and mode into an
// engine configuration and performs one blocking fetch; the Service runs the
// Shim on a background goroutine, allows a single request in flight, and
// publishes progress and completion events for the UI.
