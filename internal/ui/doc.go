package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires the single download window to the download service, renders
// progress and status, and edits settings. All UI strings are localized via
// Localization and all widget updates run on the Fyne thread via fyne.Do.
