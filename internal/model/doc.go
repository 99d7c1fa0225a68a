package model

// Package model defines the data passed between the download shim and the
// UI: single-use download requests, raw progress ticks from the fetch engine,
// service events, and the presentation status enum.
