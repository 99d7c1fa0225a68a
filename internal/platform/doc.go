package platform

// Package platform contains OS integration: output directory defaults,
// locating the produced media file, and revealing or opening it.
