package sketchfolio

import "embed"

// EmbeddedAssets contains static assets shipped with the binary:
// gallery.js (live re-layout client) and gallery.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
