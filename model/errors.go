package model

import "go.trai.ch/zerr"

var (
	// ErrVariantNotFound is returned when a variant key is not present in the registry.
	ErrVariantNotFound = zerr.New("variant not found")

	// ErrInvalidColor is returned when a palette field is not an opaque hex colour.
	ErrInvalidColor = zerr.New("invalid color")

	// ErrInvalidGeometry is returned when a geometry has a non-positive width or height.
	ErrInvalidGeometry = zerr.New("invalid geometry")

	// ErrUnknownTerminalStyle is returned when a terminal style name cannot be parsed.
	ErrUnknownTerminalStyle = zerr.New("unknown terminal style")

	// ErrMissingAssets is returned by the gallery when generated assets are absent.
	ErrMissingAssets = zerr.New("missing assets")
)
