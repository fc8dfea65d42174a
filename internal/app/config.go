package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LayoutPath string // directory of .hcl layout files

	LogFormat     string
	LogLevel      string
	InspectorPort int

	// RemoteURL points at an external Socket.IO shell that owns the real
	// page stack. Empty means the in-process stack navigator.
	RemoteURL       string
	RemoteNamespace string

	// ValidateOnly loads and validates the layout, then exits.
	ValidateOnly bool
	// Trigger names an element whose bound actions run once, headless.
	Trigger string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.LayoutPath == "" {
		return nil, errors.New("LayoutPath is a required configuration field and cannot be empty")
	}
	if cfg.ValidateOnly && cfg.Trigger != "" {
		return nil, errors.New("validate and trigger modes are mutually exclusive")
	}

	return &cfg, nil
}
