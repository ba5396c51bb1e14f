package config

import "errors"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
)
