package config

import "errors"

// ErrInvalidConfig marks a configuration that loaded but failed Validate,
// such as an empty data_dir or an inverted threshold interval.
var ErrInvalidConfig = errors.New("invalid config")

// ErrLoadConfig marks a failure to read the YAML file or environment overlay.
var ErrLoadConfig = errors.New("load config failed")
