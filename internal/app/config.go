package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath   string // boundary manifest file or directory
	SnapshotPath string // call-graph snapshot file

	LogFormat string
	LogLevel  string
	Color     bool
	CacheSize int // parsed declaration models to cache; 0 disables
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.SnapshotPath == "" {
		return nil, errors.New("SnapshotPath is a required configuration field and cannot be empty")
	}
	if cfg.CacheSize < 0 {
		return nil, errors.New("CacheSize cannot be negative")
	}
	return &cfg, nil
}
