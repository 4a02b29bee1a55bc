package app

import (
	"io"
	"log/slog"

	"github.com/vk/fence/internal/boundary"
	"github.com/vk/fence/internal/declcache"
	"github.com/vk/fence/internal/hclcfg"
)

// App encapsulates the linter's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	loader boundary.Loader
}

// NewApp is the constructor for the main application. The declaration
// loader is injectable for tests; when nil, the HCL loader is used,
// wrapped in an LRU cache when the config asks for one. The cache lives
// and dies with the App instance, never as process state.
func NewApp(outW, errW io.Writer, cfg *Config, loader boundary.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)

	if loader == nil {
		loader = hclcfg.NewLoader()
		if cfg.CacheSize > 0 {
			cached, err := declcache.New(loader, cfg.CacheSize)
			if err != nil {
				return nil, err
			}
			loader = cached
		}
	}

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		loader: loader,
	}, nil
}
