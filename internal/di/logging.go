package di

import (
	"strings"

	"github.com/goliatone/go-atlas/internal/logging/console"
	"github.com/goliatone/go-atlas/internal/logging/gologger"
	"github.com/goliatone/go-atlas/internal/runtimeconfig"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

// buildLoggerProvider selects the provider named by the logging config. A
// disabled logger feature yields nil so every module logger falls back to
// no-op output.
func buildLoggerProvider(cfg runtimeconfig.Config) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Logging.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	}
}
