package bootstrap

import (
	"context"
	"fmt"
	"strings"

	atlas "github.com/goliatone/go-atlas"
	markdowncmd "github.com/goliatone/go-atlas/internal/commands/markdown"
	"github.com/goliatone/go-atlas/internal/di"
	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

// Options captures configuration for markdown CLI bootstraps.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	EnvFiles       []string
	Migrate        bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the atlas module and the pieces the markdown CLIs use.
type Module struct {
	Module   *atlas.Module
	Importer markdowncmd.Importer
	Render   func(source, className string) (atlas.MarkdownOutput, error)
	Logger   interfaces.Logger
}

// BuildModule loads configuration from the environment, forces the markdown
// feature on and constructs the module. Migrations run when Migrate is set
// and the module is backed by a database.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := atlas.LoadConfigFromEnv(opts.EnvFiles...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Markdown.ContentDir = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Markdown.Pattern = pattern
	}
	cfg.Markdown.Recursive = opts.Recursive

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := atlas.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise atlas module: %w", err)
	}
	if opts.Migrate {
		if db := module.Container().BunDB(); db != nil {
			if err := atlas.ApplyMigrations(context.Background(), db); err != nil {
				_ = module.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
		}
	}

	return &Module{
		Module:   module,
		Importer: module.Container().MarkdownImporter(),
		Render:   module.RenderMarkdown,
		Logger:   logging.MarkdownLogger(module.Container().LoggerProvider()),
	}, nil
}

// Close releases the underlying module when present.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
