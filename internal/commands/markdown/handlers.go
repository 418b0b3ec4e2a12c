package markdowncmd

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/goliatone/go-atlas/internal/commands"
	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/internal/markdown"
	"github.com/goliatone/go-atlas/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const importOperation = "markdown.import_directory"

// ErrMarkdownFeatureDisabled is returned when the markdown feature flag is off.
var ErrMarkdownFeatureDisabled = errors.New("markdown command: feature disabled")

var _ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)

// FeatureGates exposes runtime toggles read at execution time.
type FeatureGates struct {
	MarkdownEnabled func() bool
}

func (g FeatureGates) markdownEnabled() bool {
	if g.MarkdownEnabled == nil {
		return true
	}
	return g.MarkdownEnabled()
}

// Importer is the subset of markdown.Importer the handler needs.
type Importer interface {
	ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts markdown.ImportOptions) (*markdown.ImportResult, error)
}

// ImportDirectoryHandler loads a directory and runs the importer over it.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler binds a handler to importer. openFS resolves the
// directory into a filesystem and defaults to os.DirFS.
func NewImportDirectoryHandler(importer Importer, logger interfaces.Logger, gates FeatureGates, openFS func(dir string) fs.FS, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	if openFS == nil {
		openFS = os.DirFS
	}

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		if !gates.markdownEnabled() {
			return ErrMarkdownFeatureDisabled
		}
		loader := markdown.NewLoader(openFS(msg.Directory), markdown.LoaderConfig{
			Pattern:   msg.Pattern,
			Recursive: msg.Recursive,
		})
		docs, err := loader.LoadDirectory(ctx, ".")
		if err != nil {
			return err
		}

		result, err := importer.ImportDocuments(ctx, docs, markdown.ImportOptions{
			DryRun:          msg.DryRun,
			ContinueOnError: msg.ContinueOnError,
		})
		if result != nil {
			logging.WithFields(logger, map[string]any{
				"imported_count": len(result.Imported),
				"skipped_count":  len(result.Skipped),
				"error_count":    len(result.Errors),
				"dry_run":        msg.DryRun,
			}).Info("markdown.command.import_directory.completed")
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](logger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportDirectoryCommand](logger)),
	}
	return &ImportDirectoryHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Register builds the markdown handlers and registers them with reg.
func Register(reg commands.Registry, importer Importer, provider interfaces.LoggerProvider, gates FeatureGates) (*ImportDirectoryHandler, error) {
	if importer == nil {
		return nil, errors.New("markdown command registration: importer is nil")
	}
	handler := NewImportDirectoryHandler(importer, commands.CommandLogger(provider, "markdown"), gates, nil)
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}
