package markdown

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-atlas/internal/countries"
	"github.com/goliatone/go-atlas/internal/countrycontent"
	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/internal/validation"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

var (
	ErrCountryResolverRequired = errors.New("markdown importer: country resolver is required")
	ErrContentWriterRequired   = errors.New("markdown importer: content writer is required")
	ErrUnknownCountry          = errors.New("markdown importer: country not found")
	ErrEmptyBody               = errors.New("markdown importer: document body is empty")
)

// CountryResolver finds the country a document belongs to.
type CountryResolver interface {
	GetBySlug(ctx context.Context, slug string) (*countries.Country, error)
}

// ContentWriter persists a country section body.
type ContentWriter interface {
	Upsert(ctx context.Context, req countrycontent.UpsertContentRequest) (*countrycontent.CountryContent, error)
}

// ImporterConfig wires the importer collaborators.
type ImporterConfig struct {
	Countries CountryResolver
	Content   ContentWriter
	Logger    interfaces.Logger
}

// ImportOptions tunes a single import run.
type ImportOptions struct {
	DryRun bool
	// ContinueOnError keeps importing after a document fails.
	ContinueOnError bool
}

// DocumentError ties an import failure to its file.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// ImportResult summarises an import run.
type ImportResult struct {
	Imported []string
	Skipped  []string
	Errors   []error
}

// Importer writes Markdown documents into country content sections.
type Importer struct {
	countries CountryResolver
	content   ContentWriter
	logger    interfaces.Logger
	schema    *validation.Validator
}

// NewImporter builds an Importer.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		countries: cfg.Countries,
		content:   cfg.Content,
		logger:    logger,
		schema:    validation.MustCompile(frontMatterSchema()),
	}
}

// ImportDocuments imports docs in order. It stops at the first failure unless
// ContinueOnError is set; the returned error joins every failure.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts ImportOptions) (*ImportResult, error) {
	if i.countries == nil {
		return nil, ErrCountryResolverRequired
	}
	if i.content == nil && !opts.DryRun {
		return nil, ErrContentWriterRequired
	}

	result := &ImportResult{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, err)
			break
		}

		logger := logging.WithImportPath(i.logger, doc.FilePath)
		imported, err := i.importDocument(ctx, doc, opts)
		if err != nil {
			logger.Error("markdown.import.failed", "error", err)
			result.Errors = append(result.Errors, &DocumentError{Path: doc.FilePath, Err: err})
			if !opts.ContinueOnError {
				break
			}
			continue
		}
		if !imported {
			logger.Debug("markdown.import.skipped")
			result.Skipped = append(result.Skipped, doc.FilePath)
			continue
		}
		logger.Info("markdown.import.section", "country", doc.FrontMatter.Country, "section", doc.FrontMatter.Section, "dry_run", opts.DryRun)
		result.Imported = append(result.Imported, doc.FilePath)
	}

	return result, errors.Join(result.Errors...)
}

func (i *Importer) importDocument(ctx context.Context, doc *interfaces.Document, opts ImportOptions) (bool, error) {
	meta := doc.FrontMatter
	if meta.Draft {
		return false, nil
	}
	if err := i.schema.Validate(frontMatterPayload(meta)); err != nil {
		return false, err
	}
	section, err := countrycontent.ParseSection(meta.Section)
	if err != nil {
		return false, err
	}
	body := strings.TrimSpace(string(doc.Body))
	if body == "" {
		return false, ErrEmptyBody
	}

	country, err := i.countries.GetBySlug(ctx, meta.Country)
	if err != nil {
		return false, err
	}
	if country == nil {
		return false, fmt.Errorf("%w: %s", ErrUnknownCountry, meta.Country)
	}
	if opts.DryRun {
		return true, nil
	}

	if _, err := i.content.Upsert(ctx, countrycontent.UpsertContentRequest{
		CountryID: country.ID,
		Section:   section,
		Content:   body,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func frontMatterSchema() map[string]any {
	sections := countrycontent.Sections()
	enum := make([]any, 0, len(sections))
	for _, section := range sections {
		enum = append(enum, string(section))
	}
	return map[string]any{
		"type":     "object",
		"required": []any{"country", "section"},
		"properties": map[string]any{
			"country": map[string]any{"type": "string", "minLength": 1},
			"section": map[string]any{"type": "string", "enum": enum},
			"title":   map[string]any{"type": "string"},
			"draft":   map[string]any{"type": "boolean"},
		},
	}
}
