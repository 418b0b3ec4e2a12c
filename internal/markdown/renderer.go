package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-atlas/pkg/interfaces"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

const wrapperClass = "markdown-content"

// styledRendererPriority places the styled renderer ahead of goldmark's
// default HTML renderer, which registers at 1000.
const styledRendererPriority = 100

// Output is the rendered fragment returned by Renderer.Render.
type Output = interfaces.RenderedMarkdown

// Renderer converts Markdown into styled HTML.
type Renderer struct {
	md     goldmark.Markdown
	styles StyleTable
}

var _ interfaces.MarkdownRenderer = (*Renderer)(nil)

// RendererOption customises the renderer.
type RendererOption func(*rendererSettings)

type rendererSettings struct {
	parse  interfaces.ParseOptions
	styles StyleTable
}

// WithParseOptions selects goldmark extensions and rendering flags.
func WithParseOptions(opts interfaces.ParseOptions) RendererOption {
	return func(s *rendererSettings) {
		s.parse = opts
	}
}

// WithStyles replaces the construct style table.
func WithStyles(styles StyleTable) RendererOption {
	return func(s *rendererSettings) {
		if len(styles) > 0 {
			s.styles = styles.clone()
		}
	}
}

// NewRenderer builds a renderer with the default style table.
func NewRenderer(opts ...RendererOption) *Renderer {
	settings := rendererSettings{styles: DefaultStyles()}
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}

	return &Renderer{
		md:     newEngine(settings.parse, settings.styles),
		styles: settings.styles,
	}
}

// Render converts source into HTML wrapped in a markdown-content container.
// Blank input yields an Empty output.
func (r *Renderer) Render(source string, className string) (Output, error) {
	if strings.TrimSpace(source) == "" {
		return Output{Empty: true}, nil
	}

	var body bytes.Buffer
	if err := r.md.Convert([]byte(source), &body); err != nil {
		return Output{}, fmt.Errorf("markdown: render: %w", err)
	}

	var out strings.Builder
	out.WriteString(`<div class="`)
	out.WriteString(wrapperClassList(className))
	out.WriteString(`">`)
	out.Write(body.Bytes())
	out.WriteString(`</div>`)

	return Output{HTML: out.String()}, nil
}

func wrapperClassList(className string) string {
	extra := strings.TrimSpace(className)
	if extra == "" {
		return wrapperClass
	}
	return wrapperClass + " " + string(util.EscapeHTML([]byte(extra)))
}

func newEngine(opts interfaces.ParseOptions, styles StyleTable) goldmark.Markdown {
	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}
	rendererOpts = append(rendererOpts, renderer.WithNodeRenderers(
		util.Prioritized(newStyledNodeRenderer(styles), styledRendererPriority),
	))

	return goldmark.New(
		goldmark.WithExtensions(resolveExtensions(opts.Extensions)...),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

func resolveExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	seen := make(map[string]struct{}, len(names))
	var exts []goldmark.Extender
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		switch key {
		case "gfm":
			exts = append(exts, extension.GFM)
		case "table", "tables":
			exts = append(exts, extension.Table)
		case "strikethrough":
			exts = append(exts, extension.Strikethrough)
		case "linkify":
			exts = append(exts, extension.Linkify)
		case "tasklist":
			exts = append(exts, extension.TaskList)
		case "typographer":
			exts = append(exts, extension.Typographer)
		case "footnote", "footnotes":
			exts = append(exts, extension.Footnote)
		case "definitionlist":
			exts = append(exts, extension.DefinitionList)
		}
	}
	return exts
}
