package interfaces

// MarkdownRenderer converts Markdown bodies into styled HTML fragments.
type MarkdownRenderer interface {
	Render(source string, className string) (RenderedMarkdown, error)
}

// RenderedMarkdown is the renderer output. Empty is set when the source held
// nothing to render, in which case HTML is blank and callers should emit nothing.
type RenderedMarkdown struct {
	HTML  string
	Empty bool
}

// ParseOptions customises goldmark behaviour for hosts that need extensions.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// FrontMatter models the metadata block at the top of imported Markdown files.
type FrontMatter struct {
	Country string         `yaml:"country" json:"country"`
	Section string         `yaml:"section" json:"section"`
	Title   string         `yaml:"title" json:"title,omitempty"`
	Draft   bool           `yaml:"draft" json:"draft,omitempty"`
	Custom  map[string]any `yaml:",inline" json:"custom,omitempty"`
}

// Document is a Markdown file with parsed front matter.
type Document struct {
	FilePath    string
	FrontMatter FrontMatter
	Body        []byte
	Checksum    []byte
}
