package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/goliatone/go-atlas/cmd/markdown/internal/bootstrap"
	"github.com/goliatone/go-atlas/internal/markdown"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("markdown preview: %v", err)
	}
}

func runPreview(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("markdown-preview", flag.ExitOnError)
	contentDir := flags.String("content-dir", "content", "Path to the markdown content root")
	filePath := flags.String("file", "", "Markdown file to preview (relative to the content root)")
	className := flags.String("class", "", "Extra class appended to the markdown wrapper")
	renderHTML := flags.Bool("render-html", true, "Render the markdown body into HTML")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *filePath == "" {
		return fmt.Errorf("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{ContentDir: *contentDir})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	raw, err := os.ReadFile(filepath.Join(*contentDir, *filePath))
	if err != nil {
		return fmt.Errorf("read markdown document: %w", err)
	}
	meta, body, err := markdown.ParseFrontMatter(raw)
	if err != nil {
		return fmt.Errorf("parse front matter: %w", err)
	}

	fmt.Fprintf(out, "Path: %s\nCountry: %s\nSection: %s\n\n", *filePath, meta.Country, meta.Section)
	if encoded, err := json.MarshalIndent(meta, "", "  "); err == nil {
		fmt.Fprintf(out, "Frontmatter:\n%s\n\n", encoded)
	}

	if !*renderHTML || module.Render == nil {
		fmt.Fprintf(out, "Markdown Body:\n%s\n", body)
		return nil
	}
	rendered, err := module.Render(string(body), *className)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	fmt.Fprintf(out, "Rendered HTML:\n%s\n", rendered.HTML)
	return nil
}
