package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-atlas/pkg/interfaces"
)

// LoaderConfig configures how Markdown files are discovered.
type LoaderConfig struct {
	// Pattern limits discovered files, defaults to "*.md".
	Pattern   string
	Recursive bool
}

// Loader reads Markdown documents from a filesystem.
type Loader struct {
	fs        fs.FS
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = "*.md"
	}
	return &Loader{fs: filesystem, pattern: filepath.ToSlash(pattern), recursive: cfg.Recursive}
}

// LoadFile reads and parses a single document.
func (l *Loader) LoadFile(ctx context.Context, path string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := filepath.ToSlash(filepath.Clean(path))
	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader %s: %w", rel, err)
	}
	sum := sha256.Sum256(data)

	return &interfaces.Document{
		FilePath:    rel,
		FrontMatter: meta,
		Body:        body,
		Checksum:    sum[:],
	}, nil
}

// LoadDirectory returns every matching document under dir sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Document, error) {
	root := filepath.ToSlash(filepath.Clean(dir))

	var docs []*interfaces.Document
	err := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.matches(path) {
			return nil
		}
		doc, err := l.LoadFile(ctx, path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})
	return docs, nil
}

func (l *Loader) matches(path string) bool {
	pattern := strings.ReplaceAll(l.pattern, "**/", "")
	target := filepath.Base(path)
	if strings.Contains(pattern, "/") {
		target = path
	}
	ok, err := filepath.Match(pattern, target)
	return err == nil && ok
}
