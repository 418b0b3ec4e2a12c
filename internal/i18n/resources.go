package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Namespace holds the nested key tree of one resource file.
type Namespace map[string]any

// Resources indexes namespaces by locale then namespace name.
type Resources map[string]map[string]Namespace

// Locales returns the locales present, sorted.
func (r Resources) Locales() []string {
	out := make([]string, 0, len(r))
	for locale := range r {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Loader reads extracted resource files from a filesystem rooted where the
// output template is relative to.
type Loader struct {
	fs  fs.FS
	cfg ExtractionConfig
}

// NewLoader builds a loader over filesystem.
func NewLoader(filesystem fs.FS, cfg ExtractionConfig) *Loader {
	return &Loader{fs: filesystem, cfg: cfg.withDefaults()}
}

// Load reads every configured locale. Namespaces are discovered from the
// files present in each locale directory; a missing directory yields an
// empty locale.
func (l *Loader) Load(ctx context.Context) (Resources, error) {
	resources := make(Resources, len(l.cfg.Locales))
	for _, locale := range l.cfg.Locales {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		namespaces, err := l.loadLocale(locale)
		if err != nil {
			return nil, err
		}
		resources[locale] = namespaces
	}
	return resources, nil
}

func (l *Loader) loadLocale(locale string) (map[string]Namespace, error) {
	pattern := l.cfg.ResourcePath(locale, "*")
	matches, err := fs.Glob(l.fs, path.Clean(pattern))
	if err != nil {
		return nil, fmt.Errorf("i18n: glob %s: %w", pattern, err)
	}

	prefix, suffix, _ := strings.Cut(path.Clean(l.cfg.ResourcePath(locale, "\x00")), "\x00")
	namespaces := make(map[string]Namespace, len(matches))
	for _, match := range matches {
		name := strings.TrimSuffix(strings.TrimPrefix(match, prefix), suffix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		data, err := fs.ReadFile(l.fs, match)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", match, err)
		}
		var ns Namespace
		if err := json.Unmarshal(data, &ns); err != nil {
			return nil, fmt.Errorf("i18n: decode %s: %w", match, err)
		}
		if ns == nil {
			ns = Namespace{}
		}
		namespaces[name] = ns
	}
	return namespaces, nil
}

// WriteResources writes resources under root using the output template and
// the configured indentation.
func WriteResources(root string, resources Resources, cfg ExtractionConfig) error {
	cfg = cfg.withDefaults()
	indent := strings.Repeat(" ", cfg.Indentation)

	var errs []error
	for _, locale := range resources.Locales() {
		names := make([]string, 0, len(resources[locale]))
		for name := range resources[locale] {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			target := filepath.Join(root, filepath.FromSlash(cfg.ResourcePath(locale, name)))
			data, err := json.MarshalIndent(resources[locale][name], "", indent)
			if err != nil {
				errs = append(errs, fmt.Errorf("i18n: encode %s: %w", target, err))
				continue
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				errs = append(errs, fmt.Errorf("i18n: mkdir %s: %w", target, err))
				continue
			}
			if err := os.WriteFile(target, append(data, '\n'), 0o644); err != nil {
				errs = append(errs, fmt.Errorf("i18n: write %s: %w", target, err))
			}
		}
	}
	return errors.Join(errs...)
}
