package i18n_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-atlas/internal/i18n"
)

func testConfig() i18n.ExtractionConfig {
	cfg := i18n.DefaultExtractionConfig()
	cfg.Locales = []string{"en", "es"}
	return cfg
}

func loadFixture(t *testing.T) i18n.Resources {
	t.Helper()
	files := fstest.MapFS{
		"locales/en/translation.json": {Data: []byte(`{"nav":{"home":"Home","trips":"My trips"},"greeting":"Hello, {{name}}!"}`)},
		"locales/en/premium.json":     {Data: []byte(`{"modal":{"title":"Unlock {{ feature }}"}}`)},
		"locales/es/translation.json": {Data: []byte(`{"nav":{"home":"Inicio"}}`)},
	}
	resources, err := i18n.NewLoader(files, testConfig()).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return resources
}

func TestExtractionDefaults(t *testing.T) {
	cfg := i18n.DefaultExtractionConfig()
	if cfg.KeySeparator != "." || cfg.NamespaceSeparator != ":" || cfg.Indentation != 2 || cfg.DefaultNamespace != "translation" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if got := cfg.ResourcePath("es", "premium"); got != "locales/es/premium.json" {
		t.Fatalf("unexpected resource path %q", got)
	}
}

func TestLoaderDiscoversNamespaces(t *testing.T) {
	resources := loadFixture(t)
	if len(resources["en"]) != 2 || len(resources["es"]) != 1 {
		t.Fatalf("unexpected namespaces: %+v", resources)
	}
	if locales := resources.Locales(); strings.Join(locales, ",") != "en,es" {
		t.Fatalf("unexpected locales %v", locales)
	}
}

func TestTranslate(t *testing.T) {
	tr := i18n.NewTranslator(loadFixture(t), testConfig())

	cases := []struct {
		name   string
		locale string
		key    string
		vars   map[string]any
		want   string
	}{
		{"nested key", "es", "nav.home", nil, "Inicio"},
		{"regional falls back to base", "es-MX", "nav.home", nil, "Inicio"},
		{"falls back to default locale", "es", "nav.trips", nil, "My trips"},
		{"unknown locale uses default", "fr", "nav.home", nil, "Home"},
		{"namespaced key", "en", "premium:modal.title", map[string]any{"feature": "maps"}, "Unlock maps"},
		{"interpolation", "en", "greeting", map[string]any{"name": "Ana"}, "Hello, Ana!"},
		{"missing var kept", "en", "greeting", map[string]any{"other": 1}, "Hello, {{name}}!"},
		{"missing key returns key", "en", "nav.unknown", nil, "nav.unknown"},
		{"non-leaf returns key", "en", "nav", nil, "nav"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tr.Translate(tc.locale, tc.key, tc.vars); got != tc.want {
				t.Fatalf("translate(%q, %q) = %q, want %q", tc.locale, tc.key, got, tc.want)
			}
		})
	}
}

func TestWriteResourcesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	resources := i18n.Resources{
		"en": {"translation": i18n.Namespace{"nav": map[string]any{"home": "Home"}}},
	}
	if err := i18n.WriteResources(dir, resources, testConfig()); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "locales", "en", "translation.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "{\n  \"nav\": {\n    \"home\": \"Home\"\n  }\n}\n"
	if string(data) != want {
		t.Fatalf("unexpected file contents:\n%s", data)
	}

	loaded, err := i18n.NewLoader(os.DirFS(dir), testConfig()).Load(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := i18n.NewTranslator(loaded, testConfig()).Translate("en", "nav.home", nil); got != "Home" {
		t.Fatalf("unexpected translation %q", got)
	}
}
