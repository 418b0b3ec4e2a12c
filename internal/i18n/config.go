package i18n

import "strings"

const (
	localeToken    = "$LOCALE"
	namespaceToken = "$NAMESPACE"
)

// ExtractionConfig mirrors the settings the translation extractor writes
// resources with. Loader and Translator read them back with the same rules.
type ExtractionConfig struct {
	Locales             []string
	DefaultLocale       string
	DefaultNamespace    string
	KeySeparator        string
	NamespaceSeparator  string
	InterpolationPrefix string
	InterpolationSuffix string
	// Output is the resource path template relative to the resources root.
	Output      string
	Indentation int
}

// DefaultExtractionConfig returns the extractor defaults used by the site.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		Locales:             []string{"en"},
		DefaultLocale:       "en",
		DefaultNamespace:    "translation",
		KeySeparator:        ".",
		NamespaceSeparator:  ":",
		InterpolationPrefix: "{{",
		InterpolationSuffix: "}}",
		Output:              "locales/$LOCALE/$NAMESPACE.json",
		Indentation:         2,
	}
}

func (c ExtractionConfig) withDefaults() ExtractionConfig {
	def := DefaultExtractionConfig()
	if len(c.Locales) == 0 {
		c.Locales = def.Locales
	}
	if strings.TrimSpace(c.DefaultLocale) == "" {
		c.DefaultLocale = c.Locales[0]
	}
	if c.DefaultNamespace == "" {
		c.DefaultNamespace = def.DefaultNamespace
	}
	if c.KeySeparator == "" {
		c.KeySeparator = def.KeySeparator
	}
	if c.NamespaceSeparator == "" {
		c.NamespaceSeparator = def.NamespaceSeparator
	}
	if c.InterpolationPrefix == "" || c.InterpolationSuffix == "" {
		c.InterpolationPrefix = def.InterpolationPrefix
		c.InterpolationSuffix = def.InterpolationSuffix
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Indentation <= 0 {
		c.Indentation = def.Indentation
	}
	return c
}

// ResourcePath expands the output template for one locale and namespace.
func (c ExtractionConfig) ResourcePath(locale, namespace string) string {
	c = c.withDefaults()
	path := strings.ReplaceAll(c.Output, localeToken, locale)
	return strings.ReplaceAll(path, namespaceToken, namespace)
}
