package interfaces

// Translator resolves UI strings for a locale. Missing keys resolve to the
// key itself so callers always have something to display.
type Translator interface {
	Translate(locale, key string, vars map[string]any) string
}
