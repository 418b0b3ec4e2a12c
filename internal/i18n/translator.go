package i18n

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-atlas/pkg/interfaces"
)

// Translator resolves keys against loaded resources.
type Translator struct {
	resources   Resources
	cfg         ExtractionConfig
	placeholder *regexp.Regexp
}

var _ interfaces.Translator = (*Translator)(nil)

// NewTranslator builds a translator over resources.
func NewTranslator(resources Resources, cfg ExtractionConfig) *Translator {
	cfg = cfg.withDefaults()
	if resources == nil {
		resources = Resources{}
	}
	pattern := regexp.QuoteMeta(cfg.InterpolationPrefix) + `\s*([\w.-]+)\s*` + regexp.QuoteMeta(cfg.InterpolationSuffix)
	return &Translator{
		resources:   resources,
		cfg:         cfg,
		placeholder: regexp.MustCompile(pattern),
	}
}

// DefaultLocale reports the fallback locale.
func (t *Translator) DefaultLocale() string {
	return t.cfg.DefaultLocale
}

// Translate resolves key ("ns:a.b" or "a.b" in the default namespace) for
// locale, then its base language, then the default locale. Unresolved keys
// return the key unchanged. Placeholders are replaced from vars.
func (t *Translator) Translate(locale, key string, vars map[string]any) string {
	namespace, path := t.splitKey(key)
	for _, candidate := range t.candidates(locale) {
		if value, ok := t.lookup(candidate, namespace, path); ok {
			return t.interpolate(value, vars)
		}
	}
	return key
}

func (t *Translator) splitKey(key string) (string, string) {
	if ns, rest, ok := strings.Cut(key, t.cfg.NamespaceSeparator); ok && ns != "" {
		return ns, rest
	}
	return t.cfg.DefaultNamespace, key
}

func (t *Translator) candidates(locale string) []string {
	locale = strings.TrimSpace(locale)
	var out []string
	add := func(value string) {
		if value == "" {
			return
		}
		for _, existing := range out {
			if existing == value {
				return
			}
		}
		out = append(out, value)
	}
	add(locale)
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		add(locale[:i])
	}
	add(t.cfg.DefaultLocale)
	return out
}

func (t *Translator) lookup(locale, namespace, path string) (string, bool) {
	ns, ok := t.resources[locale][namespace]
	if !ok {
		return "", false
	}
	if value, ok := ns[path].(string); ok {
		return value, true
	}

	var current any = map[string]any(ns)
	for _, segment := range strings.Split(path, t.cfg.KeySeparator) {
		node, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		if current, ok = node[segment]; !ok {
			return "", false
		}
	}
	value, ok := current.(string)
	return value, ok
}

func (t *Translator) interpolate(value string, vars map[string]any) string {
	if len(vars) == 0 {
		return value
	}
	return t.placeholder.ReplaceAllStringFunc(value, func(match string) string {
		name := t.placeholder.FindStringSubmatch(match)[1]
		replacement, ok := vars[name]
		if !ok {
			return match
		}
		return fmt.Sprint(replacement)
	})
}
