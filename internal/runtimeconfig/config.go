package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageDriverUnknown = errors.New("atlas config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("atlas config: storage dsn is required for the postgres driver")

// ErrCacheWindowInvalid guards the fresh/evict relationship used by the query client.
var ErrCacheWindowInvalid = errors.New("atlas config: cache eviction window must not be shorter than the fresh window")
var ErrMarkdownFeatureRequired = errors.New("atlas config: markdown feature must be enabled to configure markdown")
var ErrMarkdownContentDirRequired = errors.New("atlas config: markdown content directory is required when markdown is enabled")
var ErrSubscriptionFunctionRequired = errors.New("atlas config: subscription function name is required")
var ErrSubscriptionRemoteKeyRequired = errors.New("atlas config: subscription api key is required when a remote base url is set")
var ErrI18NDefaultLocaleMissing = errors.New("atlas config: default locale must be listed in i18n locales")
var ErrLoggingProviderRequired = errors.New("atlas config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("atlas config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("atlas config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("atlas config: logging format is invalid")

// Config aggregates storage, cache and feature settings for the atlas module.
type Config struct {
	Enabled       bool                `koanf:"enabled"`
	DefaultLocale string              `koanf:"default_locale"`
	Storage       StorageConfig       `koanf:"storage"`
	Cache         CacheConfig         `koanf:"cache"`
	Markdown      MarkdownConfig      `koanf:"markdown"`
	Subscriptions SubscriptionsConfig `koanf:"subscriptions"`
	I18N          I18NConfig          `koanf:"i18n"`
	Features      Features            `koanf:"features"`
	Commands      CommandsConfig      `koanf:"commands"`
	Logging       LoggingConfig       `koanf:"logging"`
}

// StorageConfig selects the bun dialect and connection string.
type StorageConfig struct {
	Provider string `koanf:"provider"`
	Driver   string `koanf:"driver"`
	DSN      string `koanf:"dsn"`
}

// CacheConfig mirrors the freshness and eviction windows of the query client.
// RepositoryTTL applies to the go-repository-cache decorators.
type CacheConfig struct {
	Enabled       bool          `koanf:"enabled"`
	FreshFor      time.Duration `koanf:"fresh_for"`
	EvictAfter    time.Duration `koanf:"evict_after"`
	RepositoryTTL time.Duration `koanf:"repository_ttl"`
}

// MarkdownConfig captures renderer options and the import source directory.
type MarkdownConfig struct {
	Enabled    bool                 `koanf:"enabled"`
	ContentDir string               `koanf:"content_dir"`
	Pattern    string               `koanf:"pattern"`
	Recursive  bool                 `koanf:"recursive"`
	Parser     MarkdownParserConfig `koanf:"parser"`
}

// MarkdownParserConfig mirrors interfaces.ParseOptions.
type MarkdownParserConfig struct {
	Extensions []string `koanf:"extensions"`
	HardWraps  bool     `koanf:"hard_wraps"`
	SafeMode   bool     `koanf:"safe_mode"`
}

// SubscriptionsConfig names the check function and, optionally, the remote
// functions endpoint that serves it.
type SubscriptionsConfig struct {
	FunctionName string        `koanf:"function_name"`
	BaseURL      string        `koanf:"base_url"`
	APIKey       string        `koanf:"api_key"`
	Timeout      time.Duration `koanf:"timeout"`
}

// I18NConfig points the translator at extracted resource files.
type I18NConfig struct {
	Enabled          bool     `koanf:"enabled"`
	Locales          []string `koanf:"locales"`
	ResourcesDir     string   `koanf:"resources_dir"`
	DefaultNamespace string   `koanf:"default_namespace"`
}

// Features toggles optional module functionality.
type Features struct {
	Markdown bool `koanf:"markdown"`
	Activity bool `koanf:"activity"`
	Logger   bool `koanf:"logger"`
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool          `koanf:"enabled"`
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `koanf:"provider"`
	Level     string   `koanf:"level"`
	Format    string   `koanf:"format"`
	AddSource bool     `koanf:"add_source"`
	Focus     []string `koanf:"focus"`
}

// DefaultConfig returns defaults suitable for local development against SQLite.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: "en",
		Storage: StorageConfig{
			Provider: "bun",
			Driver:   "sqlite",
			DSN:      "file:atlas.db?cache=shared",
		},
		Cache: CacheConfig{
			Enabled:       true,
			FreshFor:      5 * time.Minute,
			EvictAfter:    10 * time.Minute,
			RepositoryTTL: time.Minute,
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Subscriptions: SubscriptionsConfig{
			FunctionName: "check-subscription",
			Timeout:      10 * time.Second,
		},
		I18N: I18NConfig{
			Enabled:          true,
			Locales:          []string{"en"},
			ResourcesDir:     "locales",
			DefaultNamespace: "translation",
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver)); driver {
	case "", "sqlite", "sqlite3":
	case "postgres", "pgx":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}
	if cfg.Cache.Enabled && cfg.Cache.EvictAfter > 0 && cfg.Cache.EvictAfter < cfg.Cache.FreshFor {
		return ErrCacheWindowInvalid
	}
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if strings.TrimSpace(cfg.Subscriptions.FunctionName) == "" {
		return ErrSubscriptionFunctionRequired
	}
	if strings.TrimSpace(cfg.Subscriptions.BaseURL) != "" && strings.TrimSpace(cfg.Subscriptions.APIKey) == "" {
		return ErrSubscriptionRemoteKeyRequired
	}
	if cfg.I18N.Enabled && !containsLocale(cfg.I18N.Locales, cfg.DefaultLocale) {
		return fmt.Errorf("%w: %s", ErrI18NDefaultLocaleMissing, cfg.DefaultLocale)
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func containsLocale(locales []string, locale string) bool {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return true
	}
	for _, candidate := range locales {
		if strings.EqualFold(strings.TrimSpace(candidate), locale) {
			return true
		}
	}
	return false
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
