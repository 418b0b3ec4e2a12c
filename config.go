package atlas

import "github.com/goliatone/go-atlas/internal/runtimeconfig"

var (
	ErrStorageDriverUnknown          = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired            = runtimeconfig.ErrStorageDSNRequired
	ErrCacheWindowInvalid            = runtimeconfig.ErrCacheWindowInvalid
	ErrMarkdownFeatureRequired       = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownContentDirRequired    = runtimeconfig.ErrMarkdownContentDirRequired
	ErrSubscriptionFunctionRequired  = runtimeconfig.ErrSubscriptionFunctionRequired
	ErrSubscriptionRemoteKeyRequired = runtimeconfig.ErrSubscriptionRemoteKeyRequired
	ErrI18NDefaultLocaleMissing      = runtimeconfig.ErrI18NDefaultLocaleMissing
	ErrLoggingProviderRequired       = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown        = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid           = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid          = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	SubscriptionsConfig  = runtimeconfig.SubscriptionsConfig
	I18NConfig           = runtimeconfig.I18NConfig
	Features             = runtimeconfig.Features
	CommandsConfig       = runtimeconfig.CommandsConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfigFromEnv overlays ATLAS_ prefixed environment variables and the
// given dotenv files onto DefaultConfig.
func LoadConfigFromEnv(dotenvFiles ...string) (Config, error) {
	return runtimeconfig.LoadFromEnv(runtimeconfig.DefaultEnvPrefix, dotenvFiles...)
}
