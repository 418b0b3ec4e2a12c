package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the variable prefix read by LoadFromEnv when none is given.
const DefaultEnvPrefix = "ATLAS_"

// LoadFromEnv overlays environment variables onto DefaultConfig. Nested keys
// use a double underscore, so ATLAS_CACHE__FRESH_FOR=2m sets Cache.FreshFor.
// Optional dotenv files are loaded first; missing files are skipped and
// variables already present in the process environment win.
func LoadFromEnv(prefix string, dotenvFiles ...string) (Config, error) {
	cfg := DefaultConfig()

	if err := loadDotenv(dotenvFiles); err != nil {
		return cfg, err
	}

	if prefix = strings.TrimSpace(prefix); prefix == "" {
		prefix = DefaultEnvPrefix
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(prefix, ".", func(key string) string {
		key = strings.ToLower(strings.TrimPrefix(key, prefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return cfg, fmt.Errorf("atlas config: load env: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("atlas config: decode env: %w", err)
	}

	return cfg, cfg.Validate()
}

func loadDotenv(files []string) error {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("atlas config: stat %s: %w", file, err)
		}
		existing = append(existing, file)
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("atlas config: load dotenv: %w", err)
	}
	return nil
}
