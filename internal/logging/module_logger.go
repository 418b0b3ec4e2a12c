package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-atlas/pkg/interfaces"
)

const (
	rootModule          = "atlas"
	countriesModule     = "atlas.countries"
	contentModule       = "atlas.content"
	tripsModule         = "atlas.trips"
	subscriptionsModule = "atlas.subscriptions"
	markdownModule      = "atlas.markdown"
	queryModule         = "atlas.query"
	functionsModule     = "atlas.functions"
)

const (
	fieldUserID     = "user_id"
	fieldOperation  = "operation"
	fieldImportPath = "markdown_path"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// CountriesLogger returns the logger namespace reserved for country reads.
func CountriesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, countriesModule)
}

// ContentLogger returns the logger namespace reserved for country content.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// TripsLogger returns the logger namespace reserved for user trips.
func TripsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, tripsModule)
}

// SubscriptionsLogger returns the logger namespace reserved for subscription checks.
func SubscriptionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, subscriptionsModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown workflows.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// QueryLogger returns the logger namespace reserved for the query cache.
func QueryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, queryModule)
}

// FunctionsLogger returns the logger namespace reserved for function invocations.
func FunctionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, functionsModule)
}

// WithUser attaches the acting user and operation to the logger. Empty values
// are skipped.
func WithUser(logger interfaces.Logger, userID, operation string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(userID); trimmed != "" {
		fields[fieldUserID] = trimmed
	}
	if trimmed := strings.TrimSpace(operation); trimmed != "" {
		fields[fieldOperation] = trimmed
	}
	return WithFields(logger, fields)
}

// WithImportPath tags entries emitted while importing a markdown file.
func WithImportPath(logger interfaces.Logger, path string) interfaces.Logger {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldImportPath: trimmed})
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
