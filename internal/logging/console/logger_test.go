package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("atlas.trips")
	logger = logging.WithFields(logger, map[string]any{"module": "atlas.trips"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"correlation_id": "req-1234",
	})
	logger = logger.WithContext(ctx)

	tripID := uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999")
	logger.Info("trips.created",
		"trip_id", tripID,
		"departure", time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
	)

	got := strings.TrimSpace(buf.String())
	want := "2024-03-14T15:09:26.535897Z INFO trips.created correlation_id=req-1234 departure=2024-03-15T08:00:00Z logger=atlas.trips module=atlas.trips trip_id=8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: time.Now,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("atlas.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestConsoleLogger_QuotesErrorsAndDanglingArgs(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return time.Unix(0, 0) },
	})

	provider.GetLogger("atlas.test").Error("failed", "error", errors.New("connection refused"), "orphan")

	got := buf.String()
	if !strings.Contains(got, `error="connection refused"`) {
		t.Fatalf("expected quoted error field, got %s", got)
	}
	if !strings.Contains(got, "field_1=orphan") {
		t.Fatalf("expected positional field for dangling arg, got %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"":        console.LevelInfo,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
	}
	for input, want := range cases {
		got, ok := console.ParseLevel(input)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", input, got, ok, want)
		}
	}
	if _, ok := console.ParseLevel("verbose"); ok {
		t.Fatal("expected unknown level to report ok=false")
	}
}
