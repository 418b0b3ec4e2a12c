package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct{}

func (testMessage) Type() string { return "atlas.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "atlas.test.invalid" }

func (invalidMessage) Validate() error {
	return validationError()
}

func validationError() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !goerrors.HasCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category to propagate, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerTelemetryReceivesOutcome(t *testing.T) {
	var infos []TelemetryInfo
	execErr := errors.New("boom")
	fail := true
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		if fail {
			return execErr
		}
		return nil
	},
		WithOperation[testMessage]("test.op"),
		WithMessageFields(func(testMessage) map[string]any { return map[string]any{"extra": 1} }),
		WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
			infos = append(infos, info)
		}),
	)

	if err := h.Execute(context.Background(), testMessage{}); !errors.Is(err, execErr) {
		t.Fatalf("expected wrapped exec error, got %v", err)
	}
	fail = false
	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	if len(infos) != 2 {
		t.Fatalf("expected two telemetry calls, got %d", len(infos))
	}
	if infos[0].Status != TelemetryStatusFailed || infos[1].Status != TelemetryStatusSuccess {
		t.Fatalf("unexpected statuses: %s %s", infos[0].Status, infos[1].Status)
	}
	if infos[1].Operation != "test.op" || infos[1].Fields["extra"] != 1 || infos[1].Command != "atlas.test.message" {
		t.Fatalf("unexpected telemetry info: %+v", infos[1])
	}
}

func TestHandlerTimeoutReportsContextError(t *testing.T) {
	var status TelemetryStatus
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		<-ctx.Done()
		return ctx.Err()
	},
		WithTimeout[testMessage](5*time.Millisecond),
		WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) { status = info.Status }),
	)

	if err := h.Execute(context.Background(), testMessage{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if status != TelemetryStatusContextError {
		t.Fatalf("expected context error status, got %s", status)
	}
}
