package commands

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// DefaultCommandTimeout bounds each command execution unless overridden.
const DefaultCommandTimeout = 30 * time.Second

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler wraps command execution with shared concerns: validation, timeout,
// logging, telemetry and error tagging.
type Handler[T command.Message] struct {
	exec          command.CommandFunc[T]
	logger        interfaces.Logger
	timeout       time.Duration
	operation     string
	messageFields func(T) map[string]any
	telemetry     Telemetry[T]
	now           func() time.Time
}

// NewHandler creates a handler that satisfies go-command's Commander interface.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultCommandTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Execute conforms to command.Commander[T].
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidationError(err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	fields := map[string]any{"command": command.GetMessageType(msg)}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.messageFields != nil {
		maps.Copy(fields, h.messageFields(msg))
	}
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("command.execute.start")

	started := h.now()
	err := h.exec(ctx, msg)
	status := TelemetryStatusSuccess
	switch {
	case err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()):
		status = TelemetryStatusContextError
		err = wrapContextError(ctx.Err())
	case err != nil:
		status = TelemetryStatusFailed
		err = wrapExecuteError(err)
	case ctx.Err() != nil:
		status = TelemetryStatusContextError
		err = wrapContextError(ctx.Err())
	}

	if h.telemetry != nil {
		h.telemetry(ctx, msg, TelemetryInfo{
			Command:   command.GetMessageType(msg),
			Operation: h.operation,
			Fields:    fields,
			Duration:  h.now().Sub(started),
			Error:     err,
			Status:    status,
			Logger:    logger,
		})
	} else if err != nil {
		logger.Error("command.execute.failed", "error", err)
	} else {
		logger.Info("command.execute.success")
	}
	return err
}

// WithTimeout overrides the default execution timeout. Zero disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			h.logger = logging.NoOp()
			return
		}
		h.logger = logger
	}
}

// WithOperation sets the operation name emitted with every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields derives extra log fields from each message.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.messageFields = fn
	}
}

// WithTelemetry replaces the default outcome logging with fn.
func WithTelemetry[T command.Message](fn Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.telemetry = fn
	}
}

// WithHandlerClock overrides the clock used for durations.
func WithHandlerClock[T command.Message](now func() time.Time) HandlerOption[T] {
	return func(h *Handler[T]) {
		if now != nil {
			h.now = now
		}
	}
}

func (h *Handler[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}
