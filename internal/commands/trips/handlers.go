package tripscmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-atlas/internal/commands"
	"github.com/goliatone/go-atlas/internal/trips"
	"github.com/goliatone/go-atlas/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const createOperation = "trips.create"

var _ command.Commander[CreateTripCommand] = (*CreateTripHandler)(nil)

// CreateTripHandler creates trips through the trips service.
type CreateTripHandler struct {
	inner *commands.Handler[CreateTripCommand]
}

// NewCreateTripHandler binds a handler to service. onCreated, when set,
// receives the stored trip.
func NewCreateTripHandler(service trips.Service, logger interfaces.Logger, onCreated func(*trips.UserTrip), opts ...commands.HandlerOption[CreateTripCommand]) *CreateTripHandler {
	exec := func(ctx context.Context, msg CreateTripCommand) error {
		trip, err := service.Create(ctx, &interfaces.User{ID: msg.UserID}, msg.Input())
		if err != nil {
			return err
		}
		if onCreated != nil {
			onCreated(trip)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CreateTripCommand]{
		commands.WithLogger[CreateTripCommand](logger),
		commands.WithOperation[CreateTripCommand](createOperation),
		commands.WithMessageFields(func(msg CreateTripCommand) map[string]any {
			return map[string]any{"user_id": msg.UserID.String()}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CreateTripCommand](logger)),
	}
	return &CreateTripHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[CreateTripCommand].
func (h *CreateTripHandler) Execute(ctx context.Context, msg CreateTripCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Register builds the trip handlers and registers them with reg.
func Register(reg commands.Registry, service trips.Service, provider interfaces.LoggerProvider) (*CreateTripHandler, error) {
	if service == nil {
		return nil, errors.New("trips command registration: service is nil")
	}
	handler := NewCreateTripHandler(service, commands.CommandLogger(provider, "trips"), nil)
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}
