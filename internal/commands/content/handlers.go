package contentcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-atlas/internal/commands"
	"github.com/goliatone/go-atlas/internal/countrycontent"
	"github.com/goliatone/go-atlas/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const upsertOperation = "content.upsert_section"

var _ command.Commander[UpsertSectionCommand] = (*UpsertSectionHandler)(nil)

// UpsertSectionHandler writes a section through the content service.
type UpsertSectionHandler struct {
	inner *commands.Handler[UpsertSectionCommand]
}

// NewUpsertSectionHandler binds a handler to service.
func NewUpsertSectionHandler(service countrycontent.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpsertSectionCommand]) *UpsertSectionHandler {
	exec := func(ctx context.Context, msg UpsertSectionCommand) error {
		section, err := countrycontent.ParseSection(msg.Section)
		if err != nil {
			return err
		}
		_, err = service.Upsert(ctx, countrycontent.UpsertContentRequest{
			CountryID: msg.CountryID,
			Section:   section,
			Content:   msg.Content,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[UpsertSectionCommand]{
		commands.WithLogger[UpsertSectionCommand](logger),
		commands.WithOperation[UpsertSectionCommand](upsertOperation),
		commands.WithMessageFields(func(msg UpsertSectionCommand) map[string]any {
			return map[string]any{"country_id": msg.CountryID.String(), "section": msg.Section}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[UpsertSectionCommand](logger)),
	}
	return &UpsertSectionHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute satisfies command.Commander[UpsertSectionCommand].
func (h *UpsertSectionHandler) Execute(ctx context.Context, msg UpsertSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Register builds the content handlers and registers them with reg.
func Register(reg commands.Registry, service countrycontent.Service, provider interfaces.LoggerProvider) (*UpsertSectionHandler, error) {
	if service == nil {
		return nil, errors.New("content command registration: service is nil")
	}
	handler := NewUpsertSectionHandler(service, commands.CommandLogger(provider, "content"))
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}
