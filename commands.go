package atlas

import (
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-atlas/internal/commands"
	contentcmd "github.com/goliatone/go-atlas/internal/commands/content"
	markdowncmd "github.com/goliatone/go-atlas/internal/commands/markdown"
	tripscmd "github.com/goliatone/go-atlas/internal/commands/trips"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

type (
	CreateTripCommand      = tripscmd.CreateTripCommand
	UpsertSectionCommand   = contentcmd.UpsertSectionCommand
	ImportDirectoryCommand = markdowncmd.ImportDirectoryCommand
)

// ErrCommandsDisabled is returned when command registration is off.
var ErrCommandsDisabled = errors.New("atlas: commands disabled")

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures where handlers are registered.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
}

// CommandHandlers holds the handlers built for a module.
type CommandHandlers struct {
	CreateTrip      command.Commander[CreateTripCommand]
	UpsertSection   command.Commander[UpsertSectionCommand]
	ImportDirectory command.Commander[ImportDirectoryCommand]
	Subscriptions   []CommandSubscription
}

// RegisterCommands builds the module's command handlers and registers them
// with the optional registry and dispatcher.
func (m *Module) RegisterCommands(opts RegistrationOptions) (*CommandHandlers, error) {
	cfg := m.container.Config
	if !cfg.Commands.Enabled {
		return nil, ErrCommandsDisabled
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = m.container.LoggerProvider()
	}
	timeout := cfg.Commands.Timeout

	handlers := &CommandHandlers{}
	var errs error
	register := func(handler any) {
		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}
		if opts.Dispatcher != nil {
			sub, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if sub != nil {
				handlers.Subscriptions = append(handlers.Subscriptions, sub)
			}
		}
	}

	createTrip := tripscmd.NewCreateTripHandler(m.Trips(), commands.CommandLogger(provider, "trips"), nil,
		commands.WithTimeout[CreateTripCommand](timeout))
	handlers.CreateTrip = createTrip
	register(createTrip)

	upsert := contentcmd.NewUpsertSectionHandler(m.Content(), commands.CommandLogger(provider, "content"),
		commands.WithTimeout[UpsertSectionCommand](timeout))
	handlers.UpsertSection = upsert
	register(upsert)

	gates := markdowncmd.FeatureGates{MarkdownEnabled: func() bool { return cfg.Features.Markdown }}
	importDir := markdowncmd.NewImportDirectoryHandler(m.container.MarkdownImporter(), commands.CommandLogger(provider, "markdown"), gates, nil,
		commands.WithTimeout[ImportDirectoryCommand](timeout))
	handlers.ImportDirectory = importDir
	register(importDir)

	return handlers, errs
}
