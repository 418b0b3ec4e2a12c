package commands

// Registry is the registration contract go-command registries satisfy.
type Registry interface {
	RegisterCommand(handler any) error
}
