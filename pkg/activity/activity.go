// Package activity fans domain events out to registered hooks.
package activity

import (
	"context"
	"errors"
	"maps"
	"strings"
	"time"
)

// Event describes something a user did.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Hook receives emitted events.
type Hook interface {
	Notify(ctx context.Context, event Event) error
}

// HookFunc adapts a function into a Hook.
type HookFunc func(ctx context.Context, event Event) error

func (f HookFunc) Notify(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Emitter stamps defaults on events and forwards them to every hook.
type Emitter struct {
	hooks   []Hook
	channel string
	now     func() time.Time
}

// EmitterOption configures an Emitter.
type EmitterOption func(*Emitter)

func WithChannel(channel string) EmitterOption {
	return func(e *Emitter) {
		e.channel = strings.TrimSpace(channel)
	}
}

func WithClock(clock func() time.Time) EmitterOption {
	return func(e *Emitter) {
		if clock != nil {
			e.now = clock
		}
	}
}

func NewEmitter(hooks []Hook, opts ...EmitterOption) *Emitter {
	e := &Emitter{channel: "atlas", now: time.Now}
	for _, hook := range hooks {
		if hook != nil {
			e.hooks = append(e.hooks, hook)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Enabled reports whether any hook is registered.
func (e *Emitter) Enabled() bool {
	return e != nil && len(e.hooks) > 0
}

// Emit delivers the event to every hook and joins their errors.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() || strings.TrimSpace(event.Verb) == "" {
		return nil
	}
	if event.Channel == "" {
		event.Channel = e.channel
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = e.now().UTC()
	}
	if event.ActorID == "" {
		event.ActorID = event.UserID
	}

	var errs []error
	for _, hook := range e.hooks {
		copied := event
		copied.Metadata = maps.Clone(event.Metadata)
		if err := hook.Notify(ctx, copied); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
