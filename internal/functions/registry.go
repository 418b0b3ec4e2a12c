// Package functions invokes named server-side functions either in process
// or over HTTP.
package functions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrFunctionNotFound = errors.New("functions: function not registered")
	ErrFunctionName     = errors.New("functions: function name is required")
)

// Handler serves one named function. The payload is the raw JSON request body.
type Handler func(ctx context.Context, payload json.RawMessage) (any, error)

// Registry dispatches invocations to in-process handlers. Payloads and
// results round-trip through JSON so handlers see the same shapes a remote
// caller would.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds name to handler, replacing any previous binding.
func (r *Registry) Register(name string, handler Handler) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrFunctionName
	}
	if handler == nil {
		return fmt.Errorf("functions: handler for %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
	return nil
}

// Names lists the registered function names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

func (r *Registry) Invoke(ctx context.Context, name string, payload any, out any) error {
	name = strings.TrimSpace(name)
	r.mu.RLock()
	handler, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
	}

	body, err := encodePayload(payload)
	if err != nil {
		return fmt.Errorf("functions: encode %s payload: %w", name, err)
	}
	result, err := handler(ctx, body)
	if err != nil {
		return &InvocationError{Name: name, Err: err}
	}
	if out == nil {
		return nil
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("functions: encode %s result: %w", name, err)
	}
	if err := json.Unmarshal(encoded, out); err != nil {
		return fmt.Errorf("functions: decode %s result: %w", name, err)
	}
	return nil
}

func encodePayload(payload any) (json.RawMessage, error) {
	if payload == nil {
		return json.RawMessage("{}"), nil
	}
	if raw, ok := payload.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(payload)
}
