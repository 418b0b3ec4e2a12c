package functions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type echoResult struct {
	Greeting string `json:"greeting"`
}

func TestRegistryInvokeRoundTripsJSON(t *testing.T) {
	registry := NewRegistry()
	err := registry.Register("greet", func(_ context.Context, payload json.RawMessage) (any, error) {
		var in struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(payload, &in); err != nil {
			return nil, err
		}
		return map[string]any{"greeting": "hola " + in.Name}, nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	var out echoResult
	if err := registry.Invoke(context.Background(), "greet", map[string]string{"name": "ana"}, &out); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if out.Greeting != "hola ana" {
		t.Fatalf("unexpected result %+v", out)
	}
}

func TestRegistryUnknownAndFailingFunctions(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Invoke(context.Background(), "missing", nil, nil); !errors.Is(err, ErrFunctionNotFound) {
		t.Fatalf("expected ErrFunctionNotFound, got %v", err)
	}

	boom := errors.New("boom")
	_ = registry.Register("explode", func(context.Context, json.RawMessage) (any, error) { return nil, boom })
	err := registry.Invoke(context.Background(), "explode", nil, nil)
	var invocationErr *InvocationError
	if !errors.As(err, &invocationErr) || !errors.Is(err, boom) {
		t.Fatalf("expected InvocationError wrapping boom, got %v", err)
	}
	if err := registry.Register(" ", nil); !errors.Is(err, ErrFunctionName) {
		t.Fatalf("expected ErrFunctionName, got %v", err)
	}
}

func TestHTTPInvokerSendsHeadersAndDecodes(t *testing.T) {
	var gotPath, gotAuth, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"greeting":"hi"}`))
	}))
	t.Cleanup(server.Close)

	invoker, err := NewHTTPInvoker(server.URL+"/", "anon-key", WithTokenSource(func(context.Context) (string, error) {
		return "user-jwt", nil
	}))
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}

	var out echoResult
	if err := invoker.Invoke(context.Background(), "check-subscription", map[string]any{}, &out); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if gotPath != "/functions/v1/check-subscription" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer user-jwt" || gotKey != "anon-key" {
		t.Fatalf("unexpected headers auth=%q apikey=%q", gotAuth, gotKey)
	}
	if out.Greeting != "hi" {
		t.Fatalf("unexpected body %+v", out)
	}
}

func TestHTTPInvokerNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	invoker, err := NewHTTPInvoker(server.URL, "anon-key")
	if err != nil {
		t.Fatalf("new invoker: %v", err)
	}

	err = invoker.Invoke(context.Background(), "check-subscription", nil, nil)
	var invocationErr *InvocationError
	if !errors.As(err, &invocationErr) {
		t.Fatalf("expected InvocationError, got %v", err)
	}
	if invocationErr.Status != http.StatusUnauthorized || invocationErr.Body != `{"error":"unauthorized"}` {
		t.Fatalf("unexpected invocation error %+v", invocationErr)
	}
}

func TestNewHTTPInvokerRejectsRelativeURL(t *testing.T) {
	if _, err := NewHTTPInvoker("/functions", "key"); err == nil {
		t.Fatal("expected error for relative base url")
	}
}
