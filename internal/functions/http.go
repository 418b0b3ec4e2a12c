package functions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

const maxErrorBody = 4 << 10

// TokenSource yields the caller's access token for a request.
type TokenSource func(ctx context.Context) (string, error)

// HTTPInvoker calls hosted functions at {baseURL}/functions/v1/{name}.
type HTTPInvoker struct {
	baseURL *url.URL
	apiKey  string
	tokens  TokenSource
	client  *http.Client
	logger  interfaces.Logger
}

// HTTPOption configures an HTTPInvoker.
type HTTPOption func(*HTTPInvoker)

func WithHTTPClient(client *http.Client) HTTPOption {
	return func(h *HTTPInvoker) {
		if client != nil {
			h.client = client
		}
	}
}

// WithTokenSource supplies a per-request bearer token. Without one the API
// key doubles as the bearer token.
func WithTokenSource(tokens TokenSource) HTTPOption {
	return func(h *HTTPInvoker) {
		h.tokens = tokens
	}
}

func WithHTTPLogger(logger interfaces.Logger) HTTPOption {
	return func(h *HTTPInvoker) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func NewHTTPInvoker(baseURL, apiKey string, opts ...HTTPOption) (*HTTPInvoker, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("functions: parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("functions: base url %q must be absolute", baseURL)
	}
	h := &HTTPInvoker{
		baseURL: parsed,
		apiKey:  strings.TrimSpace(apiKey),
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

func (h *HTTPInvoker) Invoke(ctx context.Context, name string, payload any, out any) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrFunctionName
	}

	body, err := encodePayload(payload)
	if err != nil {
		return fmt.Errorf("functions: encode %s payload: %w", name, err)
	}

	endpoint := h.baseURL.JoinPath("functions", "v1", name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("functions: build %s request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.apiKey != "" {
		req.Header.Set("apikey", h.apiKey)
	}
	token := h.apiKey
	if h.tokens != nil {
		if token, err = h.tokens(ctx); err != nil {
			return fmt.Errorf("functions: resolve token for %s: %w", name, err)
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return &InvocationError{Name: name, Err: err}
	}
	defer resp.Body.Close()
	h.logger.Debug("functions.invoked", "function", name, "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &InvocationError{Name: name, Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("functions: decode %s response: %w", name, err)
	}
	return nil
}
