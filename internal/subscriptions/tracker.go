package subscriptions

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

// Tracker holds the subscription status of the current user and rechecks it
// whenever the user changes. Any failed check settles on Unsubscribed.
type Tracker struct {
	invoker      interfaces.FunctionInvoker
	functionName string
	logger       interfaces.Logger

	mu         sync.Mutex
	user       *interfaces.User
	state      State
	generation uint64
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

func WithFunctionName(name string) TrackerOption {
	return func(t *Tracker) {
		if name = strings.TrimSpace(name); name != "" {
			t.functionName = name
		}
	}
}

func WithLogger(logger interfaces.Logger) TrackerOption {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

func NewTracker(invoker interfaces.FunctionInvoker, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		invoker:      invoker,
		functionName: FunctionName,
		logger:       logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := State{Loading: t.state.Loading}
	if t.state.Status != nil {
		status := *t.state.Status
		out.Status = &status
	}
	return out
}

// SetUser switches the acting user and rechecks.
func (t *Tracker) SetUser(ctx context.Context, user *interfaces.User) {
	t.mu.Lock()
	t.user = user
	t.mu.Unlock()
	t.Refresh(ctx)
}

// Refresh runs the check for the current user. With no user the status is
// cleared and no call is made.
func (t *Tracker) Refresh(ctx context.Context) {
	t.mu.Lock()
	t.generation++
	gen := t.generation
	user := t.user
	if user == nil {
		t.state = State{}
		t.mu.Unlock()
		return
	}
	t.state.Loading = true
	t.mu.Unlock()

	var resp CheckResponse
	err := t.invoker.Invoke(ctx, t.functionName, CheckRequest{UserID: user.ID}, &resp)

	status := Normalize(resp)
	if err != nil {
		logging.WithUser(t.logger, user.ID.String(), "subscriptions.check").
			Error("subscriptions.check_failed", "function", t.functionName, "error", err)
		status = Unsubscribed()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.generation {
		return
	}
	t.state = State{Status: &status}
}
