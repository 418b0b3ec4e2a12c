package trips

import (
	"context"
	"slices"
	"sync"

	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

// Store holds the trip list for the current user.
//
// Every Refresh takes a new generation; a result that lands after a newer
// refresh (or a user change) has started is dropped. Failures clear the list
// rather than leaving stale rows next to an error.
type Store struct {
	svc    Service
	logger interfaces.Logger

	mu          sync.Mutex
	user        *interfaces.User
	state       TripsState
	generation  uint64
	subscribers map[int]func(TripsState)
	nextSubID   int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

func WithStoreLogger(logger interfaces.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewStore(svc Service, opts ...StoreOption) *Store {
	s := &Store{
		svc:         svc,
		logger:      logging.NoOp(),
		state:       TripsState{Trips: []*UserTrip{}},
		subscribers: make(map[int]func(TripsState)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() TripsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for every state change and returns its cancel func.
func (s *Store) Subscribe(fn func(TripsState)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// SetUser switches the acting user and reloads the list.
func (s *Store) SetUser(ctx context.Context, user *interfaces.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.Refresh(ctx)
}

// Refresh reloads the list. With no user the list is emptied without a call.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	user := s.user
	if user == nil {
		s.state = TripsState{Trips: []*UserTrip{}}
		notify := s.changedLocked()
		s.mu.Unlock()
		notify()
		return
	}
	s.state.Loading = true
	notify := s.changedLocked()
	s.mu.Unlock()
	notify()

	records, err := s.svc.List(ctx, user)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug("trips.refresh.stale", "user_id", user.ID.String(), "generation", gen)
		return
	}
	if err != nil {
		s.state = TripsState{Trips: []*UserTrip{}, Err: err}
	} else {
		s.state = TripsState{Trips: records}
	}
	notify = s.changedLocked()
	s.mu.Unlock()

	if err != nil {
		logging.WithUser(s.logger, user.ID.String(), "trips.refresh").Error("trips.refresh_failed", "error", err)
	}
	notify()
}

// Create inserts a trip for the current user and reloads the list on
// success. It returns nil when there is no user or the insert fails; a
// failed insert leaves the current list as it was.
func (s *Store) Create(ctx context.Context, input CreateTripInput) *UserTrip {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	if user == nil {
		return nil
	}

	logger := logging.WithUser(s.logger, user.ID.String(), "trips.create")
	trip, err := s.svc.Create(ctx, user, input)
	if err != nil {
		logger.Error("trips.create_failed", "error", err)
		return nil
	}
	logger.Info("trips.created", "trip_id", trip.ID.String())

	s.Refresh(ctx)
	return trip
}

func (s *Store) snapshotLocked() TripsState {
	return TripsState{
		Trips:   slices.Clone(s.state.Trips),
		Loading: s.state.Loading,
		Err:     s.state.Err,
	}
}

// changedLocked captures the subscribers and state under the lock and returns
// a func that delivers the snapshot once the lock is released.
func (s *Store) changedLocked() func() {
	if len(s.subscribers) == 0 {
		return func() {}
	}
	snapshot := s.snapshotLocked()
	fns := make([]func(TripsState), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(snapshot)
		}
	}
}
