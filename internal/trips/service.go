package trips

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/pkg/activity"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

var ErrUserRequired = errors.New("trips: authenticated user is required")

// Service is the stateless trip API; Store layers per-user state on top.
type Service interface {
	List(ctx context.Context, user *interfaces.User) ([]*UserTrip, error)
	Create(ctx context.Context, user *interfaces.User, input CreateTripInput) (*UserTrip, error)
}

// ServiceOption configures the trip service.
type ServiceOption func(*service)

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the trip id generator.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// WithActivityEmitter wires the emitter used for trip activity records.
func WithActivityEmitter(emitter *activity.Emitter) ServiceOption {
	return func(s *service) {
		if emitter != nil {
			s.activity = emitter
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo     Repository
	now      func() time.Time
	newID    func() uuid.UUID
	activity *activity.Emitter
	logger   interfaces.Logger
}

func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		newID:  uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List returns the user's trips, most recent first.
func (s *service) List(ctx context.Context, user *interfaces.User) ([]*UserTrip, error) {
	if user == nil || user.ID == uuid.Nil {
		return []*UserTrip{}, nil
	}
	records, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []*UserTrip{}
	}
	return records, nil
}

// Create inserts a trip owned by user and returns the stored row.
func (s *service) Create(ctx context.Context, user *interfaces.User, input CreateTripInput) (*UserTrip, error) {
	if user == nil || user.ID == uuid.Nil {
		return nil, ErrUserRequired
	}

	now := s.now().UTC()
	trip := &UserTrip{
		ID:              s.newID(),
		UserID:          user.ID,
		CityID:          input.CityID,
		CountryID:       input.CountryID,
		DestinationName: strings.TrimSpace(input.DestinationName),
		DepartureDate:   input.DepartureDate,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return nil, err
	}

	if err := s.activity.Emit(ctx, activity.Event{
		Verb:       "create",
		UserID:     user.ID.String(),
		ObjectType: "user_trip",
		ObjectID:   created.ID.String(),
		Metadata: map[string]any{
			"destination_name": created.DestinationName,
		},
	}); err != nil {
		s.logger.Warn("trips.activity_failed", "trip_id", created.ID.String(), "error", err)
	}
	return created, nil
}
