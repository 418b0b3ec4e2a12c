package subscriptions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-atlas/internal/functions"
)

var ErrUserIDRequired = errors.New("subscriptions: user id is required")

// ProfileSource reads the rows a subscription check is computed from.
// Missing rows return nil, nil.
type ProfileSource interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	GetInstitution(ctx context.Context, id uuid.UUID) (*InstitutionRecord, error)
}

// Checker computes CheckResponse values server side.
type Checker struct {
	source ProfileSource
	now    func() time.Time
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithCheckerClock overrides the time source used to expire subscriptions.
func WithCheckerClock(clock func() time.Time) CheckerOption {
	return func(c *Checker) {
		if clock != nil {
			c.now = clock
		}
	}
}

func NewChecker(source ProfileSource, opts ...CheckerOption) *Checker {
	c := &Checker{source: source, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Check builds the response for userID. A missing profile yields an empty,
// non-premium response. Expired subscriptions are reported as not premium.
func (c *Checker) Check(ctx context.Context, userID uuid.UUID) (CheckResponse, error) {
	if userID == uuid.Nil {
		return CheckResponse{}, ErrUserIDRequired
	}
	profile, err := c.source.GetProfile(ctx, userID)
	if err != nil {
		return CheckResponse{}, err
	}
	notPremium := false
	if profile == nil {
		return CheckResponse{Profile: ProfilePayload{IsPremium: &notPremium}}, nil
	}

	premium := profile.IsPremium
	if profile.SubscriptionEnd != nil && profile.SubscriptionEnd.Before(c.now()) {
		premium = false
	}

	resp := CheckResponse{
		Profile: ProfilePayload{IsPremium: &premium},
		Subscription: SubscriptionPayload{
			SubscriptionTier: profile.SubscriptionTier,
			SubscriptionType: profile.SubscriptionType,
			SubscriptionEnd:  profile.SubscriptionEnd,
		},
	}
	if profile.InstitutionID != nil {
		inst, err := c.source.GetInstitution(ctx, *profile.InstitutionID)
		if err != nil {
			return CheckResponse{}, err
		}
		if inst != nil {
			resp.Profile.Institution = &Institution{Name: inst.Name, Domain: inst.Domain}
		}
	}
	return resp, nil
}

// Handler adapts the checker to the function registry.
func (c *Checker) Handler() functions.Handler {
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req CheckRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("subscriptions: decode check request: %w", err)
		}
		return c.Check(ctx, req.UserID)
	}
}

// Register binds the checker under name in registry.
func (c *Checker) Register(registry *functions.Registry, name string) error {
	if name == "" {
		name = FunctionName
	}
	return registry.Register(name, c.Handler())
}

// BunProfileSource reads profiles and institutions through go-repository-bun.
type BunProfileSource struct {
	profiles     repository.Repository[*Profile]
	institutions repository.Repository[*InstitutionRecord]
}

func NewBunProfileSource(db *bun.DB) *BunProfileSource {
	return &BunProfileSource{
		profiles: repository.MustNewRepository(db, repository.ModelHandlers[*Profile]{
			NewRecord: func() *Profile { return &Profile{} },
			GetID: func(p *Profile) uuid.UUID {
				return p.ID
			},
			SetID: func(p *Profile, id uuid.UUID) {
				p.ID = id
			},
			GetIdentifier: func() string {
				return "id"
			},
			GetIdentifierValue: func(p *Profile) string {
				return p.ID.String()
			},
		}),
		institutions: repository.MustNewRepository(db, repository.ModelHandlers[*InstitutionRecord]{
			NewRecord: func() *InstitutionRecord { return &InstitutionRecord{} },
			GetID: func(i *InstitutionRecord) uuid.UUID {
				return i.ID
			},
			SetID: func(i *InstitutionRecord, id uuid.UUID) {
				i.ID = id
			},
			GetIdentifier: func() string {
				return "domain"
			},
			GetIdentifierValue: func(i *InstitutionRecord) string {
				return i.Domain
			},
		}),
	}
}

func (s *BunProfileSource) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	record, err := s.profiles.GetByID(ctx, userID.String())
	return optional(record, err, "profile")
}

func (s *BunProfileSource) GetInstitution(ctx context.Context, id uuid.UUID) (*InstitutionRecord, error) {
	record, err := s.institutions.GetByID(ctx, id.String())
	return optional(record, err, "institution")
}

// SaveProfile inserts a profile row.
func (s *BunProfileSource) SaveProfile(ctx context.Context, profile *Profile) (*Profile, error) {
	return s.profiles.Create(ctx, profile)
}

// SaveInstitution inserts an institution row.
func (s *BunProfileSource) SaveInstitution(ctx context.Context, inst *InstitutionRecord) (*InstitutionRecord, error) {
	return s.institutions.Create(ctx, inst)
}

func optional[T any](record T, err error, resource string) (T, error) {
	var zero T
	if err == nil {
		return record, nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return zero, nil
	}
	return zero, fmt.Errorf("%s repository error: %w", resource, err)
}
