package countrycontent

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-atlas/internal/identity"
	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/internal/query"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

const EntityContent = "country_content"

var (
	ErrInvalidSection    = errors.New("countrycontent: invalid section")
	ErrCountryIDRequired = errors.New("countrycontent: country id is required")
)

// Service reads and writes country content sections.
type Service interface {
	ListByCountry(ctx context.Context, countryID uuid.UUID) ([]*CountryContent, error)
	GetSection(ctx context.Context, countryID uuid.UUID, section Section) (*CountryContent, error)
	Upsert(ctx context.Context, req UpsertContentRequest) (*CountryContent, error)
}

// ServiceOption configures the content service.
type ServiceOption func(*service)

func WithQueryClient(client *query.Client) ServiceOption {
	return func(s *service) {
		if client != nil {
			s.query = client
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

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type service struct {
	repo   Repository
	query  *query.Client
	logger interfaces.Logger
	now    func() time.Time
}

func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.query == nil {
		s.query = query.NewClient(query.WithLogger(s.logger))
	}
	return s
}

// ListByCountry returns every section for the country ordered by section
// name. Failures are returned as-is with a nil slice.
func (s *service) ListByCountry(ctx context.Context, countryID uuid.UUID) ([]*CountryContent, error) {
	if countryID == uuid.Nil {
		return nil, nil
	}
	key := query.Key{Entity: EntityContent, Lookup: countryID.String()}
	return query.FetchCopy(ctx, s.query, key, func(ctx context.Context) ([]*CountryContent, error) {
		records, err := s.repo.ListByCountry(ctx, countryID)
		if err != nil {
			s.logger.Error("content.list_failed", "country_id", countryID.String(), "error", err)
			return nil, err
		}
		if records == nil {
			records = []*CountryContent{}
		}
		sortBySection(records)
		return records, nil
	}, cloneContents)
}

func (s *service) GetSection(ctx context.Context, countryID uuid.UUID, section Section) (*CountryContent, error) {
	if countryID == uuid.Nil {
		return nil, nil
	}
	if !section.Valid() {
		return nil, ErrInvalidSection
	}
	record, err := s.repo.GetSection(ctx, countryID, section)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		s.logger.Error("content.get_section_failed", "country_id", countryID.String(), "section", string(section), "error", err)
		return nil, err
	}
	return record, nil
}

// Upsert stores one section body under a deterministic id and drops the
// cached list for the country.
func (s *service) Upsert(ctx context.Context, req UpsertContentRequest) (*CountryContent, error) {
	if req.CountryID == uuid.Nil {
		return nil, ErrCountryIDRequired
	}
	section, err := ParseSection(string(req.Section))
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &CountryContent{
		ID:        identity.CountryContentUUID(req.CountryID, string(section)),
		CountryID: req.CountryID,
		Section:   section,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.repo.Upsert(ctx, record)
	if err != nil {
		s.logger.Error("content.upsert_failed", "country_id", req.CountryID.String(), "section", string(section), "error", err)
		return nil, err
	}
	s.query.Invalidate(query.Key{Entity: EntityContent, Lookup: req.CountryID.String()})
	s.logger.Info("content.upserted", "country_id", req.CountryID.String(), "section", string(section))
	return saved, nil
}
