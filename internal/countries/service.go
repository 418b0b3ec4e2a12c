package countries

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-atlas/internal/logging"
	"github.com/goliatone/go-atlas/internal/query"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

const (
	EntityCountry = "country"
	EntitySheet   = "country_sheet"
	EntityMap     = "country_map"
)

// Service exposes the country, sheet and map-data reads.
//
// Single-record lookups return nil, nil when nothing matches; GetMapData
// fails with *NotFoundError instead. Both shapes are relied upon by callers.
type Service interface {
	GetBySlug(ctx context.Context, slug string) (*Country, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Country, error)
	GetSheetBySlug(ctx context.Context, slug string) (*CountrySheet, error)
	GetMapData(ctx context.Context, countryID uuid.UUID) (*MapData, error)
	List(ctx context.Context) ([]*Country, error)
}

// ServiceOption configures the country service.
type ServiceOption func(*service)

// WithQueryClient shares a query client across services.
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

type service struct {
	countries CountryRepository
	cities    CityRepository
	sheets    SheetRepository
	query     *query.Client
	logger    interfaces.Logger
}

// NewService wires the country repositories behind a query cache.
func NewService(countries CountryRepository, cities CityRepository, sheets SheetRepository, opts ...ServiceOption) Service {
	s := &service{
		countries: countries,
		cities:    cities,
		sheets:    sheets,
		logger:    logging.NoOp(),
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

func (s *service) GetBySlug(ctx context.Context, slug string) (*Country, error) {
	slug = normalizeSlug(slug)
	if slug == "" {
		return nil, nil
	}
	key := query.Key{Entity: EntityCountry, Lookup: "slug:" + slug}
	return query.FetchCopy(ctx, s.query, key, func(ctx context.Context) (*Country, error) {
		record, err := s.countries.GetBySlug(ctx, slug)
		return s.optional(record, err, "countries.get_by_slug", "slug", slug)
	}, cloneCountry)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Country, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	key := query.Key{Entity: EntityCountry, Lookup: "id:" + id.String()}
	return query.FetchCopy(ctx, s.query, key, func(ctx context.Context) (*Country, error) {
		record, err := s.countries.GetByID(ctx, id)
		return s.optional(record, err, "countries.get_by_id", "country_id", id.String())
	}, cloneCountry)
}

func (s *service) GetSheetBySlug(ctx context.Context, slug string) (*CountrySheet, error) {
	slug = normalizeSlug(slug)
	if slug == "" {
		return nil, nil
	}
	key := query.Key{Entity: EntitySheet, Lookup: slug}
	return query.FetchCopy(ctx, s.query, key, func(ctx context.Context) (*CountrySheet, error) {
		record, err := s.sheets.GetBySlug(ctx, slug)
		return optionalSheet(s, record, err, slug)
	}, cloneSheet)
}

func (s *service) GetMapData(ctx context.Context, countryID uuid.UUID) (*MapData, error) {
	if countryID == uuid.Nil {
		return nil, nil
	}
	key := query.Key{Entity: EntityMap, Lookup: countryID.String()}
	return query.FetchCopy(ctx, s.query, key, func(ctx context.Context) (*MapData, error) {
		country, err := s.countries.GetByID(ctx, countryID)
		if err != nil {
			var notFound *NotFoundError
			if errors.As(err, &notFound) {
				return nil, &NotFoundError{Resource: "country", Key: countryID.String(), Message: countryNotFoundMessage}
			}
			s.logger.Error("countries.map_data.country_failed", "country_id", countryID.String(), "error", err)
			return nil, err
		}
		if country == nil {
			return nil, &NotFoundError{Resource: "country", Key: countryID.String(), Message: countryNotFoundMessage}
		}

		cities, err := s.cities.ListMappable(ctx, countryID)
		if err != nil {
			s.logger.Error("countries.map_data.cities_failed", "country_id", countryID.String(), "error", err)
			return nil, err
		}
		mappable := make([]*City, 0, len(cities))
		for _, city := range cities {
			if city.HasCoordinates() {
				mappable = append(mappable, city)
			}
		}
		return &MapData{Country: country, Cities: mappable}, nil
	}, cloneMapData)
}

func (s *service) List(ctx context.Context) ([]*Country, error) {
	key := query.Key{Entity: EntityCountry, Lookup: "all"}
	return query.FetchCopy(ctx, s.query, key, func(ctx context.Context) ([]*Country, error) {
		records, err := s.countries.List(ctx)
		if err != nil {
			s.logger.Error("countries.list_failed", "error", err)
			return nil, err
		}
		return records, nil
	}, cloneCountries)
}

func (s *service) optional(record *Country, err error, operation, field, value string) (*Country, error) {
	if err == nil {
		return record, nil
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return nil, nil
	}
	s.logger.Error(operation+"_failed", field, value, "error", err)
	return nil, err
}

func optionalSheet(s *service, record *CountrySheet, err error, slug string) (*CountrySheet, error) {
	if err == nil {
		return record, nil
	}
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return nil, nil
	}
	s.logger.Error("countries.get_sheet_failed", "slug", slug, "error", err)
	return nil, err
}

// normalizeSlug trims and lowercases through go-slug; values go-slug rejects
// are passed through trimmed so the store decides.
func normalizeSlug(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return trimmed
	}
	return normalized
}
