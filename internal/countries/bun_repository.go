package countries

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewCountryModelRepository creates the go-repository-bun repository for countries.
func NewCountryModelRepository(db *bun.DB) repository.Repository[*Country] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Country]{
		NewRecord: func() *Country { return &Country{} },
		GetID: func(c *Country) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Country, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(c *Country) string {
			return c.Slug
		},
	})
}

// NewCityModelRepository creates the go-repository-bun repository for cities.
func NewCityModelRepository(db *bun.DB) repository.Repository[*City] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*City]{
		NewRecord: func() *City { return &City{} },
		GetID: func(c *City) uuid.UUID {
			return c.ID
		},
		SetID: func(c *City, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(c *City) string {
			return c.ID.String()
		},
	})
}

// NewSheetModelRepository creates the go-repository-bun repository for country sheets.
func NewSheetModelRepository(db *bun.DB) repository.Repository[*CountrySheet] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*CountrySheet]{
		NewRecord: func() *CountrySheet { return &CountrySheet{} },
		GetID: func(s *CountrySheet) uuid.UUID {
			return s.ID
		},
		SetID: func(s *CountrySheet, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(s *CountrySheet) string {
			return s.Slug
		},
	})
}

// BunCountryRepository implements CountryRepository with optional caching.
// List reads bypass the repository cache; the query client caches them by key.
type BunCountryRepository struct {
	repo  repository.Repository[*Country]
	lists repository.Repository[*Country]
}

func NewBunCountryRepository(db *bun.DB) *BunCountryRepository {
	return NewBunCountryRepositoryWithCache(db, nil, nil)
}

func NewBunCountryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunCountryRepository {
	base := NewCountryModelRepository(db)
	return &BunCountryRepository{repo: wrapWithCache(base, cacheService, serializer), lists: base}
}

func (r *BunCountryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Country, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "country", id.String())
	}
	return record, nil
}

func (r *BunCountryRepository) GetBySlug(ctx context.Context, slug string) (*Country, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "country", slug)
	}
	return record, nil
}

func (r *BunCountryRepository) List(ctx context.Context) ([]*Country, error) {
	records, _, err := r.lists.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.name ASC")
		}),
		selectAll(),
	)
	return records, err
}

func (r *BunCountryRepository) Create(ctx context.Context, record *Country) (*Country, error) {
	return r.repo.Create(ctx, record)
}

// BunCityRepository implements CityRepository with optional caching.
type BunCityRepository struct {
	repo  repository.Repository[*City]
	lists repository.Repository[*City]
}

func NewBunCityRepository(db *bun.DB) *BunCityRepository {
	return NewBunCityRepositoryWithCache(db, nil, nil)
}

func NewBunCityRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunCityRepository {
	base := NewCityModelRepository(db)
	return &BunCityRepository{repo: wrapWithCache(base, cacheService, serializer), lists: base}
}

func (r *BunCityRepository) ListMappable(ctx context.Context, countryID uuid.UUID) ([]*City, error) {
	records, _, err := r.lists.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.country_id = ?", countryID).
				Where("?TableAlias.latitude IS NOT NULL").
				Where("?TableAlias.longitude IS NOT NULL").
				OrderExpr("?TableAlias.name ASC")
		}),
		selectAll(),
	)
	if err != nil {
		return nil, fmt.Errorf("city repository error: %w", err)
	}
	return records, nil
}

func (r *BunCityRepository) Create(ctx context.Context, record *City) (*City, error) {
	return r.repo.Create(ctx, record)
}

// BunSheetRepository implements SheetRepository with optional caching.
type BunSheetRepository struct {
	repo repository.Repository[*CountrySheet]
}

func NewBunSheetRepository(db *bun.DB) *BunSheetRepository {
	return NewBunSheetRepositoryWithCache(db, nil, nil)
}

func NewBunSheetRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunSheetRepository {
	return &BunSheetRepository{repo: wrapWithCache(NewSheetModelRepository(db), cacheService, serializer)}
}

func (r *BunSheetRepository) GetBySlug(ctx context.Context, slug string) (*CountrySheet, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "country_sheet", slug)
	}
	return record, nil
}

func (r *BunSheetRepository) Create(ctx context.Context, record *CountrySheet) (*CountrySheet, error) {
	return r.repo.Create(ctx, record)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

// selectAll clears the default page size go-repository-bun applies to List.
func selectAll() repository.SelectCriteria {
	return repository.SelectPaginate(0, 0)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, serializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || serializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, serializer)
}
