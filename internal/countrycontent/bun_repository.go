package countrycontent

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

const contentNamespace = "country_content"

// NewContentModelRepository creates the go-repository-bun repository for content rows.
func NewContentModelRepository(db *bun.DB) repository.Repository[*CountryContent] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*CountryContent]{
		NewRecord: func() *CountryContent { return &CountryContent{} },
		GetID: func(c *CountryContent) uuid.UUID {
			return c.ID
		},
		SetID: func(c *CountryContent, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(c *CountryContent) string {
			return c.ID.String()
		},
	})
}

// BunRepository implements Repository with optional caching. Criteria based
// reads go to the base repository; the query client caches them by key.
type BunRepository struct {
	repo         repository.Repository[*CountryContent]
	lists        repository.Repository[*CountryContent]
	cacheService cache.CacheService
	cachePrefix  string
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewContentModelRepository(db)
	out := &BunRepository{repo: base, lists: base}
	if cacheService != nil && serializer != nil {
		out.repo = repositorycache.New(base, cacheService, serializer)
		out.cacheService = cacheService
		out.cachePrefix = contentNamespace + cache.KeySeparator
	}
	return out
}

func (r *BunRepository) ListByCountry(ctx context.Context, countryID uuid.UUID) ([]*CountryContent, error) {
	records, _, err := r.lists.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.country_id = ?", countryID).
				OrderExpr("?TableAlias.section ASC")
		}),
		repository.SelectPaginate(0, 0),
	)
	if err != nil {
		return nil, fmt.Errorf("country_content repository error: %w", err)
	}
	return records, nil
}

func (r *BunRepository) GetSection(ctx context.Context, countryID uuid.UUID, section Section) (*CountryContent, error) {
	records, _, err := r.lists.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.country_id = ?", countryID).
				Where("?TableAlias.section = ?", string(section))
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, contentNamespace, countryID.String()+":"+string(section))
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: contentNamespace, Key: countryID.String() + ":" + string(section)}
	}
	return records[0], nil
}

// Upsert inserts the row or updates it in place when the id already exists.
func (r *BunRepository) Upsert(ctx context.Context, record *CountryContent) (*CountryContent, error) {
	existing, err := r.repo.GetByID(ctx, record.ID.String())
	if err != nil && !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return nil, fmt.Errorf("country_content repository error: %w", err)
	}

	var saved *CountryContent
	if existing == nil {
		saved, err = r.repo.Create(ctx, record)
	} else {
		record.CreatedAt = existing.CreatedAt
		saved, err = r.repo.Update(ctx, record)
	}
	if err != nil {
		return nil, fmt.Errorf("country_content repository error: %w", err)
	}
	if err := r.invalidate(ctx); err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *BunRepository) invalidate(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
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
