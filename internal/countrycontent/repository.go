package countrycontent

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists country content rows.
type Repository interface {
	ListByCountry(ctx context.Context, countryID uuid.UUID) ([]*CountryContent, error)
	GetSection(ctx context.Context, countryID uuid.UUID, section Section) (*CountryContent, error)
	Upsert(ctx context.Context, record *CountryContent) (*CountryContent, error)
}
