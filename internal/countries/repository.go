package countries

import (
	"context"

	"github.com/google/uuid"
)

// CountryRepository reads countries. Missing records surface as *NotFoundError.
type CountryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Country, error)
	GetBySlug(ctx context.Context, slug string) (*Country, error)
	List(ctx context.Context) ([]*Country, error)
	Create(ctx context.Context, record *Country) (*Country, error)
}

// CityRepository reads cities for a country.
type CityRepository interface {
	ListMappable(ctx context.Context, countryID uuid.UUID) ([]*City, error)
	Create(ctx context.Context, record *City) (*City, error)
}

// SheetRepository reads country sheets by slug.
type SheetRepository interface {
	GetBySlug(ctx context.Context, slug string) (*CountrySheet, error)
	Create(ctx context.Context, record *CountrySheet) (*CountrySheet, error)
}
