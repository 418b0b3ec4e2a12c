package countries

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Country is read-only from this layer.
type Country struct {
	bun.BaseModel `bun:"table:countries,alias:c"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Slug      string    `bun:"slug,notnull,unique" json:"slug"`
	ISOCode   string    `bun:"iso_code" json:"iso_code,omitempty"`
	Region    string    `bun:"region" json:"region,omitempty"`
	Capital   string    `bun:"capital" json:"capital,omitempty"`
	Latitude  *float64  `bun:"latitude" json:"latitude,omitempty"`
	Longitude *float64  `bun:"longitude" json:"longitude,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// City rows without coordinates are excluded from map data.
type City struct {
	bun.BaseModel `bun:"table:cities,alias:ci"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	CountryID uuid.UUID `bun:"country_id,notnull,type:uuid" json:"country_id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Latitude  *float64  `bun:"latitude" json:"latitude,omitempty"`
	Longitude *float64  `bun:"longitude" json:"longitude,omitempty"`
}

// HasCoordinates reports whether the city can be placed on a map.
func (c *City) HasCoordinates() bool {
	return c != nil && c.Latitude != nil && c.Longitude != nil
}

// CountrySheet is the slug-addressed summary record for a country.
type CountrySheet struct {
	bun.BaseModel `bun:"table:countries_sheets,alias:cs"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Slug      string         `bun:"slug,notnull,unique" json:"slug"`
	Title     string         `bun:"title" json:"title"`
	Summary   string         `bun:"summary" json:"summary,omitempty"`
	Currency  string         `bun:"currency" json:"currency,omitempty"`
	Language  string         `bun:"language" json:"language,omitempty"`
	Climate   string         `bun:"climate" json:"climate,omitempty"`
	Data      map[string]any `bun:"data,type:jsonb" json:"data,omitempty"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// MapData pairs a country with its mappable cities. Cities is never nil.
type MapData struct {
	Country *Country `json:"country"`
	Cities  []*City  `json:"cities"`
}

// NotFoundError is returned when a lookup yields no record and the caller
// asked for a failure rather than a nil result.
type NotFoundError struct {
	Resource string
	Key      string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

const countryNotFoundMessage = "Country not found"
