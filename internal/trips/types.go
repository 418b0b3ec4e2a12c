package trips

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserTrip is a user-owned record of an intended or past destination visit.
type UserTrip struct {
	bun.BaseModel `bun:"table:user_trips,alias:ut"`

	ID              uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	UserID          uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id"`
	CityID          *uuid.UUID `bun:"city_id,type:uuid" json:"city_id,omitempty"`
	CountryID       *uuid.UUID `bun:"country_id,type:uuid" json:"country_id,omitempty"`
	DestinationName string     `bun:"destination_name,notnull" json:"destination_name"`
	DepartureDate   *time.Time `bun:"departure_date" json:"departure_date,omitempty"`
	Notes           *string    `bun:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// CreateTripInput carries the caller-supplied trip fields. The owner is
// always taken from the acting user.
type CreateTripInput struct {
	CityID          *uuid.UUID `json:"city_id,omitempty"`
	CountryID       *uuid.UUID `json:"country_id,omitempty"`
	DestinationName string     `json:"destination_name"`
	DepartureDate   *time.Time `json:"departure_date,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// TripsState is a point-in-time view of a Store.
type TripsState struct {
	Trips   []*UserTrip
	Loading bool
	Err     error
}
