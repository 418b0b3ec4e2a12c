package tripscmd

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-atlas/internal/trips"
)

const (
	createTripMessageType = "atlas.trips.create"
	maxDestinationLength  = 200
	maxNotesLength        = 2000
)

// CreateTripCommand records a planned trip for UserID.
type CreateTripCommand struct {
	UserID          uuid.UUID  `json:"user_id"`
	DestinationName string     `json:"destination_name"`
	CityID          *uuid.UUID `json:"city_id,omitempty"`
	CountryID       *uuid.UUID `json:"country_id,omitempty"`
	DepartureDate   *time.Time `json:"departure_date,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// Type implements command.Message.
func (CreateTripCommand) Type() string { return createTripMessageType }

// Validate checks the owner and destination before the handler runs.
func (cmd CreateTripCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.UserID, validation.By(requireUUID("atlas.trips.create.user_required", "user id is required"))),
		validation.Field(&cmd.DestinationName,
			validation.By(func(value any) error {
				if strings.TrimSpace(value.(string)) == "" {
					return validation.NewError("atlas.trips.create.destination_required", "destination name is required")
				}
				return nil
			}),
			validation.RuneLength(0, maxDestinationLength),
		),
		validation.Field(&cmd.Notes, validation.NilOrNotEmpty, validation.RuneLength(0, maxNotesLength)),
	)
}

// Input converts the command into the service input.
func (cmd CreateTripCommand) Input() trips.CreateTripInput {
	return trips.CreateTripInput{
		CityID:          cmd.CityID,
		CountryID:       cmd.CountryID,
		DestinationName: cmd.DestinationName,
		DepartureDate:   cmd.DepartureDate,
		Notes:           cmd.Notes,
	}
}

func requireUUID(code, message string) validation.RuleFunc {
	return func(value any) error {
		id, _ := value.(uuid.UUID)
		if id == uuid.Nil {
			return validation.NewError(code, message)
		}
		return nil
	}
}
