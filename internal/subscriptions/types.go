package subscriptions

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FunctionName is the default name of the subscription check function.
const FunctionName = "check-subscription"

// Institution is the affiliation attached to a premium profile.
type Institution struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// Status is the flattened subscription view consumed by callers.
type Status struct {
	Subscribed  bool         `json:"subscribed"`
	Tier        *string      `json:"tier,omitempty"`
	Type        *string      `json:"type,omitempty"`
	EndsAt      *time.Time   `json:"ends_at,omitempty"`
	Institution *Institution `json:"institution,omitempty"`
}

// CheckResponse is the nested payload returned by the check function.
type CheckResponse struct {
	Profile      ProfilePayload      `json:"profile"`
	Subscription SubscriptionPayload `json:"subscription"`
}

type ProfilePayload struct {
	IsPremium   *bool        `json:"is_premium,omitempty"`
	Institution *Institution `json:"institution,omitempty"`
}

type SubscriptionPayload struct {
	SubscriptionTier *string    `json:"subscription_tier,omitempty"`
	SubscriptionType *string    `json:"subscription_type,omitempty"`
	SubscriptionEnd  *time.Time `json:"subscription_end,omitempty"`
}

// CheckRequest is the payload sent to the check function.
type CheckRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

// Profile holds the subscription columns of a user profile.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:p"`

	ID               uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	IsPremium        bool       `bun:"is_premium,notnull,default:false" json:"is_premium"`
	SubscriptionTier *string    `bun:"subscription_tier" json:"subscription_tier,omitempty"`
	SubscriptionType *string    `bun:"subscription_type" json:"subscription_type,omitempty"`
	SubscriptionEnd  *time.Time `bun:"subscription_end" json:"subscription_end,omitempty"`
	InstitutionID    *uuid.UUID `bun:"institution_id,type:uuid" json:"institution_id,omitempty"`
	CreatedAt        time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// InstitutionRecord is the stored institution row.
type InstitutionRecord struct {
	bun.BaseModel `bun:"table:institutions,alias:i"`

	ID     uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name   string    `bun:"name,notnull" json:"name"`
	Domain string    `bun:"domain,notnull,unique" json:"domain"`
}

// State is a point-in-time view of a Tracker. Status is nil when there is no user.
type State struct {
	Status  *Status
	Loading bool
}
