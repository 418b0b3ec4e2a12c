// Package atlas is the data access layer of a country and travel guide. It
// reads countries, cities, country sheets and sectioned country content,
// manages a user's trips, tracks subscription status, holds premium modal
// state and renders Markdown into styled HTML.
package atlas

import (
	"context"

	"github.com/goliatone/go-atlas/internal/countries"
	"github.com/goliatone/go-atlas/internal/countrycontent"
	"github.com/goliatone/go-atlas/internal/di"
	"github.com/goliatone/go-atlas/internal/i18n"
	"github.com/goliatone/go-atlas/internal/markdown"
	"github.com/goliatone/go-atlas/internal/premium"
	"github.com/goliatone/go-atlas/internal/query"
	"github.com/goliatone/go-atlas/internal/subscriptions"
	"github.com/goliatone/go-atlas/internal/trips"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

type (
	Country             = countries.Country
	City                = countries.City
	CountrySheet        = countries.CountrySheet
	MapData             = countries.MapData
	CountryService      = countries.Service
	Section             = countrycontent.Section
	CountryContent      = countrycontent.CountryContent
	ContentService      = countrycontent.Service
	UserTrip            = trips.UserTrip
	CreateTripInput     = trips.CreateTripInput
	TripService         = trips.Service
	TripsStore          = trips.Store
	TripsState          = trips.TripsState
	SubscriptionStatus  = subscriptions.Status
	SubscriptionState   = subscriptions.State
	SubscriptionTracker = subscriptions.Tracker
	PremiumModal        = premium.Modal
	PremiumModalState   = premium.ModalState
	MarkdownOutput      = markdown.Output
	User                = interfaces.User
	Translator          = i18n.Translator
	QueryClient         = query.Client
)

// Module is the runtime facade hosts construct once and share.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg with optional container overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Close releases resources the module opened.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Countries returns the country read service.
func (m *Module) Countries() CountryService {
	return m.container.CountryService()
}

// Content returns the country content service.
func (m *Module) Content() ContentService {
	return m.container.ContentService()
}

// Trips returns the stateless trip service.
func (m *Module) Trips() TripService {
	return m.container.TripService()
}

// NewTripsStore returns a store tracking one user's trips.
func (m *Module) NewTripsStore() *TripsStore {
	return m.container.NewTripsStore()
}

// NewSubscriptionTracker returns a tracker for one user's subscription.
func (m *Module) NewSubscriptionTracker() *SubscriptionTracker {
	return m.container.NewSubscriptionTracker()
}

// NewPremiumModal returns an independent premium modal state holder.
func (m *Module) NewPremiumModal() *PremiumModal {
	return m.container.NewPremiumModal()
}

// RenderMarkdown converts source into styled HTML wrapped with className.
func (m *Module) RenderMarkdown(source, className string) (MarkdownOutput, error) {
	return m.container.MarkdownRenderer().Render(source, className)
}

// Translator loads translation resources on first use.
func (m *Module) Translator(ctx context.Context) (*Translator, error) {
	return m.container.Translator(ctx)
}

// Queries exposes the shared query cache for invalidation.
func (m *Module) Queries() *QueryClient {
	return m.container.QueryClient()
}
