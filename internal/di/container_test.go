package di_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-atlas/internal/countries"
	"github.com/goliatone/go-atlas/internal/countrycontent"
	"github.com/goliatone/go-atlas/internal/di"
	"github.com/goliatone/go-atlas/internal/functions"
	"github.com/goliatone/go-atlas/internal/logging/gologger"
	"github.com/goliatone/go-atlas/internal/runtimeconfig"
	"github.com/goliatone/go-atlas/internal/subscriptions"
	"github.com/goliatone/go-atlas/internal/trips"
	"github.com/goliatone/go-atlas/pkg/interfaces"
	"github.com/goliatone/go-atlas/pkg/testsupport"
)

func memoryConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "memory"
	return cfg
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Subscriptions.FunctionName = ""
	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrSubscriptionFunctionRequired) {
		t.Fatalf("expected function name error, got %v", err)
	}
}

func TestMemoryContainerServesCountries(t *testing.T) {
	ctx := context.Background()
	container, err := di.NewContainer(memoryConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.BunDB() != nil {
		t.Fatalf("expected memory mode without database")
	}

	france, err := container.CountryRepository().Create(ctx, &countries.Country{ID: uuid.New(), Name: "France", Slug: "france"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := container.CountryService().GetBySlug(ctx, "france")
	if err != nil || got == nil || got.ID != france.ID {
		t.Fatalf("unexpected country: %+v %v", got, err)
	}

	mapData, err := container.CountryService().GetMapData(ctx, france.ID)
	if err != nil {
		t.Fatalf("map data: %v", err)
	}
	if mapData.Cities == nil || len(mapData.Cities) != 0 {
		t.Fatalf("expected empty non-nil cities, got %#v", mapData.Cities)
	}
	if container.QueryClient().Len() == 0 {
		t.Fatalf("expected reads to populate the query cache")
	}
}

func TestContainerSubscriptionTrackerUsesRegistry(t *testing.T) {
	ctx := context.Background()
	source := subscriptions.NewMemoryProfileSource()
	userID := uuid.New()
	tier := "gold"
	source.PutProfile(subscriptions.Profile{ID: userID, IsPremium: true, SubscriptionTier: &tier})

	container, err := di.NewContainer(memoryConfig(), di.WithProfileSource(source))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if _, ok := container.FunctionInvoker().(*functions.Registry); !ok {
		t.Fatalf("expected in-process registry invoker, got %T", container.FunctionInvoker())
	}

	tracker := container.NewSubscriptionTracker()
	tracker.SetUser(ctx, &interfaces.User{ID: userID})
	state := tracker.Snapshot()
	if state.Status == nil || !state.Status.Subscribed || state.Status.Tier == nil || *state.Status.Tier != "gold" {
		t.Fatalf("unexpected status: %+v", state.Status)
	}
}

func TestContainerRemoteInvokerWhenBaseURLSet(t *testing.T) {
	cfg := memoryConfig()
	cfg.Subscriptions.BaseURL = "https://functions.example.test"
	cfg.Subscriptions.APIKey = "anon"
	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if _, ok := container.FunctionInvoker().(*functions.HTTPInvoker); !ok {
		t.Fatalf("expected http invoker, got %T", container.FunctionInvoker())
	}
}

func TestContainerSelectsGoLoggerProvider(t *testing.T) {
	cfg := memoryConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "json"
	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if _, ok := container.LoggerProvider().(*gologger.Provider); !ok {
		t.Fatalf("expected gologger provider, got %T", container.LoggerProvider())
	}
}

func TestContainerTripsStoreRefreshesAfterCreate(t *testing.T) {
	ctx := context.Background()
	container, err := di.NewContainer(memoryConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	store := container.NewTripsStore()
	store.SetUser(ctx, &interfaces.User{ID: uuid.New()})
	created := store.Create(ctx, trips.CreateTripInput{DestinationName: "Oslo"})
	if created == nil {
		t.Fatalf("expected created trip")
	}
	if state := store.Snapshot(); len(state.Trips) != 1 || state.Err != nil {
		t.Fatalf("unexpected store state: %+v", state)
	}
}

func TestBunContainerPersistsContent(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunSQLite(t,
		(*countries.Country)(nil),
		(*countries.City)(nil),
		(*countries.CountrySheet)(nil),
		(*countrycontent.CountryContent)(nil),
		(*trips.UserTrip)(nil),
	)

	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.RepositoryTTL = time.Second
	container, err := di.NewContainer(cfg, di.WithBunDB(db))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	countryID := uuid.New()
	if _, err := container.ContentService().Upsert(ctx, countrycontent.UpsertContentRequest{
		CountryID: countryID,
		Section:   countrycontent.SectionVisa,
		Content:   "Visa on arrival.",
	}); err != nil {
		t.Fatalf("upsert visa: %v", err)
	}
	if _, err := container.ContentService().Upsert(ctx, countrycontent.UpsertContentRequest{
		CountryID: countryID,
		Section:   countrycontent.SectionCulture,
		Content:   "Tea culture.",
	}); err != nil {
		t.Fatalf("upsert culture: %v", err)
	}

	sections, err := container.ContentService().ListByCountry(ctx, countryID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sections) != 2 || sections[0].Section != countrycontent.SectionCulture || sections[1].Section != countrycontent.SectionVisa {
		t.Fatalf("unexpected ordering: %+v", sections)
	}
}

func TestTranslatorDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.I18N.Enabled = false
	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if _, err := container.Translator(context.Background()); !errors.Is(err, di.ErrI18NDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
}
