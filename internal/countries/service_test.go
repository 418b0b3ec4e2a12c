package countries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-atlas/internal/countries"
	"github.com/goliatone/go-atlas/pkg/testsupport"
)

type countingCountryRepo struct {
	countries.CountryRepository
	bySlug int
	byID   int
	err    error
}

func (c *countingCountryRepo) GetBySlug(ctx context.Context, slug string) (*countries.Country, error) {
	c.bySlug++
	if c.err != nil {
		return nil, c.err
	}
	return c.CountryRepository.GetBySlug(ctx, slug)
}

func (c *countingCountryRepo) GetByID(ctx context.Context, id uuid.UUID) (*countries.Country, error) {
	c.byID++
	if c.err != nil {
		return nil, c.err
	}
	return c.CountryRepository.GetByID(ctx, id)
}

type countingCityRepo struct {
	countries.CityRepository
	calls int
}

func (c *countingCityRepo) ListMappable(ctx context.Context, id uuid.UUID) ([]*countries.City, error) {
	c.calls++
	return c.CityRepository.ListMappable(ctx, id)
}

type fixture struct {
	svc     countries.Service
	country *countingCountryRepo
	cities  *countingCityRepo
	sheets  countries.SheetRepository
	france  *countries.Country
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	countryRepo := &countingCountryRepo{CountryRepository: countries.NewMemoryCountryRepository()}
	cityRepo := &countingCityRepo{CityRepository: countries.NewMemoryCityRepository()}
	sheetRepo := countries.NewMemorySheetRepository()

	france, err := countryRepo.Create(ctx, &countries.Country{
		ID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name: "France",
		Slug: "france",
	})
	if err != nil {
		t.Fatalf("seed country: %v", err)
	}
	if _, err := sheetRepo.Create(ctx, &countries.CountrySheet{Slug: "france", Title: "France at a glance", Currency: "EUR"}); err != nil {
		t.Fatalf("seed sheet: %v", err)
	}

	return &fixture{
		svc:     countries.NewService(countryRepo, cityRepo, sheetRepo),
		country: countryRepo,
		cities:  cityRepo,
		sheets:  sheetRepo,
		france:  france,
	}
}

func TestGetBySlugReturnsRecord(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.GetBySlug(context.Background(), "france")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got == nil || got.ID != f.france.ID {
		t.Fatalf("expected france, got %+v", got)
	}
}

func TestGetBySlugNotFoundIsNil(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.GetBySlug(context.Background(), "atlantis")
	if err != nil {
		t.Fatalf("expected no error for missing slug, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil country, got %+v", got)
	}
}

func TestEmptyKeysIssueNoCalls(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if got, err := f.svc.GetBySlug(ctx, "   "); got != nil || err != nil {
		t.Fatalf("expected nil, nil for blank slug, got %v %v", got, err)
	}
	if got, err := f.svc.GetByID(ctx, uuid.Nil); got != nil || err != nil {
		t.Fatalf("expected nil, nil for nil id, got %v %v", got, err)
	}
	if got, err := f.svc.GetSheetBySlug(ctx, ""); got != nil || err != nil {
		t.Fatalf("expected nil, nil for blank sheet slug, got %v %v", got, err)
	}
	if got, err := f.svc.GetMapData(ctx, uuid.Nil); got != nil || err != nil {
		t.Fatalf("expected nil, nil for nil map id, got %v %v", got, err)
	}
	if f.country.bySlug != 0 || f.country.byID != 0 || f.cities.calls != 0 {
		t.Fatalf("expected no repository calls, got slug=%d id=%d cities=%d", f.country.bySlug, f.country.byID, f.cities.calls)
	}
}

func TestRepeatedLookupsAreCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for range 3 {
		if _, err := f.svc.GetBySlug(ctx, "france"); err != nil {
			t.Fatalf("GetBySlug: %v", err)
		}
	}
	if f.country.bySlug != 1 {
		t.Fatalf("expected a single repository call, got %d", f.country.bySlug)
	}

	if _, err := f.svc.GetByID(ctx, f.france.ID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if f.country.byID != 1 {
		t.Fatalf("expected id lookup to use its own key, got %d calls", f.country.byID)
	}
}

func TestTransportFailureIsReturned(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("connection reset")
	f.country.err = boom

	got, err := f.svc.GetBySlug(context.Background(), "france")
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil record on failure, got %+v", got)
	}
}

func TestGetSheetBySlug(t *testing.T) {
	f := newFixture(t)

	sheet, err := f.svc.GetSheetBySlug(context.Background(), "france")
	if err != nil {
		t.Fatalf("GetSheetBySlug: %v", err)
	}
	if sheet == nil || sheet.Currency != "EUR" {
		t.Fatalf("unexpected sheet %+v", sheet)
	}

	missing, err := f.svc.GetSheetBySlug(context.Background(), "atlantis")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for missing sheet, got %v %v", missing, err)
	}
}

func TestGetMapDataZeroCities(t *testing.T) {
	f := newFixture(t)

	data, err := f.svc.GetMapData(context.Background(), f.france.ID)
	if err != nil {
		t.Fatalf("GetMapData: %v", err)
	}
	if data.Country == nil || data.Country.ID != f.france.ID {
		t.Fatalf("expected france in map data, got %+v", data.Country)
	}
	if data.Cities == nil || len(data.Cities) != 0 {
		t.Fatalf("expected empty non-nil city list, got %#v", data.Cities)
	}
}

func TestGetMapDataFiltersCitiesWithoutCoordinates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seed := []*countries.City{
		{CountryID: f.france.ID, Name: "Paris", Latitude: testsupport.Float(48.8566), Longitude: testsupport.Float(2.3522)},
		{CountryID: f.france.ID, Name: "Nowhere", Latitude: testsupport.Float(1)},
		{CountryID: f.france.ID, Name: "Lyon", Latitude: testsupport.Float(45.764), Longitude: testsupport.Float(4.8357)},
	}
	for _, city := range seed {
		if _, err := f.cities.Create(ctx, city); err != nil {
			t.Fatalf("seed city: %v", err)
		}
	}

	data, err := f.svc.GetMapData(ctx, f.france.ID)
	if err != nil {
		t.Fatalf("GetMapData: %v", err)
	}
	if len(data.Cities) != 2 {
		t.Fatalf("expected two mappable cities, got %d", len(data.Cities))
	}
	for _, city := range data.Cities {
		if !city.HasCoordinates() {
			t.Fatalf("unexpected city without coordinates: %+v", city)
		}
	}
}

func TestGetMapDataMissingCountry(t *testing.T) {
	f := newFixture(t)

	data, err := f.svc.GetMapData(context.Background(), uuid.New())
	if data != nil {
		t.Fatalf("expected nil map data, got %+v", data)
	}
	var notFound *countries.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err.Error() != "Country not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if f.cities.calls != 0 {
		t.Fatalf("expected city read to be skipped, got %d calls", f.cities.calls)
	}
}

func TestCachedResultsAreCopiedPerCaller(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.cities.Create(ctx, &countries.City{CountryID: f.france.ID, Name: "Paris", Latitude: testsupport.Float(48.8566), Longitude: testsupport.Float(2.3522)}); err != nil {
		t.Fatalf("seed city: %v", err)
	}

	first, err := f.svc.GetBySlug(ctx, "france")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	first.Name = "Mutated"

	list, err := f.svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List: %+v %v", list, err)
	}
	list[0].Slug = "mutated"
	list[0] = nil

	data, err := f.svc.GetMapData(ctx, f.france.ID)
	if err != nil || len(data.Cities) != 1 {
		t.Fatalf("GetMapData: %+v %v", data, err)
	}
	*data.Cities[0].Latitude = 0
	data.Cities = nil

	second, err := f.svc.GetBySlug(ctx, "france")
	if err != nil || second.Name != "France" {
		t.Fatalf("expected untouched cached country, got %+v %v", second, err)
	}
	list, err = f.svc.List(ctx)
	if err != nil || len(list) != 1 || list[0] == nil || list[0].Slug != "france" {
		t.Fatalf("expected untouched cached list, got %+v %v", list, err)
	}
	data, err = f.svc.GetMapData(ctx, f.france.ID)
	if err != nil || len(data.Cities) != 1 || *data.Cities[0].Latitude != 48.8566 {
		t.Fatalf("expected untouched cached map data, got %+v %v", data, err)
	}
	if f.country.bySlug != 1 || f.cities.calls != 1 {
		t.Fatalf("expected cached reads, got slug=%d cities=%d", f.country.bySlug, f.cities.calls)
	}
}
