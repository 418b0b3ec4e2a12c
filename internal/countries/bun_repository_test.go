package countries_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"

	"github.com/goliatone/go-atlas/internal/countries"
	"github.com/goliatone/go-atlas/pkg/testsupport"
)

func TestBunRepositoriesWithCache(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunSQLite(t,
		(*countries.Country)(nil),
		(*countries.City)(nil),
		(*countries.CountrySheet)(nil),
	)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	serializer := repocache.NewDefaultKeySerializer()

	countryRepo := countries.NewBunCountryRepositoryWithCache(db, cacheService, serializer)
	cityRepo := countries.NewBunCityRepositoryWithCache(db, cacheService, serializer)
	sheetRepo := countries.NewBunSheetRepositoryWithCache(db, cacheService, serializer)

	japan, err := countryRepo.Create(ctx, &countries.Country{
		ID:      uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Name:    "Japan",
		Slug:    "japan",
		ISOCode: "JP",
	})
	if err != nil {
		t.Fatalf("create country: %v", err)
	}
	for _, city := range []*countries.City{
		{ID: uuid.New(), CountryID: japan.ID, Name: "Tokyo", Latitude: testsupport.Float(35.68), Longitude: testsupport.Float(139.69)},
		{ID: uuid.New(), CountryID: japan.ID, Name: "Unmapped"},
	} {
		if _, err := cityRepo.Create(ctx, city); err != nil {
			t.Fatalf("create city: %v", err)
		}
	}
	if _, err := sheetRepo.Create(ctx, &countries.CountrySheet{
		ID:    uuid.New(),
		Slug:  "japan",
		Title: "Japan",
		Data:  map[string]any{"plug": "A/B"},
	}); err != nil {
		t.Fatalf("create sheet: %v", err)
	}

	svc := countries.NewService(countryRepo, cityRepo, sheetRepo)

	bySlug, err := svc.GetBySlug(ctx, "japan")
	if err != nil || bySlug == nil || bySlug.ISOCode != "JP" {
		t.Fatalf("GetBySlug: %+v %v", bySlug, err)
	}

	missing, err := svc.GetBySlug(ctx, "narnia")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for missing slug, got %+v %v", missing, err)
	}

	data, err := svc.GetMapData(ctx, japan.ID)
	if err != nil {
		t.Fatalf("GetMapData: %v", err)
	}
	if len(data.Cities) != 1 || data.Cities[0].Name != "Tokyo" {
		t.Fatalf("expected only Tokyo, got %+v", data.Cities)
	}

	_, err = svc.GetMapData(ctx, uuid.New())
	var notFound *countries.NotFoundError
	if !errors.As(err, &notFound) || err.Error() != "Country not found" {
		t.Fatalf("expected Country not found, got %v", err)
	}

	sheet, err := svc.GetSheetBySlug(ctx, "japan")
	if err != nil || sheet == nil || sheet.Data["plug"] != "A/B" {
		t.Fatalf("GetSheetBySlug: %+v %v", sheet, err)
	}
}

func TestBunRepositoriesListBeyondDefaultPage(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunSQLite(t,
		(*countries.Country)(nil),
		(*countries.City)(nil),
		(*countries.CountrySheet)(nil),
	)

	cacheService, err := repocache.NewCacheService(repocache.DefaultConfig())
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	serializer := repocache.NewDefaultKeySerializer()
	countryRepo := countries.NewBunCountryRepositoryWithCache(db, cacheService, serializer)
	cityRepo := countries.NewBunCityRepositoryWithCache(db, cacheService, serializer)
	svc := countries.NewService(countryRepo, cityRepo, countries.NewBunSheetRepository(db))

	var created []*countries.Country
	for i := 0; i < 30; i++ {
		country, err := countryRepo.Create(ctx, &countries.Country{
			ID:   uuid.New(),
			Name: fmt.Sprintf("Country %02d", i),
			Slug: fmt.Sprintf("country-%02d", i),
		})
		if err != nil {
			t.Fatalf("create country: %v", err)
		}
		created = append(created, country)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 30 {
		t.Fatalf("expected 30 countries, got %d", len(all))
	}

	first, second := created[0], created[1]
	for i := 0; i < 40; i++ {
		if _, err := cityRepo.Create(ctx, &countries.City{
			ID:        uuid.New(),
			CountryID: first.ID,
			Name:      fmt.Sprintf("City %02d", i),
			Latitude:  testsupport.Float(float64(i)),
			Longitude: testsupport.Float(float64(i)),
		}); err != nil {
			t.Fatalf("create city: %v", err)
		}
	}
	if _, err := cityRepo.Create(ctx, &countries.City{
		ID:        uuid.New(),
		CountryID: second.ID,
		Name:      "Lone City",
		Latitude:  testsupport.Float(1),
		Longitude: testsupport.Float(1),
	}); err != nil {
		t.Fatalf("create city: %v", err)
	}

	data, err := svc.GetMapData(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetMapData: %v", err)
	}
	if len(data.Cities) != 40 {
		t.Fatalf("expected 40 mappable cities, got %d", len(data.Cities))
	}

	other, err := svc.GetMapData(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetMapData: %v", err)
	}
	if len(other.Cities) != 1 || other.Cities[0].Name != "Lone City" {
		t.Fatalf("expected cities of the second country only, got %d", len(other.Cities))
	}
}
