package main

import (
	"context"
	"fmt"
	"log"
	"os"

	atlas "github.com/goliatone/go-atlas"
	"github.com/goliatone/go-atlas/internal/countrycontent"
	"github.com/google/uuid"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("atlas example: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg := atlas.DefaultConfig()
	cfg.Storage.Provider = "memory"

	module, err := atlas.New(cfg)
	if err != nil {
		return fmt.Errorf("initialise atlas module: %w", err)
	}
	defer module.Close()

	container := module.Container()
	lat, lng := 35.6762, 139.6503
	country, err := container.CountryRepository().Create(ctx, &atlas.Country{
		ID:      uuid.New(),
		Name:    "Japan",
		Slug:    "japan",
		Capital: "Tokyo",
	})
	if err != nil {
		return fmt.Errorf("seed country: %w", err)
	}
	if _, err := container.CityRepository().Create(ctx, &atlas.City{
		ID:        uuid.New(),
		CountryID: country.ID,
		Name:      "Tokyo",
		Latitude:  &lat,
		Longitude: &lng,
	}); err != nil {
		return fmt.Errorf("seed city: %w", err)
	}
	if _, err := module.Content().Upsert(ctx, countrycontent.UpsertContentRequest{
		CountryID: country.ID,
		Section:   countrycontent.SectionOverview,
		Content:   "# Japan\n\nAn island nation with **four** main islands.",
	}); err != nil {
		return fmt.Errorf("seed content: %w", err)
	}

	found, err := module.Countries().GetBySlug(ctx, "japan")
	if err != nil || found == nil {
		return fmt.Errorf("lookup country: %v", err)
	}
	mapData, err := module.Countries().GetMapData(ctx, found.ID)
	if err != nil {
		return fmt.Errorf("map data: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Country: %s (%d mappable cities)\n", mapData.Country.Name, len(mapData.Cities))

	section, err := module.Content().GetSection(ctx, found.ID, countrycontent.SectionOverview)
	if err != nil || section == nil {
		return fmt.Errorf("overview section: %v", err)
	}
	rendered, err := module.RenderMarkdown(section.Content, "country-overview")
	if err != nil {
		return fmt.Errorf("render overview: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Overview:\n%s\n", rendered.HTML)

	user := &atlas.User{ID: uuid.New()}
	store := module.NewTripsStore()
	store.SetUser(ctx, user)
	if trip := store.Create(ctx, atlas.CreateTripInput{DestinationName: "Tokyo", CountryID: &found.ID}); trip == nil {
		return fmt.Errorf("create trip failed")
	}
	fmt.Fprintf(os.Stdout, "Trips: %d\n", len(store.Snapshot().Trips))

	tracker := module.NewSubscriptionTracker()
	tracker.SetUser(ctx, user)
	if status := tracker.Snapshot().Status; status != nil {
		fmt.Fprintf(os.Stdout, "Subscribed: %t\n", status.Subscribed)
	}

	modal := module.NewPremiumModal()
	modal.Open("Country maps")
	fmt.Fprintf(os.Stdout, "Premium modal: %+v\n", modal.State())
	return nil
}
