package trips_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-atlas/internal/trips"
	"github.com/goliatone/go-atlas/pkg/testsupport"
)

func TestBunRepositoryListsEveryTripNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunSQLite(t, (*trips.UserTrip)(nil))
	repo := trips.NewBunRepository(db)

	owner := uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		stamp := base.Add(time.Duration(i) * time.Hour)
		if _, err := repo.Create(ctx, &trips.UserTrip{
			ID:              uuid.New(),
			UserID:          owner,
			DestinationName: fmt.Sprintf("Stop %02d", i),
			CreatedAt:       stamp,
			UpdatedAt:       stamp,
		}); err != nil {
			t.Fatalf("create trip: %v", err)
		}
	}
	if _, err := repo.Create(ctx, &trips.UserTrip{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		DestinationName: "Someone else",
		CreatedAt:       base,
		UpdatedAt:       base,
	}); err != nil {
		t.Fatalf("create trip: %v", err)
	}

	list, err := repo.ListByUser(ctx, owner)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 30 {
		t.Fatalf("expected 30 trips, got %d", len(list))
	}
	if list[0].DestinationName != "Stop 29" || list[29].DestinationName != "Stop 00" {
		t.Fatalf("expected newest first, got %s ... %s", list[0].DestinationName, list[29].DestinationName)
	}
}
