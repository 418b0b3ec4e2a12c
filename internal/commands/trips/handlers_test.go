package tripscmd_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	tripscmd "github.com/goliatone/go-atlas/internal/commands/trips"
	"github.com/goliatone/go-atlas/internal/trips"
	"github.com/goliatone/go-atlas/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestCreateTripCommandValidation(t *testing.T) {
	notes := ""
	cases := map[string]tripscmd.CreateTripCommand{
		"missing user":        {DestinationName: "Lisbon"},
		"blank destination":   {UserID: uuid.New(), DestinationName: "   "},
		"empty notes pointer": {UserID: uuid.New(), DestinationName: "Lisbon", Notes: &notes},
	}
	for name, msg := range cases {
		if err := msg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}

	ok := tripscmd.CreateTripCommand{UserID: uuid.New(), DestinationName: "Lisbon"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
}

func TestCreateTripHandlerPersistsTrip(t *testing.T) {
	ctx := context.Background()
	svc := trips.NewService(trips.NewMemoryRepository())
	reg := &recordingRegistry{}

	handler, err := tripscmd.Register(reg, svc, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(reg.handlers) != 1 {
		t.Fatalf("expected handler registration, got %d", len(reg.handlers))
	}

	userID := uuid.New()
	if err := handler.Execute(ctx, tripscmd.CreateTripCommand{UserID: userID, DestinationName: " Kyoto "}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	list, err := svc.List(ctx, &interfaces.User{ID: userID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].DestinationName != "Kyoto" || list[0].UserID != userID {
		t.Fatalf("unexpected trips: %+v", list)
	}
}

func TestCreateTripHandlerRejectsInvalidMessage(t *testing.T) {
	svc := trips.NewService(trips.NewMemoryRepository())
	handler := tripscmd.NewCreateTripHandler(svc, nil, func(*trips.UserTrip) {
		t.Fatal("callback should not run for invalid message")
	})

	err := handler.Execute(context.Background(), tripscmd.CreateTripCommand{DestinationName: "Rome"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
