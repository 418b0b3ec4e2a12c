package contentcmd_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	contentcmd "github.com/goliatone/go-atlas/internal/commands/content"
	"github.com/goliatone/go-atlas/internal/countrycontent"
	goerrors "github.com/goliatone/go-errors"
)

func TestUpsertSectionCommandValidation(t *testing.T) {
	countryID := uuid.New()
	cases := map[string]contentcmd.UpsertSectionCommand{
		"missing country": {Section: "visa", Content: "x"},
		"unknown section": {CountryID: countryID, Section: "nightlife", Content: "x"},
		"blank content":   {CountryID: countryID, Section: "visa", Content: " "},
	}
	for name, msg := range cases {
		if err := msg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestUpsertSectionHandlerWritesSection(t *testing.T) {
	ctx := context.Background()
	svc := countrycontent.NewService(countrycontent.NewMemoryRepository())
	handler, err := contentcmd.Register(nil, svc, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	countryID := uuid.New()
	if err := handler.Execute(ctx, contentcmd.UpsertSectionCommand{CountryID: countryID, Section: "Medical", Content: "Carry insurance."}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	got, err := svc.GetSection(ctx, countryID, countrycontent.SectionMedical)
	if err != nil || got == nil || got.Content != "Carry insurance." {
		t.Fatalf("unexpected section: %+v %v", got, err)
	}

	err = handler.Execute(ctx, contentcmd.UpsertSectionCommand{CountryID: countryID, Section: "bogus", Content: "x"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
