package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsStableAndNamespaced(t *testing.T) {
	first := CountryUUID("France")
	second := CountryUUID("  france ")
	if first != second {
		t.Fatalf("expected normalized slugs to share an id, got %s and %s", first, second)
	}
	if first == CountrySheetUUID("france") {
		t.Fatal("expected country and sheet ids to differ for the same slug")
	}
}

func TestCountryContentUUIDVariesBySection(t *testing.T) {
	country := CountryUUID("spain")
	visa := CountryContentUUID(country, "visa")
	culture := CountryContentUUID(country, "culture")
	if visa == culture {
		t.Fatal("expected distinct ids per section")
	}
	if visa != CountryContentUUID(country, "VISA") {
		t.Fatal("expected section casing to be ignored")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for blank key, got %s", got)
	}
}
