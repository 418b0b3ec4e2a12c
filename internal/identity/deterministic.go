package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Keys are namespaced per entity so the same natural key never collides across tables.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

func CountryUUID(slug string) uuid.UUID {
	return UUID("go-atlas:country:" + strings.ToLower(strings.TrimSpace(slug)))
}

func CityUUID(countryID uuid.UUID, name string) uuid.UUID {
	return UUID("go-atlas:city:" + countryID.String() + ":" + strings.ToLower(strings.TrimSpace(name)))
}

func CountrySheetUUID(slug string) uuid.UUID {
	return UUID("go-atlas:country_sheet:" + strings.ToLower(strings.TrimSpace(slug)))
}

// CountryContentUUID keys one content row per (country, section) pair.
func CountryContentUUID(countryID uuid.UUID, section string) uuid.UUID {
	return UUID("go-atlas:country_content:" + countryID.String() + ":" + strings.ToLower(strings.TrimSpace(section)))
}

func InstitutionUUID(domain string) uuid.UUID {
	return UUID("go-atlas:institution:" + strings.ToLower(strings.TrimSpace(domain)))
}
