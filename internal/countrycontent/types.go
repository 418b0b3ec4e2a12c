// Package countrycontent serves the sectioned Markdown bodies attached to a
// country.
//
// Unlike the other read paths, ListByCountry returns transport and query
// failures to the caller with no fallback value; callers must handle the
// error explicitly.
package countrycontent

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Section is one of the six fixed content categories.
type Section string

const (
	SectionOverview       Section = "overview"
	SectionCulture        Section = "culture"
	SectionLifeActivities Section = "life_activities"
	SectionScholarships   Section = "scholarships"
	SectionVisa           Section = "visa"
	SectionMedical        Section = "medical"
)

var sections = []Section{
	SectionOverview,
	SectionCulture,
	SectionLifeActivities,
	SectionScholarships,
	SectionVisa,
	SectionMedical,
}

// Sections returns the allowed sections in declaration order.
func Sections() []Section {
	return slices.Clone(sections)
}

// ParseSection validates a raw section name.
func ParseSection(raw string) (Section, error) {
	candidate := Section(strings.ToLower(strings.TrimSpace(raw)))
	if slices.Contains(sections, candidate) {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSection, raw)
}

func (s Section) Valid() bool {
	return slices.Contains(sections, s)
}

// CountryContent is a single Markdown section for a country.
type CountryContent struct {
	bun.BaseModel `bun:"table:country_content,alias:cc"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	CountryID uuid.UUID `bun:"country_id,notnull,type:uuid" json:"country_id"`
	Section   Section   `bun:"section,notnull" json:"section"`
	Content   string    `bun:"content,notnull" json:"content"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// UpsertContentRequest creates or replaces one section body.
type UpsertContentRequest struct {
	CountryID uuid.UUID
	Section   Section
	Content   string
}

// NotFoundError is returned by repositories when a section row is missing.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// sortBySection orders rows by section name ascending.
func sortBySection(records []*CountryContent) {
	slices.SortStableFunc(records, func(a, b *CountryContent) int {
		return strings.Compare(string(a.Section), string(b.Section))
	})
}
