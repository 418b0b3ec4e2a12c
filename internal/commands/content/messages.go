package contentcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-atlas/internal/countrycontent"
)

const upsertSectionMessageType = "atlas.content.upsert_section"

// UpsertSectionCommand replaces one section body of a country.
type UpsertSectionCommand struct {
	CountryID uuid.UUID `json:"country_id"`
	Section   string    `json:"section"`
	Content   string    `json:"content"`
}

// Type implements command.Message.
func (UpsertSectionCommand) Type() string { return upsertSectionMessageType }

// Validate checks the country, section name and body.
func (cmd UpsertSectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.CountryID, validation.By(func(value any) error {
			if id, _ := value.(uuid.UUID); id == uuid.Nil {
				return validation.NewError("atlas.content.upsert_section.country_required", "country id is required")
			}
			return nil
		})),
		validation.Field(&cmd.Section, validation.By(func(value any) error {
			if _, err := countrycontent.ParseSection(value.(string)); err != nil {
				return validation.NewError("atlas.content.upsert_section.section_invalid", "section must be one of "+sectionList())
			}
			return nil
		})),
		validation.Field(&cmd.Content, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("atlas.content.upsert_section.content_required", "content is required")
			}
			return nil
		})),
	)
}

func sectionList() string {
	sections := countrycontent.Sections()
	names := make([]string, len(sections))
	for i, section := range sections {
		names[i] = string(section)
	}
	return strings.Join(names, ", ")
}
