package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-atlas/pkg/interfaces"
)

// ParseFrontMatter splits source into its YAML metadata block and Markdown body.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta interfaces.FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	meta.Country = strings.TrimSpace(meta.Country)
	meta.Section = strings.ToLower(strings.TrimSpace(meta.Section))
	meta.Title = strings.TrimSpace(meta.Title)
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, body, nil
}

// frontMatterPayload flattens front matter for schema validation.
func frontMatterPayload(meta interfaces.FrontMatter) map[string]any {
	payload := make(map[string]any, len(meta.Custom)+4)
	for key, value := range meta.Custom {
		payload[key] = value
	}
	payload["country"] = meta.Country
	payload["section"] = meta.Section
	payload["draft"] = meta.Draft
	if meta.Title != "" {
		payload["title"] = meta.Title
	}
	return payload
}
