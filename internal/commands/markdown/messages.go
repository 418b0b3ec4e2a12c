package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importDirectoryMessageType = "atlas.markdown.import_directory"

// ImportDirectoryCommand imports every Markdown file under Directory into
// country content sections.
type ImportDirectoryCommand struct {
	Directory string `json:"directory"`
	// Pattern overrides the file glob, defaults to "*.md".
	Pattern         string `json:"pattern,omitempty"`
	Recursive       bool   `json:"recursive,omitempty"`
	DryRun          bool   `json:"dry_run,omitempty"`
	ContinueOnError bool   `json:"continue_on_error,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures a directory is present.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("atlas.markdown.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
