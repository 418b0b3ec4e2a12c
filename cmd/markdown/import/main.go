package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/goliatone/go-atlas/cmd/markdown/internal/bootstrap"
	markdowncmd "github.com/goliatone/go-atlas/internal/commands/markdown"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("markdown import: %v", err)
	}
}

func runImport(args []string) error {
	flags := flag.NewFlagSet("markdown-import", flag.ExitOnError)
	contentDir := flags.String("content-dir", "content", "Path to the markdown content root")
	pattern := flags.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := flags.String("directory", ".", "Directory to import, relative to the content root")
	recursive := flags.Bool("recursive", true, "Descend into subdirectories")
	envFiles := flags.String("env", "", "Comma separated dotenv files loaded before ATLAS_ variables")
	migrate := flags.Bool("migrate", false, "Apply schema migrations before importing")
	dryRun := flags.Bool("dry-run", false, "Validate documents without persisting content")
	continueOnError := flags.Bool("continue-on-error", false, "Keep importing after a document fails")

	if err := flags.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  *recursive,
		EnvFiles:   bootstrap.SplitList(*envFiles),
		Migrate:    *migrate,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Importer == nil {
		return fmt.Errorf("markdown importer not configured; ensure Features.Markdown is enabled")
	}
	defer module.Close()

	handler := markdowncmd.NewImportDirectoryHandler(module.Importer, module.Logger, markdowncmd.FeatureGates{},
		contentRoot(*contentDir))
	cmd := markdowncmd.ImportDirectoryCommand{
		Directory:       *directory,
		Pattern:         *pattern,
		Recursive:       *recursive,
		DryRun:          *dryRun,
		ContinueOnError: *continueOnError,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "markdown import command executed successfully")
	return nil
}

func contentRoot(root string) func(string) fs.FS {
	return func(dir string) fs.FS {
		return os.DirFS(filepath.Join(root, dir))
	}
}
