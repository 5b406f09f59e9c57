package commands

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/okra-platform/effectschema/internal/codegen"
	"github.com/okra-platform/effectschema/internal/config"
)

//go:embed templates/*
var templatesFS embed.FS

// starterSchema is written when the chosen schema file does not exist yet
const starterSchema = "templates/schema.gql"

type InitOptions struct {
	Schema string
	Output string
	Target string
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

type InitCommand struct {
	dir         string
	filesystem  FileSystem
	templatesFS fs.FS
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand(dir string) *InitCommand {
	return &InitCommand{
		dir:         dir,
		filesystem:  &osFileSystem{},
		templatesFS: templatesFS,
	}
}

func (c *Controller) Init(ctx context.Context) error {
	dir := c.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}

	cmd := NewInitCommand(dir)
	return cmd.Run(ctx)
}

func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) error {
	configPath := filepath.Join(ic.dir, config.FileNames[0])
	if _, err := ic.filesystem.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}

	var options *InitOptions
	var err error

	// For testing: use provided options instead of prompting
	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return fmt.Errorf("failed to get init options: %w", err)
		}
	}

	cfg := &config.Config{
		Schema: options.Schema,
		Output: options.Output,
		Target: options.Target,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	if err := ic.filesystem.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	created, err := ic.ensureSchema(cfg.SchemaPath(ic.dir))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	fmt.Printf("✅ Created %s\n", configPath)
	if created {
		fmt.Printf("✅ Created starter schema %s\n", cfg.SchemaPath(ic.dir))
	}
	return nil
}

// ensureSchema writes the starter schema unless the file already exists
func (ic *InitCommand) ensureSchema(path string) (bool, error) {
	if _, err := ic.filesystem.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	data, err := fs.ReadFile(ic.templatesFS, starterSchema)
	if err != nil {
		return false, err
	}

	if err := ic.filesystem.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}
	if err := ic.filesystem.WriteFile(path, data, 0644); err != nil {
		return false, err
	}
	return true, nil
}

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	options := &InitOptions{
		Schema: config.DefaultSchema,
		Output: config.DefaultOutput,
		Target: config.DefaultTarget,
	}

	form := ic.createInitForm(options)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		// Normal execution
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func (ic *InitCommand) createInitForm(options *InitOptions) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Schema file").
				Description("Path of the schema to generate from").
				Value(&options.Schema).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("schema path cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Title("Output directory").
				Description("Generated code is written to common/ and models/ below it").
				Value(&options.Output).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("output directory cannot be empty")
					}
					if info, err := ic.filesystem.Stat(filepath.Join(ic.dir, s)); err == nil && !info.IsDir() {
						return fmt.Errorf("%s exists and is not a directory", s)
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Target").
				Description("Language of the generated files").
				Options(
					huh.NewOption("TypeScript", "typescript"),
					huh.NewOption("JavaScript", "javascript"),
				).
				Value(&options.Target).
				Validate(func(s string) error {
					if !codegen.DefaultRegistry.Has(s) {
						return fmt.Errorf("unsupported target: %s", s)
					}
					return nil
				}),
		),
	)
}
