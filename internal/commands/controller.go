// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/okra-platform/effectschema/internal/build"
	"github.com/okra-platform/effectschema/internal/config"
	"github.com/okra-platform/effectschema/internal/schema"
)

// Flags holds command line overrides. Zero values leave the config untouched.
type Flags struct {
	LogLevel string
	Schema   string
	Output   string
	Target   string
	Disable  bool
	Workers  int
}

type Controller struct {
	Flags  *Flags
	Logger zerolog.Logger
	// Dir is the directory config lookup starts from; empty means the working directory
	Dir string
}

// loadConfig resolves the config file, .env, environment and flags, in
// increasing precedence
func (c *Controller) loadConfig() (*config.Config, string, error) {
	dir := c.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}

	cfg, root, err := config.Resolve(dir)
	if err != nil {
		return nil, "", err
	}

	if c.Flags != nil {
		if c.Flags.Schema != "" {
			cfg.Schema = c.Flags.Schema
		}
		if c.Flags.Output != "" {
			cfg.Output = c.Flags.Output
		}
		if c.Flags.Target != "" {
			cfg.Target = c.Flags.Target
		}
		if c.Flags.Disable {
			cfg.Disable = true
		}
		if c.Flags.Workers > 0 {
			cfg.Workers = c.Flags.Workers
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, root, nil
}

// generate parses the schema and runs one generation
func (c *Controller) generate(ctx context.Context, cfg *config.Config, root string) (*build.Result, error) {
	if cfg.Disable {
		c.Logger.Info().Msg("effect schema generation is disabled")
		return &build.Result{Skipped: true}, nil
	}

	schemaPath := cfg.SchemaPath(root)
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", schemaPath, err)
	}

	c.Logger.Debug().
		Str("path", schemaPath).
		Int("size", len(content)).
		Msg("read schema file")

	parsed, err := schema.ParseSchema(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", schemaPath, err)
	}

	c.Logger.Debug().
		Int("models", len(parsed.Models)).
		Int("types", len(parsed.TypeDefs)).
		Int("enums", len(parsed.Enums)).
		Msg("parsed schema")

	gen, err := build.NewGenerator(build.Options{
		Output:  cfg.OutputPath(root),
		Target:  cfg.Target,
		Workers: cfg.Workers,
	}, c.Logger)
	if err != nil {
		return nil, err
	}

	return gen.Run(ctx, parsed)
}
