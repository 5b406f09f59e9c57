package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/okra-platform/effectschema/internal/watch"
)

// Watch generates once, then regenerates whenever the schema file changes.
// Failed generations are logged and the previous output is kept.
func (c *Controller) Watch(ctx context.Context) error {
	cfg, root, err := c.loadConfig()
	if err != nil {
		return err
	}

	if _, err := c.generate(ctx, cfg, root); err != nil {
		c.Logger.Error().Err(err).Msg("initial generation failed")
	}

	schemaPath := cfg.SchemaPath(root)
	onChange := func(path string) {
		c.Logger.Info().Str("path", path).Msg("schema changed, regenerating")
		if _, err := c.generate(ctx, cfg, root); err != nil {
			c.Logger.Error().Err(err).Msg("generation failed")
		}
	}

	fw, err := watch.NewFileWatcher(
		[]string{filepath.Base(schemaPath)},
		[]string{".*", "node_modules", filepath.Base(cfg.OutputPath(root))},
		onChange,
		c.Logger,
	)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.AddDirectory(filepath.Dir(schemaPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(schemaPath), err)
	}

	c.Logger.Info().Str("schema", schemaPath).Msg("watching for changes")

	if err := fw.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
