package commands

import (
	"context"
	"fmt"
	"time"
)

// Generate writes Effect Schema code for the configured schema once
func (c *Controller) Generate(ctx context.Context) error {
	cfg, root, err := c.loadConfig()
	if err != nil {
		return err
	}

	result, err := c.generate(ctx, cfg, root)
	if err != nil {
		return err
	}
	if !result.Skipped {
		fmt.Printf("Generated %d files in %s (%s)\n", result.Files, result.Output, result.Duration.Round(time.Millisecond))
	}
	return nil
}
