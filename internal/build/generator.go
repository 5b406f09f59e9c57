// Package build runs a complete generation: it renders every declaration of a
// schema and replaces the output directory in a single step.
package build

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/okra-platform/effectschema/internal/codegen"
	"github.com/okra-platform/effectschema/internal/codegen/ast"
	"github.com/okra-platform/effectschema/internal/codegen/effect"
	"github.com/okra-platform/effectschema/internal/schema"
)

const (
	// CommonDir holds the support bundle inside the output directory
	CommonDir = "common"
	// ModelsDir holds one generated file per declaration
	ModelsDir = "models"
)

// Options configures a Generator
type Options struct {
	// Output is the directory that receives common/ and models/
	Output string
	// Target selects the printer, see codegen.DefaultRegistry
	Target string
	// Workers bounds concurrent file writes; 0 means unbounded
	Workers int
	// Disable turns Run into a no-op
	Disable bool
}

// Result describes a finished run
type Result struct {
	Output   string
	Files    int
	Bytes    int64
	Duration time.Duration
	Skipped  bool
}

// Generator writes the generated code for a schema
type Generator struct {
	opts    Options
	printer codegen.Printer
	files   FileSystem
	base    zerolog.Logger
	logger  zerolog.Logger
}

// NewGenerator creates a generator for the given options. The target must be
// registered in codegen.DefaultRegistry.
func NewGenerator(opts Options, logger zerolog.Logger) (*Generator, error) {
	if opts.Target == "" {
		opts.Target = "typescript"
	}

	printer, err := codegen.DefaultRegistry.Get(opts.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, opts.Target)
	}

	return &Generator{
		opts:    opts,
		printer: printer,
		files:   &osFileSystem{},
		base:    logger,
		logger:  logger.With().Str("component", "generator").Logger(),
	}, nil
}

// WithFileSystem replaces the filesystem used for output
func (g *Generator) WithFileSystem(files FileSystem) *Generator {
	g.files = files
	return g
}

// CheckOutput rejects output paths that cannot be renamed: the current
// directory, a parent reference and a filesystem root.
func CheckOutput(path string) error {
	clean := filepath.Clean(path)
	base := filepath.Base(clean)
	if base == "." || base == ".." || filepath.Dir(clean) == clean {
		return fmt.Errorf("%w: %q must name a directory of its own", ErrInvalidOutput, path)
	}
	return nil
}

// task is one file to render and write
type task struct {
	name     string
	assemble func() *ast.File
}

// Run renders every declaration of s into a fresh temporary directory and
// swaps it into place. Existing output is left untouched when any step fails.
func (g *Generator) Run(ctx context.Context, s *schema.Schema) (*Result, error) {
	if g.opts.Disable {
		g.logger.Info().Msg("generation disabled, skipping")
		return &Result{Output: g.opts.Output, Skipped: true}, nil
	}
	if s == nil {
		return nil, ErrNoSchema
	}

	if err := CheckOutput(g.opts.Output); err != nil {
		return nil, err
	}

	start := time.Now()
	output := filepath.Clean(g.opts.Output)
	parent := filepath.Dir(output)

	if err := g.files.MkdirAll(parent, 0755); err != nil {
		return nil, &WriteError{Path: parent, Op: "mkdir", Cause: err}
	}

	// Staging next to the output keeps the final rename on one filesystem
	tmp, err := g.files.MkdirTemp(parent, "."+filepath.Base(output)+"-*")
	if err != nil {
		return nil, &WriteError{Path: parent, Op: "mkdir", Cause: err}
	}
	defer func() {
		if err := g.files.RemoveAll(tmp); err != nil {
			g.logger.Warn().Err(err).Str("path", tmp).Msg("failed to remove temporary directory")
		}
	}()

	bundle, err := SupportBundle(g.printer.Language())
	if err != nil {
		return nil, err
	}
	bundleBytes, err := copyBundle(g.files, bundle, filepath.Join(tmp, CommonDir))
	if err != nil {
		return nil, fmt.Errorf("copy support bundle: %w", err)
	}

	modelsDir := filepath.Join(tmp, ModelsDir)
	if err := g.files.MkdirAll(modelsDir, 0755); err != nil {
		return nil, &WriteError{Path: modelsDir, Op: "mkdir", Cause: err}
	}

	files, written, err := g.writeAll(ctx, s, modelsDir)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.swap(tmp, output); err != nil {
		return nil, err
	}

	result := &Result{
		Output:   output,
		Files:    files,
		Bytes:    written + bundleBytes,
		Duration: time.Since(start),
	}

	g.logger.Info().
		Str("output", output).
		Str("target", g.printer.Language()).
		Int("files", result.Files).
		Int64("bytes", result.Bytes).
		Dur("elapsed", result.Duration).
		Msg("generated schema")

	return result, nil
}

// writeAll renders and writes one file per declaration in parallel
func (g *Generator) writeAll(ctx context.Context, s *schema.Schema, dir string) (int, int64, error) {
	translator := effect.NewTranslator(s, g.base)

	var tasks []task
	for _, obj := range s.Objects() {
		obj := obj
		tasks = append(tasks, task{
			name:     obj.Name,
			assemble: func() *ast.File { return translator.AssembleFile(obj) },
		})
	}
	for _, enum := range s.Enums {
		enum := enum
		tasks = append(tasks, task{
			name:     enum.Name,
			assemble: func() *ast.File { return translator.AssembleEnumFile(enum) },
		})
	}

	var (
		mu      sync.Mutex
		files   int
		written int64
	)

	eg, ctx := errgroup.WithContext(ctx)
	if g.opts.Workers > 0 {
		eg.SetLimit(g.opts.Workers)
	}

	for _, t := range tasks {
		t := t
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			n, err := g.writeFile(t, dir)
			if err != nil {
				return err
			}

			mu.Lock()
			files++
			written += int64(n)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return 0, 0, err
	}
	return files, written, nil
}

func (g *Generator) writeFile(t task, dir string) (int, error) {
	code, err := g.printer.Print(t.assemble())
	if err != nil {
		return 0, fmt.Errorf("print %s: %w", t.name, err)
	}

	path := filepath.Join(dir, t.name+g.printer.FileExtension())
	if err := g.files.WriteFile(path, code, 0644); err != nil {
		return 0, &WriteError{Path: path, Op: "write", Cause: err}
	}

	g.logger.Debug().Str("path", path).Int("bytes", len(code)).Msg("wrote file")
	return len(code), nil
}

// swap moves the staged directory into place. A previous output is moved
// aside first and restored if the staged directory cannot be renamed.
func (g *Generator) swap(tmp, output string) error {
	previous := ""
	if _, err := g.files.Stat(output); err == nil {
		previous = tmp + ".previous"
		if err := g.files.Rename(output, previous); err != nil {
			return &WriteError{Path: output, Op: "rename", Cause: err}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &WriteError{Path: output, Op: "stat", Cause: err}
	}

	if err := g.files.Rename(tmp, output); err != nil {
		if previous != "" {
			if restoreErr := g.files.Rename(previous, output); restoreErr != nil {
				g.logger.Error().
					Err(restoreErr).
					Str("previous", previous).
					Msg("failed to restore previous output")
			}
		}
		return &WriteError{Path: output, Op: "rename", Cause: err}
	}

	if previous != "" {
		if err := g.files.RemoveAll(previous); err != nil {
			g.logger.Warn().Err(err).Str("path", previous).Msg("failed to remove previous output")
		}
	}
	return nil
}
