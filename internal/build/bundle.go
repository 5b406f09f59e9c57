package build

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
)

//go:embed static/typescript/* static/javascript/*
var embeddedBundle embed.FS

// SupportBundle returns the shared support files for a printer language.
// The files define the schemas for builtins without a native Schema
// counterpart and are copied verbatim into the output's common directory.
func SupportBundle(language string) (fs.FS, error) {
	if _, err := fs.Stat(embeddedBundle, path.Join("static", language)); err != nil {
		return nil, fmt.Errorf("%w: no support bundle for %s", ErrUnknownTarget, language)
	}
	return fs.Sub(embeddedBundle, path.Join("static", language))
}

// copyBundle writes every bundle file below dir and returns the bytes written
func copyBundle(files FileSystem, bundle fs.FS, dir string) (int64, error) {
	var written int64
	err := fs.WalkDir(bundle, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(name))
		if d.IsDir() {
			if err := files.MkdirAll(target, 0755); err != nil {
				return &WriteError{Path: target, Op: "mkdir", Cause: err}
			}
			return nil
		}

		data, err := fs.ReadFile(bundle, name)
		if err != nil {
			return fmt.Errorf("read bundle file %s: %w", name, err)
		}
		if err := files.WriteFile(target, data, 0644); err != nil {
			return &WriteError{Path: target, Op: "write", Cause: err}
		}
		written += int64(len(data))
		return nil
	})
	return written, err
}
