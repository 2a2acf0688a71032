// Package filex has small filesystem helpers for files the CLI writes.
package filex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates dir (and parents) if needed and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// SafeName reduces name to a single path element usable as a file name.
func SafeName(name string) string {
	name = filepath.Base(filepath.Clean("/" + strings.ReplaceAll(name, "\\", "/")))
	if name == "/" || name == "." || name == "" {
		return "unnamed"
	}
	return name
}

// WriteFile runs write against a temp file in dir and renames it to
// dir/SafeName(name) on success. A failed write leaves nothing behind.
func WriteFile(dir, name string, write func(io.Writer) error) (string, error) {
	final := filepath.Join(dir, SafeName(name))

	tmp, err := os.CreateTemp(dir, ".part-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		return "", fmt.Errorf("rename to %s: %w", final, err)
	}
	return final, nil
}
