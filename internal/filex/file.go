// Package filex reads and writes CLI files through an afero filesystem.
package filex

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// EnsureDir creates dir (and parents) on fs if missing and returns it.
func EnsureDir(fs afero.Fs, dir string) (string, error) {
	if err := fs.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// WriteInDir writes data to dir/name, creating dir first.
func WriteInDir(fs afero.Fs, dir, name string, data []byte) (string, error) {
	if _, err := EnsureDir(fs, dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := afero.WriteFile(fs, path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ReadText returns the contents of a text file.
func ReadText(fs afero.Fs, path string) (string, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}
