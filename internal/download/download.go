// Package download stores files returned by the analysis service.
package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Dir saves files into a local directory.
type Dir struct {
	Path string
}

func NewDir(path string) *Dir {
	if path = strings.TrimSpace(path); path == "" {
		path = "."
	}
	return &Dir{Path: path}
}

// Save writes data to name inside the directory, replacing an existing file.
// The file only appears once it is completely written and synced.
func (d *Dir) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", errors.New("file name is required")
	}

	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	target := filepath.Join(d.Path, name)
	if err := atomic.WriteFile(target, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("saving %s: %w", name, err)
	}

	return target, nil
}
