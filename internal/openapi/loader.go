package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoadFile reads a document from disk.
func LoadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("openapi forms: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi forms: read %s: %w", path, err)
	}
	return data, nil
}

// LoadFS reads a document from an fs.FS, typically an embedded bundle.
func LoadFS(ctx context.Context, fsys fs.FS, name string) ([]byte, error) {
	if fsys == nil {
		return nil, errors.New("openapi forms: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("openapi forms: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("openapi forms: read %s: %w", name, err)
	}
	return data, nil
}
