package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the document at path and translates it into the
	// format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}

// Dispatcher selects a Loader by file extension.
type Dispatcher struct {
	loaders map[string]Loader
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{loaders: make(map[string]Loader)}
}

// Register binds loader to each extension (with the leading dot, e.g. ".yaml").
func (d *Dispatcher) Register(loader Loader, extensions ...string) *Dispatcher {
	for _, ext := range extensions {
		d.loaders[strings.ToLower(ext)] = loader
	}
	return d
}

// Extensions returns the registered extensions, sorted.
func (d *Dispatcher) Extensions() []string {
	exts := make([]string, 0, len(d.loaders))
	for ext := range d.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load implements Loader by delegating to the loader registered for the
// file's extension.
func (d *Dispatcher) Load(ctx context.Context, path string) (*Model, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := d.loaders[ext]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported configuration format %q (supported: %s)", path, ext, strings.Join(d.Extensions(), ", "))
	}
	return loader.Load(ctx, path)
}
