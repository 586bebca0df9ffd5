// Package store persists whole JSON documents on disk.
//
// Each Document maps one file to one Go value. Reads decode the full file and
// writes replace it. A missing or unparsable file reads as the empty value so a
// damaged data directory never takes the site down.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Document is a JSON file holding a single value of type T
type Document[T any] struct {
	path      string
	normalize func(*T)
	logger    *zap.Logger

	// serialises Update and Save within this process
	mu sync.Mutex
}

// NewDocument creates a Document backed by path. normalize, when non-nil, runs
// after every decode so callers never see nil collections.
func NewDocument[T any](path string, normalize func(*T), logger *zap.Logger) *Document[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Document[T]{
		path:      path,
		normalize: normalize,
		logger:    logger.With(zap.String("document", filepath.Base(path))),
	}
}

// Path returns the file backing the document
func (d *Document[T]) Path() string {
	return d.path
}

// Load reads and decodes the file. A missing or corrupt file yields the empty
// value and no error; any other read failure is returned.
func (d *Document[T]) Load() (T, error) {
	var v T

	data, err := os.ReadFile(d.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		d.logger.Warn("document missing, using empty value")
		d.finish(&v)
		return v, nil
	case err != nil:
		return v, fmt.Errorf("failed to read %s: %w", d.path, err)
	}

	if err := json.Unmarshal(data, &v); err != nil {
		d.logger.Warn("document corrupt, using empty value", zap.Error(err))
		var empty T
		d.finish(&empty)
		return empty, nil
	}

	d.finish(&v)
	return v, nil
}

// Save replaces the file with the encoded value
func (d *Document[T]) Save(v T) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.write(v)
}

// Update loads the document, applies fn and saves the result. Nothing is
// written when fn returns an error.
func (d *Document[T]) Update(fn func(*T) error) (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, err := d.Load()
	if err != nil {
		return v, err
	}
	if err := fn(&v); err != nil {
		return v, err
	}
	d.finish(&v)
	if err := d.write(v); err != nil {
		return v, err
	}
	return v, nil
}

// EnsureSeed writes seed to the file if it does not exist yet
func (d *Document[T]) EnsureSeed(seed []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := os.Stat(d.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", d.path, err)
	}

	var v T
	if err := json.Unmarshal(seed, &v); err != nil {
		return fmt.Errorf("failed to parse seed for %s: %w", d.path, err)
	}
	d.finish(&v)

	d.logger.Info("seeding document")
	return d.write(v)
}

func (d *Document[T]) finish(v *T) {
	if d.normalize != nil {
		d.normalize(v)
	}
}

// write encodes v and swaps it into place with a rename, so readers see either
// the old file or the new one.
func (d *Document[T]) write(v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", d.path, err)
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", d.path, err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", d.path, err)
	}
	return nil
}
