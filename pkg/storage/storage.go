package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidName is returned for names that are not a single safe path element.
	ErrInvalidName = errors.New("invalid storage name")

	// ErrNotExist is returned when opening a name that is not stored.
	ErrNotExist = errors.New("stored file does not exist")
)

// Storage is implemented by every storage driver.
type Storage interface {
	// Write stores the content of r under name, replacing any existing
	// file, and returns the driver-specific location of the stored file.
	Write(ctx context.Context, name string, r io.Reader) (string, error)

	// Delete removes name. It reports whether anything was removed.
	Delete(ctx context.Context, name string) (bool, error)

	// Exists reports whether name is stored.
	Exists(ctx context.Context, name string) (bool, error)

	// Open returns the content stored under name.
	// Returns ErrNotExist if nothing is stored under name.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// List returns every stored name.
	List(ctx context.Context) ([]string, error)
}

// ValidateName checks that name is a single, non-hidden path element.
func ValidateName(name string) error {
	switch {
	case name == "",
		strings.HasPrefix(name, "."),
		strings.ContainsAny(name, `/\`),
		path.Base(name) != name,
		filepath.Base(name) != name:
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ContentType guesses the MIME type of a stored name from its extension.
func ContentType(name string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return "application/octet-stream"
}
