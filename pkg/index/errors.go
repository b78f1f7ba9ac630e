package index

import (
	"errors"
	"fmt"
)

// ErrNoDocuments signals that a build found nothing to index.
var ErrNoDocuments = errors.New("no source documents found")

// BuildError wraps a failure while building a collection.
type BuildError struct {
	Collection string
	Err        error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build index %q: %v", e.Collection, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// LoadError signals that no persisted index exists for the collection.
// Callers typically fall back to Build on this failure.
type LoadError struct {
	Collection string
	Err        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load index %q: %v", e.Collection, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
