// Package store persists distribution descriptors behind a small
// storage interface, with an in-memory implementation for tests and
// single-process use and a MongoDB implementation for deployments.
//
// Stored descriptors are treated as immutable: Put records a complete
// replacement with a fresh revision identifier rather than mutating the
// existing record.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/neurospin/distmeta/pkg/descriptor"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no descriptor exists under the name.
	ErrNotFound = errors.New("descriptor not found")
)

// Record wraps a stored descriptor with storage metadata.
type Record struct {
	// Name is the normalized distribution name the record is keyed by.
	Name string `bson:"_id" json:"name"`

	// Revision is a fresh UUID assigned on every Put.
	Revision string `bson:"revision" json:"revision"`

	// UpdatedAt is the time of the last Put.
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	Descriptor *descriptor.Descriptor `bson:"descriptor" json:"descriptor"`
}

// Store is the interface for descriptor storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a descriptor record by distribution name.
	// Returns ErrNotFound if no record exists.
	Get(ctx context.Context, name string) (*Record, error)

	// Put stores a descriptor, replacing any existing record for the
	// same name, and returns the new record with its revision.
	Put(ctx context.Context, d *descriptor.Descriptor) (*Record, error)

	// List returns the stored distribution names in sorted order.
	List(ctx context.Context) ([]string, error)

	// Delete removes a record. Returns ErrNotFound if absent.
	Delete(ctx context.Context, name string) error

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}
