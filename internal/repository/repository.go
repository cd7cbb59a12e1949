// Package repository is the data-access layer between the API controllers
// and the persistence service. One generic store implementation covers both
// persisted resources; a Mongo-backed and an in-memory variant exist.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/containerd/errdefs"
)

// Document is implemented by persisted resource types. The identifier is
// application-generated and immutable once created; it is distinct from the
// storage-native document id.
type Document interface {
	DocID() string
	SetDocID(id string)
	Touch(now time.Time, created bool)
	ApplyDefaults()
}

// Store exposes the five CRUD operations shared by both resources, plus the
// field lookup used for public slug addressing.
type Store[T Document] interface {
	// Create assigns a fresh identifier, stamps timestamps and persists the
	// record. Returns the stored record.
	Create(ctx context.Context, doc T) (T, error)
	// All returns every record, order unspecified, no pagination.
	All(ctx context.Context) ([]T, error)
	// Get returns the record with the given identifier.
	Get(ctx context.Context, id string) (T, error)
	// GetBy returns the record whose persisted field equals value.
	GetBy(ctx context.Context, field, value string) (T, error)
	// Update merges the provided fields into the existing record and returns
	// the updated record. Fields not present stay unchanged.
	Update(ctx context.Context, id string, fields map[string]any) (T, error)
	// Delete removes the record and returns it.
	Delete(ctx context.Context, id string) (T, error)
}

// Seeder is implemented by stores that can load initial data into an empty
// collection.
type Seeder[T Document] interface {
	EnsureSeeded(ctx context.Context, docs []T) error
}

// IsNotFound reports whether err signals a missing identifier.
func IsNotFound(err error) bool { return errdefs.IsNotFound(err) }

// IsConflict reports whether err signals a uniqueness violation.
func IsConflict(err error) bool { return errdefs.IsConflict(err) }

func notFound(resource, id string) error {
	return fmt.Errorf("%s %q: %w", resource, id, errdefs.ErrNotFound)
}

func conflict(resource string, err error) error {
	return fmt.Errorf("%s uniqueness violated: %v: %w", resource, err, errdefs.ErrConflict)
}

// mutableFields strips identifier and timestamp keys from a partial-update
// payload so they cannot be overwritten through the API.
func mutableFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		switch k {
		case "id", "_id", "createdAt", "updatedAt":
			continue
		}
		out[k] = v
	}
	return out
}
