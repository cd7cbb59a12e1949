package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory Store with the same semantics as the Mongo one.
// It backs tests and local development without a running database.
type Memory[T Document] struct {
	mu       sync.RWMutex
	docs     []T
	resource string
	factory  func() T
	unique   []string
	now      func() time.Time
}

func NewMemory[T Document](resource string, factory func() T, unique ...string) *Memory[T] {
	return &Memory[T]{
		resource: resource,
		factory:  factory,
		unique:   unique,
		now:      time.Now,
	}
}

func (r *Memory[T]) Create(_ context.Context, doc T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc.ApplyDefaults()
	doc.SetDocID(uuid.NewString())
	doc.Touch(r.now(), true)

	if err := r.checkUnique(doc, ""); err != nil {
		var zero T
		return zero, err
	}

	stored, err := r.clone(doc)
	if err != nil {
		var zero T
		return zero, err
	}
	r.docs = append(r.docs, stored)
	return doc, nil
}

func (r *Memory[T]) All(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.docs))
	for _, doc := range r.docs {
		c, err := r.clone(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Memory[T]) Get(ctx context.Context, id string) (T, error) {
	return r.GetBy(ctx, "id", id)
}

func (r *Memory[T]) GetBy(_ context.Context, field, value string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexBy(field, value)
	if idx < 0 {
		var zero T
		return zero, notFound(r.resource, value)
	}
	return r.clone(r.docs[idx])
}

func (r *Memory[T]) Update(_ context.Context, id string, fields map[string]any) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexBy("id", id)
	if idx < 0 {
		var zero T
		return zero, notFound(r.resource, id)
	}

	merged, err := r.merge(r.docs[idx], mutableFields(fields))
	if err != nil {
		var zero T
		return zero, err
	}
	merged.Touch(r.now(), false)

	if err := r.checkUnique(merged, id); err != nil {
		var zero T
		return zero, err
	}

	r.docs[idx] = merged
	return r.clone(merged)
}

func (r *Memory[T]) Delete(_ context.Context, id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexBy("id", id)
	if idx < 0 {
		var zero T
		return zero, notFound(r.resource, id)
	}

	doc := r.docs[idx]
	r.docs = append(r.docs[:idx], r.docs[idx+1:]...)
	return doc, nil
}

func (r *Memory[T]) EnsureSeeded(_ context.Context, docs []T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.docs) > 0 {
		return nil
	}

	now := r.now()
	for _, doc := range docs {
		doc.ApplyDefaults()
		if doc.DocID() == "" {
			doc.SetDocID(uuid.NewString())
		}
		doc.Touch(now, true)
		c, err := r.clone(doc)
		if err != nil {
			return err
		}
		r.docs = append(r.docs, c)
	}
	return nil
}

// indexBy finds a document by comparing the JSON representation of the given
// field, matching how the Mongo store filters on persisted field names.
func (r *Memory[T]) indexBy(field, value string) int {
	for i, doc := range r.docs {
		m, err := r.asMap(doc)
		if err != nil {
			continue
		}
		if s, ok := m[field].(string); ok && s == value {
			return i
		}
	}
	return -1
}

// checkUnique enforces the unique-field invariants. exclude skips the record
// being updated.
func (r *Memory[T]) checkUnique(doc T, exclude string) error {
	m, err := r.asMap(doc)
	if err != nil {
		return err
	}

	for _, field := range append([]string{"id"}, r.unique...) {
		want, ok := m[field].(string)
		if !ok || want == "" {
			continue
		}
		for _, other := range r.docs {
			if other.DocID() == exclude || other.DocID() == doc.DocID() {
				continue
			}
			om, err := r.asMap(other)
			if err != nil {
				return err
			}
			if s, ok := om[field].(string); ok && s == want {
				return conflict(r.resource, fmt.Errorf("duplicate %s %q", field, want))
			}
		}
	}
	return nil
}

func (r *Memory[T]) merge(doc T, fields map[string]any) (T, error) {
	m, err := r.asMap(doc)
	if err != nil {
		var zero T
		return zero, err
	}
	for k, v := range fields {
		m[k] = v
	}

	payload, err := json.Marshal(m)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("merge %s: %w", r.resource, err)
	}
	out := r.factory()
	if err := json.Unmarshal(payload, out); err != nil {
		return out, fmt.Errorf("merge %s: %w", r.resource, err)
	}
	return out, nil
}

func (r *Memory[T]) asMap(doc T) (map[string]any, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", r.resource, err)
	}
	var m map[string]any
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.resource, err)
	}
	return m, nil
}

// clone deep-copies a document so callers never share slices or pointers
// with the store.
func (r *Memory[T]) clone(doc T) (T, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("clone %s: %w", r.resource, err)
	}
	out := r.factory()
	if err := json.Unmarshal(payload, out); err != nil {
		return out, fmt.Errorf("clone %s: %w", r.resource, err)
	}
	return out, nil
}
