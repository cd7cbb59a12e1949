package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edupath/edupath-backend/internal/logger"
)

// Mongo is the persistence-service-backed Store. One instance per resource
// collection; the generic shape keeps the two resources on a single code
// path, parameterized by collection name and document factory.
type Mongo[T Document] struct {
	coll     *mongo.Collection
	resource string
	factory  func() T
	unique   []string
	now      func() time.Time
}

// NewMongo creates a store over db.collection. resource names the entity in
// error messages ("course", "blogpost"); unique lists additional fields
// carrying a unique index beyond the identifier (e.g. "slug").
func NewMongo[T Document](db *mongo.Database, collection, resource string, factory func() T, unique ...string) *Mongo[T] {
	return &Mongo[T]{
		coll:     db.Collection(collection),
		resource: resource,
		factory:  factory,
		unique:   unique,
		now:      time.Now,
	}
}

// EnsureIndexes creates the unique indexes backing the identifier and slug
// invariants. Safe to call on every startup.
func (r *Mongo[T]) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}}
	for _, field := range r.unique {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create %s indexes: %w", r.resource, err)
	}
	return nil
}

func (r *Mongo[T]) Create(ctx context.Context, doc T) (T, error) {
	doc.ApplyDefaults()
	doc.SetDocID(uuid.NewString())
	doc.Touch(r.now(), true)

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		var zero T
		if mongo.IsDuplicateKeyError(err) {
			return zero, conflict(r.resource, err)
		}
		return zero, fmt.Errorf("insert %s: %w", r.resource, err)
	}

	logger.WithResource("mongo-repo", r.resource).Debugf("created %s", doc.DocID())
	return doc, nil
}

func (r *Mongo[T]) All(ctx context.Context) ([]T, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find %ss: %w", r.resource, err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %ss: %w", r.resource, err)
	}
	return docs, nil
}

func (r *Mongo[T]) Get(ctx context.Context, id string) (T, error) {
	return r.GetBy(ctx, "id", id)
}

func (r *Mongo[T]) GetBy(ctx context.Context, field, value string) (T, error) {
	doc := r.factory()
	err := r.coll.FindOne(ctx, bson.M{field: value}).Decode(doc)
	if err == mongo.ErrNoDocuments {
		var zero T
		return zero, notFound(r.resource, value)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("find %s: %w", r.resource, err)
	}
	return doc, nil
}

func (r *Mongo[T]) Update(ctx context.Context, id string, fields map[string]any) (T, error) {
	set := mutableFields(fields)
	set["updatedAt"] = r.now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	doc := r.factory()
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(doc)
	if err == mongo.ErrNoDocuments {
		var zero T
		return zero, notFound(r.resource, id)
	}
	if err != nil {
		var zero T
		if mongo.IsDuplicateKeyError(err) {
			return zero, conflict(r.resource, err)
		}
		return zero, fmt.Errorf("update %s: %w", r.resource, err)
	}

	logger.WithResource("mongo-repo", r.resource).Debugf("updated %s", id)
	return doc, nil
}

func (r *Mongo[T]) Delete(ctx context.Context, id string) (T, error) {
	doc := r.factory()
	err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(doc)
	if err == mongo.ErrNoDocuments {
		var zero T
		return zero, notFound(r.resource, id)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("delete %s: %w", r.resource, err)
	}

	logger.WithResource("mongo-repo", r.resource).Debugf("deleted %s", id)
	return doc, nil
}

// EnsureSeeded inserts docs when the collection is empty, so a fresh
// deployment serves the same catalogue the site shipped with.
func (r *Mongo[T]) EnsureSeeded(ctx context.Context, docs []T) error {
	if len(docs) == 0 {
		return nil
	}

	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count %ss: %w", r.resource, err)
	}
	if count > 0 {
		return nil
	}

	now := r.now()
	payload := make([]any, 0, len(docs))
	for _, doc := range docs {
		doc.ApplyDefaults()
		if doc.DocID() == "" {
			doc.SetDocID(uuid.NewString())
		}
		doc.Touch(now, true)
		payload = append(payload, doc)
	}

	if _, err := r.coll.InsertMany(ctx, payload); err != nil {
		return fmt.Errorf("seed %ss: %w", r.resource, err)
	}
	logger.WithResource("mongo-repo", r.resource).Infof("seeded %d %ss", len(docs), r.resource)
	return nil
}
