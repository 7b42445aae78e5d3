package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/neurospin/distmeta/pkg/descriptor"
	"github.com/neurospin/distmeta/pkg/observability"
	"github.com/neurospin/distmeta/pkg/specifier"
)

// Default MongoDB names.
const (
	DefaultDatabase   = "distmeta"
	DefaultCollection = "descriptors"
)

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string // e.g. "mongodb://localhost:27017"
	Database   string // defaults to DefaultDatabase
	Collection string // defaults to DefaultCollection
}

// MongoStore is a MongoDB-backed descriptor store.
// Records are keyed by normalized distribution name (_id).
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get retrieves a descriptor record by distribution name.
func (s *MongoStore) Get(ctx context.Context, name string) (*Record, error) {
	key := specifier.Normalize(name)

	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		observability.Store().OnGet(ctx, key, false)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	observability.Store().OnGet(ctx, key, true)
	return &rec, nil
}

// Put stores a descriptor, replacing any existing record for the same name.
func (s *MongoStore) Put(ctx context.Context, d *descriptor.Descriptor) (*Record, error) {
	key := specifier.Normalize(d.Name)
	rec := &Record{
		Name:       key,
		Revision:   uuid.NewString(),
		UpdatedAt:  time.Now().UTC(),
		Descriptor: d.Clone(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, rec, opts); err != nil {
		return nil, err
	}

	observability.Store().OnPut(ctx, key)
	return rec, nil
}

// List returns the stored distribution names in sorted order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.M{"_id": 1})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		names = append(names, doc.Name)
	}
	return names, cursor.Err()
}

// Delete removes a record.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	key := specifier.Normalize(name)

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	observability.Store().OnDelete(ctx, key)
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
