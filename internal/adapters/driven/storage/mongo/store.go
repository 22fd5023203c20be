// Package mongo persists documents in a MongoDB collection.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/custodia-labs/fireload-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// disconnectTimeout bounds the shutdown handshake.
const disconnectTimeout = 5 * time.Second

// Config selects the target MongoDB database.
type Config struct {
	// URI is the connection string (mongodb:// or mongodb+srv://).
	URI string

	// Database is the database name. Required.
	Database string
}

// Store uploads documents to MongoDB. The identifier becomes the
// document's _id, so re-uploads address the same document.
type Store struct {
	client *mongo.Client
	dbName string
}

// NewStore connects to MongoDB and verifies the connection with a ping.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb uri is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongodb database name is required")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		disconnect(client)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Store{client: client, dbName: cfg.Database}, nil
}

// Upload writes one document keyed by _id. A replace upsert swaps the
// whole document; with merge true a $set upsert touches only the
// incoming top-level fields.
func (s *Store) Upload(ctx context.Context, collection, documentID string, fields map[string]any, merge bool) error {
	coll := s.client.Database(s.dbName).Collection(collection)
	filter := bson.M{"_id": documentID}

	if merge {
		update := bson.M{"$set": bson.M(fields)}
		_, err := coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("merge document %q: %w", documentID, err)
		}
		return nil
	}

	doc := make(bson.M, len(fields)+1)
	for k, v := range fields {
		doc[k] = v
	}
	doc["_id"] = documentID

	_, err := coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace document %q: %w", documentID, err)
	}
	return nil
}

// Close disconnects from the server.
func (s *Store) Close() error {
	return disconnect(s.client)
}

func disconnect(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}
