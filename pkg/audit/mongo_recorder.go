package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoRecorder appends audit entries to a mongo collection. Entries are
// write-once; nothing in this package reads them back.
type MongoRecorder struct {
	collection *mongo.Collection
}

// NewMongoRecorder creates a recorder over the given logs collection.
// Panics on a nil collection to fail fast during wiring.
func NewMongoRecorder(collection *mongo.Collection) *MongoRecorder {
	if collection == nil {
		panic("audit: collection cannot be nil")
	}
	return &MongoRecorder{collection: collection}
}

// Record assigns the entry an identifier and timestamp if missing, then
// inserts it.
func (r *MongoRecorder) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}
