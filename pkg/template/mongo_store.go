package template

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoStore resolves templates from a mongo collection keyed by logical
// name and language code.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a resolver over the given template collection.
// Panics on a nil collection to fail fast during wiring.
func NewMongoStore(collection *mongo.Collection) *MongoStore {
	if collection == nil {
		panic("template: collection cannot be nil")
	}
	return &MongoStore{collection: collection}
}

// Resolve returns the first template matching name and language, or nil
// when no document matches.
func (s *MongoStore) Resolve(ctx context.Context, name, lang string) (*Template, error) {
	filter := bson.D{
		{Key: "name", Value: name},
		{Key: "lang", Value: NormalizeLang(lang)},
	}

	var tpl Template
	if err := s.collection.FindOne(ctx, filter).Decode(&tpl); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Join(ErrLookupFailed, err)
	}
	return &tpl, nil
}
