package expiry

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoAccountStore implements AccountStore over the users collection.
type MongoAccountStore struct {
	collection *mongo.Collection
}

// NewMongoAccountStore creates a store over the given users collection.
// Panics on a nil collection to fail fast during wiring.
func NewMongoAccountStore(collection *mongo.Collection) *MongoAccountStore {
	if collection == nil {
		panic("expiry: collection cannot be nil")
	}
	return &MongoAccountStore{collection: collection}
}

func (s *MongoAccountStore) FindWarningCandidates(ctx context.Context, cutoff time.Time, limit, offset int) ([]Account, error) {
	filter := bson.D{
		{Key: "plan", Value: PlanFree},
		{Key: "planStartedAt", Value: bson.D{{Key: "$lte", Value: cutoff}}},
		{Key: "freeExpiryWarnedAt", Value: nil},
	}
	return s.findPage(ctx, filter, limit, offset)
}

func (s *MongoAccountStore) FindExpiryCandidates(ctx context.Context, cutoff time.Time, limit, offset int) ([]Account, error) {
	filter := bson.D{
		{Key: "plan", Value: PlanFree},
		{Key: "planStartedAt", Value: bson.D{{Key: "$lte", Value: cutoff}}},
		{Key: "subscriptionStatus", Value: bson.D{{Key: "$nin", Value: bson.A{StatusFreeExpired, StatusArchived}}}},
	}
	return s.findPage(ctx, filter, limit, offset)
}

func (s *MongoAccountStore) findPage(ctx context.Context, filter bson.D, limit, offset int) ([]Account, error) {
	cursor, err := s.collection.Find(ctx, filter,
		options.Find().SetLimit(int64(limit)).SetSkip(int64(offset)))
	if err != nil {
		return nil, errors.Join(ErrStoreQuery, err)
	}
	defer cursor.Close(ctx)

	var accounts []Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, errors.Join(ErrStoreQuery, err)
	}
	return accounts, nil
}

func (s *MongoAccountStore) MarkWarned(ctx context.Context, accountID string, warnedAt time.Time) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: accountID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "freeExpiryWarnedAt", Value: warnedAt}}}},
	)
	if err != nil {
		return errors.Join(ErrStoreUpdate, err)
	}
	if res.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *MongoAccountStore) MarkExpired(ctx context.Context, accountID string, deleteMediaAt time.Time) error {
	res, err := s.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: accountID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "subscriptionStatus", Value: StatusFreeExpired},
			{Key: "deleteMedia", Value: deleteMediaAt},
		}}},
	)
	if err != nil {
		return errors.Join(ErrStoreUpdate, err)
	}
	if res.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}
