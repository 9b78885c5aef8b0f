package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hangar-service/internal/domain/errs"
)

func newID() string {
	return primitive.NewObjectID().Hex()
}

// mapWriteError turns a unique index violation into errs.ErrAlreadyExists.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", errs.ErrAlreadyExists, err)
	}
	return err
}

// findOne decodes the first match of filter, returning (nil, nil) when nothing matches.
func findOne[T any](ctx context.Context, collection *mongo.Collection, filter interface{}, opts ...*options.FindOneOptions) (*T, error) {
	var out T
	err := collection.FindOne(ctx, filter, opts...).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// fillMissing sets each field with its own conditional update that only matches while the stored
// value is missing, null or empty, so concurrent writers never overwrite present data.
func fillMissing(ctx context.Context, collection *mongo.Collection, id string, fields map[string]interface{}) error {
	now := time.Now()
	for field, value := range fields {
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		if value == nil {
			continue
		}

		filter := bson.M{
			"_id": id,
			"$or": bson.A{
				bson.M{field: bson.M{"$exists": false}},
				bson.M{field: nil},
				bson.M{field: ""},
			},
		}
		update := bson.M{"$set": bson.M{field: value, "updatedAt": now}}

		if _, err := collection.UpdateOne(ctx, filter, update); err != nil {
			return fmt.Errorf("fill %s: %w", field, mapWriteError(err))
		}
	}
	return nil
}

// partialUniqueIndex is a unique index that ignores documents where field is absent or empty.
func partialUniqueIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{{Key: field, Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{field: bson.M{"$gt": ""}}),
	}
}

func uniqueIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}
