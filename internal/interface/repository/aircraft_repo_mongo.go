package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/errs"
	"hangar-service/internal/domain/repository"
)

const aircraftCollection = "aircraft"

// MongoAircraftRepository implements the AircraftRepository interface
type MongoAircraftRepository struct {
	collection *mongo.Collection
}

var _ repository.AircraftRepository = (*MongoAircraftRepository)(nil)

// NewMongoAircraftRepository creates a new MongoDB aircraft repository
func NewMongoAircraftRepository(db *mongo.Database) *MongoAircraftRepository {
	return &MongoAircraftRepository{
		collection: db.Collection(aircraftCollection),
	}
}

// EnsureIndexes creates the unique tail number index.
func (r *MongoAircraftRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniqueIndex("tailNumber"),
		{Keys: bson.D{{Key: "airlineId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create aircraft indexes: %w", err)
	}
	return nil
}

func (r *MongoAircraftRepository) FindByTail(ctx context.Context, tail string) (*entity.Aircraft, error) {
	return findOne[entity.Aircraft](ctx, r.collection, bson.M{"tailNumber": tail})
}

func (r *MongoAircraftRepository) FindByID(ctx context.Context, id string) (*entity.Aircraft, error) {
	return findOne[entity.Aircraft](ctx, r.collection, bson.M{"_id": id})
}

func (r *MongoAircraftRepository) Create(ctx context.Context, aircraft *entity.Aircraft) error {
	if aircraft.ID == "" {
		aircraft.ID = newID()
	}
	// $push needs an array, never null.
	if aircraft.Photos == nil {
		aircraft.Photos = []entity.Photo{}
	}
	_, err := r.collection.InsertOne(ctx, aircraft)
	return mapWriteError(err)
}

func (r *MongoAircraftRepository) FillMissing(ctx context.Context, id string, fields map[string]interface{}) error {
	return fillMissing(ctx, r.collection, id, fields)
}

// AddPhotos pushes each photo only if no photo with its sourceId is attached yet, then stamps photoLastUpdated.
func (r *MongoAircraftRepository) AddPhotos(ctx context.Context, id string, photos []entity.Photo, updatedAt time.Time) (int, error) {
	added := 0
	for _, photo := range photos {
		result, err := r.collection.UpdateOne(ctx,
			bson.M{"_id": id, "photos.sourceId": bson.M{"$ne": photo.SourceID}},
			bson.M{"$push": bson.M{"photos": photo}},
		)
		if err != nil {
			return added, fmt.Errorf("push photo %s: %w", photo.SourceID, err)
		}
		added += int(result.ModifiedCount)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"photoLastUpdated": updatedAt, "updatedAt": updatedAt}},
	)
	if err != nil {
		return added, fmt.Errorf("stamp photo refresh: %w", err)
	}
	if result.MatchedCount == 0 {
		return added, errs.ErrNotFound
	}
	return added, nil
}
