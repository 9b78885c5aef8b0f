package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/repository"
)

const airlinesCollection = "airlines"

// MongoAirlineRepository implements the AirlineRepository interface
type MongoAirlineRepository struct {
	collection *mongo.Collection
}

var _ repository.AirlineRepository = (*MongoAirlineRepository)(nil)

// NewMongoAirlineRepository creates a new MongoDB airline repository
func NewMongoAirlineRepository(db *mongo.Database) *MongoAirlineRepository {
	return &MongoAirlineRepository{
		collection: db.Collection(airlinesCollection),
	}
}

// EnsureIndexes creates the unique IATA index and the partial unique ICAO index.
func (r *MongoAirlineRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniqueIndex("iataCode"),
		partialUniqueIndex("icaoCode"),
	})
	if err != nil {
		return fmt.Errorf("create airline indexes: %w", err)
	}
	return nil
}

// FindByIATA finds an airline by IATA code
func (r *MongoAirlineRepository) FindByIATA(ctx context.Context, code string) (*entity.Airline, error) {
	return findOne[entity.Airline](ctx, r.collection, bson.M{"iataCode": code})
}

// FindByICAO finds an airline by ICAO code
func (r *MongoAirlineRepository) FindByICAO(ctx context.Context, code string) (*entity.Airline, error) {
	return findOne[entity.Airline](ctx, r.collection, bson.M{"icaoCode": code})
}

// FindByID finds an airline by ID
func (r *MongoAirlineRepository) FindByID(ctx context.Context, id string) (*entity.Airline, error) {
	return findOne[entity.Airline](ctx, r.collection, bson.M{"_id": id})
}

// Create inserts a new airline
func (r *MongoAirlineRepository) Create(ctx context.Context, airline *entity.Airline) error {
	if airline.ID == "" {
		airline.ID = newID()
	}
	_, err := r.collection.InsertOne(ctx, airline)
	return mapWriteError(err)
}

// FillMissing back-fills empty fields of an airline
func (r *MongoAirlineRepository) FillMissing(ctx context.Context, id string, fields map[string]interface{}) error {
	return fillMissing(ctx, r.collection, id, fields)
}

// ReplaceSyntheticName swaps a placeholder name for the real one, only while the placeholder is still stored.
func (r *MongoAirlineRepository) ReplaceSyntheticName(ctx context.Context, id, placeholder, name string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "name": placeholder},
		bson.M{"$set": bson.M{
			"name":       name,
			"codeSource": entity.CodeSourceMapped,
			"updatedAt":  time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("replace synthetic airline name: %w", err)
	}
	return nil
}
