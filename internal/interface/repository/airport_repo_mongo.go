package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/repository"
)

const airportsCollection = "airports"

// MongoAirportRepository implements the AirportRepository interface
type MongoAirportRepository struct {
	collection *mongo.Collection
}

var _ repository.AirportRepository = (*MongoAirportRepository)(nil)

// NewMongoAirportRepository creates a new MongoDB airport repository
func NewMongoAirportRepository(db *mongo.Database) *MongoAirportRepository {
	return &MongoAirportRepository{
		collection: db.Collection(airportsCollection),
	}
}

// EnsureIndexes creates the unique IATA index and the partial unique ICAO index.
func (r *MongoAirportRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniqueIndex("iataCode"),
		partialUniqueIndex("icaoCode"),
	})
	if err != nil {
		return fmt.Errorf("create airport indexes: %w", err)
	}
	return nil
}

func (r *MongoAirportRepository) FindByIATA(ctx context.Context, code string) (*entity.Airport, error) {
	return findOne[entity.Airport](ctx, r.collection, bson.M{"iataCode": code})
}

func (r *MongoAirportRepository) FindByICAO(ctx context.Context, code string) (*entity.Airport, error) {
	return findOne[entity.Airport](ctx, r.collection, bson.M{"icaoCode": code})
}

func (r *MongoAirportRepository) FindByID(ctx context.Context, id string) (*entity.Airport, error) {
	return findOne[entity.Airport](ctx, r.collection, bson.M{"_id": id})
}

func (r *MongoAirportRepository) Create(ctx context.Context, airport *entity.Airport) error {
	if airport.ID == "" {
		airport.ID = newID()
	}
	_, err := r.collection.InsertOne(ctx, airport)
	return mapWriteError(err)
}

func (r *MongoAirportRepository) FillMissing(ctx context.Context, id string, fields map[string]interface{}) error {
	return fillMissing(ctx, r.collection, id, fields)
}
