package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/errs"
	"hangar-service/internal/domain/repository"
)

const flightsCollection = "flights"

// readProjection keeps the raw provider payload out of every read path.
var readProjection = bson.M{"rawSourceData": 0}

// MongoFlightRepository implements the FlightRepository interface
type MongoFlightRepository struct {
	collection *mongo.Collection
}

var _ repository.FlightRepository = (*MongoFlightRepository)(nil)

// NewMongoFlightRepository creates a new MongoDB flight repository
func NewMongoFlightRepository(db *mongo.Database) *MongoFlightRepository {
	return &MongoFlightRepository{
		collection: db.Collection(flightsCollection),
	}
}

// EnsureIndexes creates the per-user, per-day uniqueness index and the listing index.
func (r *MongoFlightRepository) EnsureIndexes(ctx context.Context) error {
	dedupIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "airlineId", Value: 1},
			{Key: "flightNumber", Value: 1},
			{Key: "dateKey", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("flight_dedup"),
	}

	// Index on userId and date for listing a hangar newest first
	listIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "date", Value: -1},
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{dedupIndex, listIndex}); err != nil {
		return fmt.Errorf("create flight indexes: %w", err)
	}
	return nil
}

// Create inserts a flight
func (r *MongoFlightRepository) Create(ctx context.Context, flight *entity.Flight) error {
	if flight.ID == "" {
		flight.ID = newID()
	}
	if flight.DateKey == "" {
		flight.DateKey = entity.DateKeyFor(flight.Date)
	}
	_, err := r.collection.InsertOne(ctx, flight)
	return mapWriteError(err)
}

// FindDuplicate finds the user's flight with the same airline and number departing in [from, to)
func (r *MongoFlightRepository) FindDuplicate(ctx context.Context, userID, airlineID, flightNumber string, from, to time.Time) (*entity.Flight, error) {
	filter := bson.M{
		"userId":       userID,
		"airlineId":    airlineID,
		"flightNumber": flightNumber,
		"date":         bson.M{"$gte": from, "$lt": to},
	}
	return findOne[entity.Flight](ctx, r.collection, filter, options.FindOne().SetProjection(readProjection))
}

// FindByID finds one of the user's flights
func (r *MongoFlightRepository) FindByID(ctx context.Context, userID, id string) (*entity.Flight, error) {
	return findOne[entity.Flight](ctx, r.collection,
		bson.M{"_id": id, "userId": userID},
		options.FindOne().SetProjection(readProjection),
	)
}

// ListByUser lists the user's flights, newest first
func (r *MongoFlightRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Flight, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetProjection(readProjection)
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find flights: %w", err)
	}
	defer cursor.Close(ctx)

	flights := []*entity.Flight{}
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, fmt.Errorf("decode flights: %w", err)
	}
	return flights, nil
}

// Update sets notes and seat on one of the user's flights and returns the updated flight
func (r *MongoFlightRepository) Update(ctx context.Context, userID, id string, update entity.FlightUpdate) (*entity.Flight, error) {
	set := bson.M{"updatedAt": time.Now()}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}
	if update.Seat != nil {
		set["seat"] = *update.Seat
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(readProjection)

	var flight entity.Flight
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": userID}, bson.M{"$set": set}, opts).Decode(&flight)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update flight: %w", err)
	}
	return &flight, nil
}

// Delete removes one of the user's flights
func (r *MongoFlightRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return fmt.Errorf("delete flight: %w", err)
	}
	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}
