package tripRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"voyago/database"
	"voyago/models"
)

// MongoTripRepo implements TripRepository using MongoDB.
type MongoTripRepo struct {
	coll *mongo.Collection
}

// NewMongoTripRepo creates a new TripRepository backed by MongoDB.
func NewMongoTripRepo() TripRepository {
	repo := &MongoTripRepo{coll: database.Collection("trips")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoTripRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoTripRepo) GetByID(id string) (*models.Trip, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var trip models.Trip
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&trip); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch trip with id %s: %w", id, err)
	}
	return &trip, nil
}

func (r *MongoTripRepo) GetByUser(userID string) ([]models.Trip, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list trips for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var trips []models.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}
	return trips, nil
}

func (r *MongoTripRepo) Create(trip *models.Trip) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	trip.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, trip); err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *MongoTripRepo) Update(trip *models.Trip) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": trip.ID}, trip)
	if err != nil {
		return fmt.Errorf("failed to update trip %s: %w", trip.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("trip %s not found", trip.ID)
	}
	return nil
}

func (r *MongoTripRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete trip %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("trip %s not found", id)
	}
	return nil
}
