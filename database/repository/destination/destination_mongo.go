package destinationRepo

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

// MongoDestinationRepo implements DestinationRepository using MongoDB.
type MongoDestinationRepo struct {
	coll *mongo.Collection
}

// NewMongoDestinationRepo creates a new DestinationRepository backed by MongoDB.
func NewMongoDestinationRepo() DestinationRepository {
	repo := &MongoDestinationRepo{coll: database.Collection("destinations")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDestinationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: "text"}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a destination by its unique ID.
func (r *MongoDestinationRepo) GetByID(id string) (*models.Destination, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var dest models.Destination
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&dest); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch destination with id %s: %w", id, err)
	}
	return &dest, nil
}

// GetAll retrieves all destinations, optionally filtered by category.
func (r *MongoDestinationRepo) GetAll(category string) ([]models.Destination, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	defer cursor.Close(ctx)

	var dests []models.Destination
	if err := cursor.All(ctx, &dests); err != nil {
		return nil, fmt.Errorf("failed to decode destinations: %w", err)
	}
	return dests, nil
}

// Search retrieves destinations whose name matches the query string.
func (r *MongoDestinationRepo) Search(query string) ([]models.Destination, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"name": bson.M{"$regex": query, "$options": "i"}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search destinations: %w", err)
	}
	defer cursor.Close(ctx)

	var dests []models.Destination
	if err := cursor.All(ctx, &dests); err != nil {
		return nil, fmt.Errorf("failed to decode destinations: %w", err)
	}
	return dests, nil
}

// Create inserts a new destination record.
func (r *MongoDestinationRepo) Create(dest *models.Destination) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	dest.CreatedAt = time.Now()
	dest.UpdatedAt = dest.CreatedAt
	if _, err := r.coll.InsertOne(ctx, dest); err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	return nil
}

// Update modifies an existing destination record.
func (r *MongoDestinationRepo) Update(dest *models.Destination) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	dest.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": dest.ID}, dest)
	if err != nil {
		return fmt.Errorf("failed to update destination %s: %w", dest.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("destination %s not found", dest.ID)
	}
	return nil
}

// Delete removes a destination record by its ID.
func (r *MongoDestinationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete destination %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("destination %s not found", id)
	}
	return nil
}
