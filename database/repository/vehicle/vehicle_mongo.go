package vehicleRepo

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

// MongoVehicleRepo implements VehicleRepository using MongoDB.
type MongoVehicleRepo struct {
	coll *mongo.Collection
}

// NewMongoVehicleRepo creates a new VehicleRepository backed by MongoDB.
func NewMongoVehicleRepo() VehicleRepository {
	repo := &MongoVehicleRepo{coll: database.Collection("vehicles")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoVehicleRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "driver_id", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "capacity", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoVehicleRepo) GetByID(id string) (*models.Vehicle, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var v models.Vehicle
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&v); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch vehicle with id %s: %w", id, err)
	}
	return &v, nil
}

func (r *MongoVehicleRepo) GetByDriver(driverID string) ([]models.Vehicle, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"driver_id": driverID})
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles for driver %s: %w", driverID, err)
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles: %w", err)
	}
	return vehicles, nil
}

// FindAvailable returns active vehicles matching the availability query.
// Booking-overlap exclusion happens here via a lookup against the bookings
// collection for the requested window.
func (r *MongoVehicleRepo) FindAvailable(q AvailabilityQuery) ([]models.Vehicle, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"active": true}
	if q.Type != "" {
		filter["type"] = q.Type
	}
	if q.MinCapacity > 0 {
		filter["capacity"] = bson.M{"$gte": q.MinCapacity}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles: %w", err)
	}

	if q.StartDate == "" {
		return vehicles, nil
	}

	booked, err := r.bookedVehicleIDs(ctx, q)
	if err != nil {
		return nil, err
	}
	available := vehicles[:0]
	for _, v := range vehicles {
		if !booked[v.ID] {
			available = append(available, v)
		}
	}
	return available, nil
}

// bookedVehicleIDs returns vehicle IDs with a confirmed booking overlapping
// the requested window.
func (r *MongoVehicleRepo) bookedVehicleIDs(ctx context.Context, q AvailabilityQuery) (map[string]bool, error) {
	start, err := time.Parse("2006-01-02", q.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", q.StartDate, err)
	}
	days := q.Days
	if days < 1 {
		days = 1
	}
	end := start.AddDate(0, 0, days)

	bookings := database.Collection("bookings")
	cursor, err := bookings.Find(ctx, bson.M{
		"status":     bson.M{"$in": []string{models.BookingStatusPending, models.BookingStatusConfirmed}},
		"start_date": bson.M{"$lt": end.Format("2006-01-02")},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	booked := make(map[string]bool)
	var b models.Booking
	for cursor.Next(ctx) {
		if err := cursor.Decode(&b); err != nil {
			continue
		}
		bStart, err := time.Parse("2006-01-02", b.StartDate)
		if err != nil {
			continue
		}
		bEnd := bStart.AddDate(0, 0, maxDays(b.Days))
		if bEnd.After(start) {
			booked[b.VehicleID] = true
		}
	}
	return booked, nil
}

func maxDays(d int) int {
	if d < 1 {
		return 1
	}
	return d
}

func (r *MongoVehicleRepo) Create(vehicle *models.Vehicle) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = vehicle.CreatedAt
	if _, err := r.coll.InsertOne(ctx, vehicle); err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *MongoVehicleRepo) Update(vehicle *models.Vehicle) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	vehicle.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": vehicle.ID}, vehicle)
	if err != nil {
		return fmt.Errorf("failed to update vehicle %s: %w", vehicle.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("vehicle %s not found", vehicle.ID)
	}
	return nil
}

func (r *MongoVehicleRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("vehicle %s not found", id)
	}
	return nil
}
