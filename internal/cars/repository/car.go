package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	carserrors "drivio/internal/cars/errors"
	"drivio/pkg/config"
	"drivio/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Cars"
)

type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	FindByID(ctx context.Context, id string) (*model.Car, error)
	FindAvailable(ctx context.Context, limit, offset int) ([]*model.Car, error)
	CountAvailable(ctx context.Context) (int64, error)
	FindAvailableByLocation(ctx context.Context, location string) ([]*model.Car, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*model.Car, error)
	SetAvailability(ctx context.Context, id string, available bool) (*model.Car, error)
	MarkRemoved(ctx context.Context, id string) error
}

type mongoCarRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCarRepository(cfg *config.Config) CarRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCarRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoCarRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCarRepository) Create(ctx context.Context, car *model.Car) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	car.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, car)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		car.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCarRepository) FindByID(ctx context.Context, id string) (*model.Car, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", carserrors.ErrInvalidID, id)
	}

	var car model.Car
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&car)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, carserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find car: %w", err)
	}

	return &car, nil
}

func (r *mongoCarRepository) FindAvailable(ctx context.Context, limit, offset int) ([]*model.Car, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := r.collection.Find(ctx, availableFilter(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*model.Car
	if err = cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("failed to decode cars: %w", err)
	}

	return cars, nil
}

func (r *mongoCarRepository) CountAvailable(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, availableFilter())
	if err != nil {
		return 0, fmt.Errorf("failed to count cars: %w", err)
	}
	return count, nil
}

func availableFilter() bson.M {
	return bson.M{"is_available": true, "removed": false}
}

func (r *mongoCarRepository) FindAvailableByLocation(ctx context.Context, location string) ([]*model.Car, error) {
	return r.find(ctx, bson.M{
		"location":     location,
		"is_available": true,
		"removed":      false,
	})
}

func (r *mongoCarRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Car, error) {
	return r.find(ctx, bson.M{"owner": ownerID, "removed": false})
}

func (r *mongoCarRepository) find(ctx context.Context, filter bson.M) ([]*model.Car, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find cars: %w", err)
	}
	defer cursor.Close(ctx)

	var cars []*model.Car
	if err = cursor.All(ctx, &cars); err != nil {
		return nil, fmt.Errorf("failed to decode cars: %w", err)
	}

	return cars, nil
}

func (r *mongoCarRepository) SetAvailability(ctx context.Context, id string, available bool) (*model.Car, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", carserrors.ErrInvalidID, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Car
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"is_available": available}},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, carserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update car availability: %w", err)
	}

	return &updated, nil
}

// MarkRemoved soft-deletes a car. The owner reference is retained so existing
// bookings keep their audit trail; the car just stops being bookable.
func (r *mongoCarRepository) MarkRemoved(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", carserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"removed": true, "is_available": false}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove car: %w", err)
	}
	if result.MatchedCount == 0 {
		return carserrors.ErrNotFound
	}

	return nil
}
