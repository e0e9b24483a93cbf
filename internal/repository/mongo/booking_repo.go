package mongo

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bookingCollectionName = "bookings"

// mongoBookingRepository implements repository.BookingRepository
type mongoBookingRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingRepository creates a read-only bookings repository.
func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	return &mongoBookingRepository{
		collection: db.Collection(bookingCollectionName),
	}
}

// GetByOwnerID lists the bookings made against a manager's grounds, newest slot first.
func (r *mongoBookingRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Booking, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "from", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []domain.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, cursor.Err()
}

// EnsureBookingIndexes creates necessary indexes. Call during startup.
func EnsureBookingIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index(),
	})
	return err
}
