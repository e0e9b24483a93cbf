package memory

import (
	"alcyxob/plan-admin/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingRepository is an in-memory bookings list. Add seeds it; the
// catalog service itself only reads.
type BookingRepository struct {
	bookings *table[domain.Booking]
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings: newTable(func(b domain.Booking) primitive.ObjectID { return b.OwnerID }),
	}
}

// Add stores a booking, assigning an ID and creation time when missing.
func (r *BookingRepository) Add(b domain.Booking) domain.Booking {
	if b.ID == primitive.NilObjectID {
		b.ID = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	r.bookings.insert(b.ID, b)
	return b
}

func (r *BookingRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Booking, error) {
	return r.bookings.byOwner(ownerID), nil
}
