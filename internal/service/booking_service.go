package service

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService passes the owner's bookings through unchanged.
type BookingService interface {
	ListBookings(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Booking, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
}

func NewBookingService(bookingRepo repository.BookingRepository) BookingService {
	return &bookingService{bookingRepo: bookingRepo}
}

func (s *bookingService) ListBookings(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Booking, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrOwnerRequired
	}
	return s.bookingRepo.GetByOwnerID(ctx, ownerID)
}
