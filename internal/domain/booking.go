package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is a customer reservation against a turf plan. The plan-admin core
// only lists bookings; they are created by the customer-facing booking flow.
type Booking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OwnerID      primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	PlanID       primitive.ObjectID `bson:"planId" json:"planId"`
	CustomerName string             `bson:"name" json:"name"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Date         time.Time          `bson:"date" json:"date"`
	From         TimeOfDay          `bson:"from" json:"from"`
	To           TimeOfDay          `bson:"to" json:"to"`
	Amount       float64            `bson:"amount" json:"amount"`
	Status       string             `bson:"status" json:"status"` // e.g. "confirmed", "cancelled"
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
