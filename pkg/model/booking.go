package model

import "time"

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// ActiveBookingStatuses are the statuses that block availability. Cancelled
// and completed bookings never conflict with a candidate range.
var ActiveBookingStatuses = []string{BookingPending, BookingConfirmed}

type Booking struct {
	ID   string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Car  string `json:"car" bson:"car" validate:"required,mongodb"`
	User string `json:"user" bson:"user" validate:"required,mongodb"`
	// Owner is the car's owner snapshotted at creation time. It stays
	// authoritative for authorization and dashboard attribution even if the
	// car is later reassigned or removed.
	Owner         string    `json:"owner" bson:"owner" validate:"required,mongodb"`
	PickupDate    time.Time `json:"pickup_date" bson:"pickup_date" validate:"required"`
	ReturnDate    time.Time `json:"return_date" bson:"return_date" validate:"required"`
	Price         float64   `json:"price" bson:"price" validate:"required,gt=0"`
	Status        string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	PaymentStatus string    `json:"payment_status" bson:"payment_status" validate:"required,oneof=pending paid failed refunded"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type CreateBookingRequest struct {
	Car        string    `json:"car" validate:"required,mongodb"`
	PickupDate time.Time `json:"pickup_date" validate:"required"`
	ReturnDate time.Time `json:"return_date" validate:"required"`
}

type ChangeBookingStatusRequest struct {
	BookingID string `json:"booking_id" validate:"required,mongodb"`
	Status    string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type AvailabilityRequest struct {
	Location   string    `json:"location" validate:"required,min=2,max=100"`
	PickupDate time.Time `json:"pickup_date" validate:"required"`
	ReturnDate time.Time `json:"return_date" validate:"required"`
}
