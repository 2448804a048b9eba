package model

import "time"

type Car struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Brand           string    `json:"brand" bson:"brand" validate:"required,min=1,max=60"`
	Model           string    `json:"model" bson:"model" validate:"required,min=1,max=60"`
	Image           string    `json:"image" bson:"image" validate:"omitempty,url"`
	Category        string    `json:"category" bson:"category" validate:"required,oneof=Sedan SUV Hatchback Convertible Coupe Truck Van Other"`
	Year            int       `json:"year" bson:"year" validate:"required,min=1900,max=2100"`
	SeatingCapacity int       `json:"seating_capacity" bson:"seating_capacity" validate:"required,min=1,max=20"`
	FuelType        string    `json:"fuel_type" bson:"fuel_type" validate:"required,oneof=Petrol Diesel Electric Hybrid CNG Other"`
	Transmission    string    `json:"transmission" bson:"transmission" validate:"required,oneof=Automatic Manual Semi-Automatic"`
	PricePerDay     float64   `json:"price_per_day" bson:"price_per_day" validate:"required,gt=0"`
	IsAvailable     bool      `json:"is_available" bson:"is_available"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Location        string    `json:"location" bson:"location" validate:"required,min=2,max=100"`
	Owner           string    `json:"owner" bson:"owner" validate:"required,mongodb"`
	// Removed marks a soft-deleted car. The owner reference is retained for
	// the audit trail of bookings already attributed to it; a removed car can
	// never be rebooked.
	Removed   bool      `json:"removed" bson:"removed"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
