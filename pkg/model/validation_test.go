package model

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func validCar() *Car {
	return &Car{
		Brand:           "Toyota",
		Model:           "Corolla",
		Category:        "Sedan",
		Year:            2022,
		SeatingCapacity: 5,
		FuelType:        "Petrol",
		Transmission:    "Automatic",
		PricePerDay:     120,
		IsAvailable:     true,
		Location:        "Berlin",
		Owner:           "507f1f77bcf86cd799439011",
	}
}

func TestCar_EnumsRejectedAtBoundary(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name   string
		mutate func(*Car)
		valid  bool
	}{
		{name: "valid car", mutate: func(*Car) {}, valid: true},
		{name: "unknown category", mutate: func(c *Car) { c.Category = "Spaceship" }, valid: false},
		{name: "unknown fuel type", mutate: func(c *Car) { c.FuelType = "Coal" }, valid: false},
		{name: "unknown transmission", mutate: func(c *Car) { c.Transmission = "CVT-ish" }, valid: false},
		{name: "lowercase category is not coerced", mutate: func(c *Car) { c.Category = "sedan" }, valid: false},
		{name: "zero price", mutate: func(c *Car) { c.PricePerDay = 0 }, valid: false},
		{name: "negative price", mutate: func(c *Car) { c.PricePerDay = -10 }, valid: false},
		{name: "missing owner", mutate: func(c *Car) { c.Owner = "" }, valid: false},
		{name: "malformed owner id", mutate: func(c *Car) { c.Owner = "not-an-object-id" }, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			car := validCar()
			tt.mutate(car)
			err := v.Struct(car)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got: %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error, got none")
			}
		})
	}
}

func TestBooking_StatusEnums(t *testing.T) {
	v := validator.New()

	base := Booking{
		Car:           "507f1f77bcf86cd799439011",
		User:          "507f1f77bcf86cd799439012",
		Owner:         "507f1f77bcf86cd799439013",
		PickupDate:    time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		ReturnDate:    time.Date(2024, time.June, 15, 23, 59, 59, 999000000, time.UTC),
		Price:         600,
		Status:        BookingPending,
		PaymentStatus: PaymentPending,
	}

	for _, status := range []string{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted} {
		b := base
		b.Status = status
		if err := v.Struct(&b); err != nil {
			t.Errorf("status %q should be accepted: %v", status, err)
		}
	}

	for _, status := range []string{"", "archived", "PENDING", "done"} {
		b := base
		b.Status = status
		if err := v.Struct(&b); err == nil {
			t.Errorf("status %q should be rejected", status)
		}
	}

	for _, ps := range []string{"", "charged", "PAID"} {
		b := base
		b.PaymentStatus = ps
		if err := v.Struct(&b); err == nil {
			t.Errorf("payment status %q should be rejected", ps)
		}
	}
}

func TestUser_RoleEnum(t *testing.T) {
	v := validator.New()

	base := User{
		Name:         "Dana",
		Email:        "dana@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         RoleUser,
	}

	owner := base
	owner.Role = RoleOwner
	if err := v.Struct(&owner); err != nil {
		t.Errorf("owner role should be accepted: %v", err)
	}

	admin := base
	admin.Role = "admin"
	if err := v.Struct(&admin); err == nil {
		t.Error("unrecognized role should be rejected")
	}
}
