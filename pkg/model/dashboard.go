package model

import "time"

type DashboardSummary struct {
	TotalCars         int `json:"total_cars"`
	TotalBookings     int `json:"total_bookings"`
	PendingBookings   int `json:"pending_bookings"`
	CompletedBookings int `json:"completed_bookings"`
	// MonthlyRevenue sums all-time revenue of confirmed and completed
	// bookings. The name is inherited from the product side; no calendar
	// month filter is applied.
	MonthlyRevenue float64         `json:"monthly_revenue"`
	RecentBookings []RecentBooking `json:"recent_bookings"`
}

type RecentBooking struct {
	Name   string    `json:"name"`
	Date   time.Time `json:"date"`
	Price  float64   `json:"price"`
	Status string    `json:"status"`
}
