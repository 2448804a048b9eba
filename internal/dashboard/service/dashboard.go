package service

import (
	"context"
	"fmt"

	bookingrepository "drivio/internal/bookings/repository"
	carrepository "drivio/internal/cars/repository"
	"drivio/pkg/config"
	apperrors "drivio/pkg/errors"
	"drivio/pkg/model"
)

const recentBookingCount = 3

type DashboardService interface {
	Summary(ctx context.Context, ownerID string) (*model.DashboardSummary, error)
}

type dashboardService struct {
	bookingRepo bookingrepository.BookingRepository
	carRepo     carrepository.CarRepository
	cfg         *config.Config
}

func NewDashboardService(bookingRepo bookingrepository.BookingRepository, carRepo carrepository.CarRepository, cfg *config.Config) DashboardService {
	return &dashboardService{
		bookingRepo: bookingRepo,
		carRepo:     carRepo,
		cfg:         cfg,
	}
}

// Summary folds the owner's bookings into dashboard metrics in a single pass
// over one fetched collection. Bookings are attributed by owner-of-record,
// so a booking stays on this dashboard even if its car was since removed or
// reassigned.
func (s *dashboardService) Summary(ctx context.Context, ownerID string) (*model.DashboardSummary, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	cars, err := s.carRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch owner cars", "owner", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to compute dashboard", err)
	}

	bookings, err := s.bookingRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch owner bookings", "owner", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to compute dashboard", err)
	}

	summary := &model.DashboardSummary{
		TotalCars:      len(cars),
		TotalBookings:  len(bookings),
		RecentBookings: []model.RecentBooking{},
	}

	for _, b := range bookings {
		switch b.Status {
		case model.BookingPending:
			summary.PendingBookings++
		case model.BookingConfirmed, model.BookingCompleted:
			// Confirmed counts toward "completed" in the summary, and
			// revenue sums all-time regardless of month.
			summary.CompletedBookings++
			summary.MonthlyRevenue += b.Price
		}
	}

	// Bookings arrive sorted newest-first from the store.
	for _, b := range bookings[:min(recentBookingCount, len(bookings))] {
		summary.RecentBookings = append(summary.RecentBookings, model.RecentBooking{
			Name:   s.displayName(ctx, b.Car),
			Date:   b.CreatedAt,
			Price:  b.Price,
			Status: b.Status,
		})
	}

	return summary, nil
}

// displayName resolves "brand model" for a recent booking. A car that can no
// longer be resolved still leaves the booking on the dashboard.
func (s *dashboardService) displayName(ctx context.Context, carID string) string {
	car, err := s.carRepo.FindByID(ctx, carID)
	if err != nil {
		return "Unknown car"
	}
	return fmt.Sprintf("%s %s", car.Brand, car.Model)
}
