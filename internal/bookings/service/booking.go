package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	bookingserrors "drivio/internal/bookings/errors"
	"drivio/internal/bookings/repository"
	"drivio/internal/bookings/validator"
	carserrors "drivio/internal/cars/errors"
	carrepository "drivio/internal/cars/repository"
	"drivio/pkg/config"
	"drivio/pkg/daterange"
	apperrors "drivio/pkg/errors"
	"drivio/pkg/events"
	"drivio/pkg/model"
	"drivio/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, requesterID string, req *model.CreateBookingRequest) (*model.Booking, error)
	ChangeStatus(ctx context.Context, requesterID string, req *model.ChangeBookingStatusRequest) (*model.Booking, error)
	IsAvailable(ctx context.Context, carID string, pickupDate, returnDate time.Time) (bool, error)
	SearchAvailable(ctx context.Context, req *model.AvailabilityRequest) ([]*model.Car, error)
	BookedDays(ctx context.Context, carID string) ([]time.Time, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	carRepo   carrepository.CarRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	carRepo carrepository.CarRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		carRepo:   carRepo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, requesterID string, req *model.CreateBookingRequest) (*model.Booking, error) {
	if requesterID == "" || req == nil || req.Car == "" || req.PickupDate.IsZero() || req.ReturnDate.IsZero() {
		return nil, apperrors.InvalidInput("Car, pickup date, and return date are required")
	}

	car, err := s.carRepo.FindByID(ctx, req.Car)
	if err != nil {
		return nil, mapCarError(err, req.Car)
	}

	if car.Removed || car.Owner == "" {
		return nil, apperrors.Validation("Car is no longer bookable", map[string]any{"car": req.Car})
	}

	dayStart := daterange.DayStart(req.PickupDate)
	dayEnd := daterange.DayEnd(req.ReturnDate)
	if dayEnd.Before(dayStart) {
		return nil, apperrors.Validation("Return date cannot be before pickup date", nil)
	}

	// Per-car advisory lock so two concurrent creates for the same car cannot
	// both pass the availability check.
	lockID, err := s.acquireCarLock(ctx, car.ID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseCarLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	booking := &model.Booking{
		Car:           car.ID,
		User:          requesterID,
		Owner:         car.Owner,
		PickupDate:    dayStart,
		ReturnDate:    dayEnd,
		Price:         float64(daterange.Days(dayStart, dayEnd)) * car.PricePerDay,
		Status:        model.BookingPending,
		PaymentStatus: model.PaymentPending,
	}

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		conflicts, err := s.repo.FindActiveOverlapping(sessCtx, car.ID, dayStart, dayEnd)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		if len(conflicts) > 0 {
			return apperrors.Conflict("Selected dates are already booked")
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeBookingCreated, booking)

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"car", booking.Car,
		"user", booking.User,
		"pickup_date", booking.PickupDate,
		"return_date", booking.ReturnDate,
		"price", booking.Price,
	)
	return booking, nil
}

func (s *bookingService) ChangeStatus(ctx context.Context, requesterID string, req *model.ChangeBookingStatusRequest) (*model.Booking, error) {
	if requesterID == "" || req == nil || req.BookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID and status are required")
	}

	// Resolve the booking before judging the requested status, so an unknown
	// booking reports NotFound even when the status is also bad.
	booking, err := s.repo.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, mapBookingError(err, req.BookingID)
	}

	if err := s.validator.ValidateStatusChange(req); err != nil {
		return nil, apperrors.Validation("Invalid booking status", map[string]any{"error": err.Error()})
	}

	// Only the owner-of-record may move a booking. The snapshot taken at
	// creation stays authoritative even if the car changed hands since.
	if booking.Owner != requesterID {
		return nil, apperrors.Forbidden("Not authorized to update this booking")
	}

	// Transitions are deliberately flat: any recognized status is accepted
	// from any other, so repeating a cancellation is a no-op rather than an
	// error.
	updated, err := s.repo.UpdateStatus(ctx, req.BookingID, req.Status)
	if err != nil {
		return nil, mapBookingError(err, req.BookingID)
	}

	s.publish(ctx, events.TypeBookingStatusChanged, updated)

	s.cfg.Log.Info("Booking status updated", "id", updated.ID, "status", updated.Status)
	return updated, nil
}

// IsAvailable reports whether the car has no pending or confirmed booking
// whose inclusive day-range overlaps [pickupDate, returnDate].
func (s *bookingService) IsAvailable(ctx context.Context, carID string, pickupDate, returnDate time.Time) (bool, error) {
	dayStart := daterange.DayStart(pickupDate)
	dayEnd := daterange.DayEnd(returnDate)

	conflicts, err := s.repo.FindActiveOverlapping(ctx, carID, dayStart, dayEnd)
	if err != nil {
		return false, apperrors.Internal("Failed to check availability", err)
	}

	return len(conflicts) == 0, nil
}

func (s *bookingService) SearchAvailable(ctx context.Context, req *model.AvailabilityRequest) ([]*model.Car, error) {
	if req == nil || req.Location == "" || req.PickupDate.IsZero() || req.ReturnDate.IsZero() {
		return nil, apperrors.InvalidInput("Location, pickup date, and return date are required")
	}
	if daterange.DayEnd(req.ReturnDate).Before(daterange.DayStart(req.PickupDate)) {
		return nil, apperrors.Validation("Return date cannot be before pickup date", nil)
	}

	cars, err := s.carRepo.FindAvailableByLocation(ctx, sanitizer.NormalizeLocation(req.Location))
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve cars", err)
	}

	// Each car is checked independently: a failing check excludes that car
	// from the results instead of aborting the whole search.
	available := make([]*model.Car, 0, len(cars))
	for _, car := range cars {
		ok, err := s.IsAvailable(ctx, car.ID, req.PickupDate, req.ReturnDate)
		if err != nil {
			s.cfg.Log.Warn("Availability check failed, excluding car from results",
				"car", car.ID,
				"error", err,
			)
			continue
		}
		if ok {
			available = append(available, car)
		}
	}

	return available, nil
}

// BookedDays returns the distinct calendar days blocked by the car's active
// bookings, sorted ascending. Used by clients to grey out date pickers.
func (s *bookingService) BookedDays(ctx context.Context, carID string) ([]time.Time, error) {
	if carID == "" {
		return nil, apperrors.InvalidInput("Car ID cannot be empty")
	}

	bookings, err := s.repo.FindActiveByCar(ctx, carID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	seen := make(map[time.Time]struct{})
	for _, b := range bookings {
		for _, d := range daterange.EnumerateDays(b.PickupDate, b.ReturnDate) {
			seen[d] = struct{}{}
		}
	}

	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	return days, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list user bookings", "user", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Booking, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	bookings, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list owner bookings", "owner", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// --- Helpers ---

func (s *bookingService) acquireCarLock(ctx context.Context, carID string) (string, error) {
	lockID := fmt.Sprintf("booking_lock_%s", carID)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This car is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseCarLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

func (s *bookingService) publish(ctx context.Context, eventType string, b *model.Booking) {
	err := s.publisher.Publish(ctx, events.BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		CarID:      b.Car,
		UserID:     b.User,
		OwnerID:    b.Owner,
		Status:     b.Status,
		Price:      b.Price,
		PickupDate: b.PickupDate,
		ReturnDate: b.ReturnDate,
	})
	if err != nil {
		// Event delivery is best-effort; the booking operation already
		// succeeded.
		s.cfg.Log.Warn("Failed to publish booking event", "type", eventType, "booking", b.ID, "error", err)
	}
}

func mapBookingError(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal("Booking store operation failed", err)
}

func mapCarError(err error, id string) error {
	if errors.Is(err, carserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Car", id)
	}
	if errors.Is(err, carserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid car ID format")
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal("Car store operation failed", err)
}
