package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"drivio/internal/bookings/repository"
	"drivio/internal/bookings/validator"
	"drivio/pkg/config"
	"drivio/pkg/daterange"
	mongotx "drivio/pkg/db/mongo"
	apperrors "drivio/pkg/errors"
	"drivio/pkg/logger"
	"drivio/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	testCarID     = "507f1f77bcf86cd799439011"
	testUserID    = "507f1f77bcf86cd799439012"
	testOwnerID   = "507f1f77bcf86cd799439013"
	testBookingID = "507f1f77bcf86cd799439014"
	otherOwnerID  = "507f1f77bcf86cd799439099"
)

// Mock repositories for testing

type mockBookingRepository struct {
	mu       sync.Mutex
	bookings []*model.Booking

	createFunc       func(ctx context.Context, booking *model.Booking) error
	findByIDFunc     func(ctx context.Context, id string) (*model.Booking, error)
	updateStatusFunc func(ctx context.Context, id string, status string) (*model.Booking, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	booking.ID = testBookingID
	booking.CreatedAt = time.Now()
	m.bookings = append(m.bookings, booking)
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperrors.NotFoundWithID("Booking", id)
}

func (m *mockBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.Booking{}, m.bookings...), nil
}

func (m *mockBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.User == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.Owner == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

// FindActiveOverlapping mirrors the store's inclusive day-range filter:
// pending and confirmed bookings whose [pickup, return] touches the
// candidate range at all, boundary days included.
func (m *mockBookingRepository) FindActiveOverlapping(ctx context.Context, carID string, dayStart, dayEnd time.Time) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.Car != carID {
			continue
		}
		if b.Status != model.BookingPending && b.Status != model.BookingConfirmed {
			continue
		}
		if daterange.Overlaps(b.PickupDate, b.ReturnDate, dayStart, dayEnd) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) FindActiveByCar(ctx context.Context, carID string) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.Car != carID {
			continue
		}
		if b.Status == model.BookingPending || b.Status == model.BookingConfirmed {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status string) (*model.Booking, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID == id {
			b.Status = status
			return b, nil
		}
	}
	return nil, apperrors.NotFoundWithID("Booking", id)
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

// mockBookingLockRepository emulates the unique _id index on the lock
// collection: a second Create for a held lock fails with a duplicate key
// error.
type mockBookingLockRepository struct {
	mu    sync.Mutex
	held  map[string]bool
	delay time.Duration
}

func newMockLockRepo() *mockBookingLockRepository {
	return &mockBookingLockRepository{held: make(map[string]bool)}
}

func (m *mockBookingLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	m.mu.Lock()
	if m.held[lock.ID] {
		m.mu.Unlock()
		return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}
	m.held[lock.ID] = true
	m.mu.Unlock()
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return lock, nil
}

func (m *mockBookingLockRepository) Delete(ctx context.Context, lockID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, lockID)
	return nil
}

type mockCarRepository struct {
	cars map[string]*model.Car
}

func (m *mockCarRepository) Create(ctx context.Context, car *model.Car) error { return nil }

func (m *mockCarRepository) FindByID(ctx context.Context, id string) (*model.Car, error) {
	if car, ok := m.cars[id]; ok {
		return car, nil
	}
	return nil, apperrors.NotFoundWithID("Car", id)
}

func (m *mockCarRepository) FindAvailable(ctx context.Context, limit, offset int) ([]*model.Car, error) {
	var out []*model.Car
	for _, c := range m.cars {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCarRepository) CountAvailable(ctx context.Context) (int64, error) {
	return int64(len(m.cars)), nil
}

func (m *mockCarRepository) FindAvailableByLocation(ctx context.Context, location string) ([]*model.Car, error) {
	var out []*model.Car
	for _, c := range m.cars {
		if c.Location == location && c.IsAvailable && !c.Removed {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCarRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Car, error) {
	var out []*model.Car
	for _, c := range m.cars {
		if c.Owner == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCarRepository) SetAvailability(ctx context.Context, id string, available bool) (*model.Car, error) {
	car, ok := m.cars[id]
	if !ok {
		return nil, apperrors.NotFoundWithID("Car", id)
	}
	car.IsAvailable = available
	return car, nil
}

func (m *mockCarRepository) MarkRemoved(ctx context.Context, id string) error {
	car, ok := m.cars[id]
	if !ok {
		return apperrors.NotFoundWithID("Car", id)
	}
	car.Removed = true
	car.IsAvailable = false
	return nil
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return &config.Config{
		Log:            log,
		BookingLockTTL: 10 * time.Second,
	}
}

func testCar() *model.Car {
	return &model.Car{
		ID:              testCarID,
		Owner:           testOwnerID,
		Brand:           "BMW",
		Model:           "X5",
		Year:            2022,
		Category:        "SUV",
		SeatingCapacity: 5,
		FuelType:        "Petrol",
		Transmission:    "Automatic",
		PricePerDay:     100,
		Location:        "cape town",
		IsAvailable:     true,
	}
}

func newTestService(repo *mockBookingRepository, lockRepo repository.BookingLockRepository, carRepo *mockCarRepository) BookingService {
	cfg := testConfig()
	return NewBookingService(repo, lockRepo, carRepo, validator.NewBookingValidator(cfg.Log), nil, cfg)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreate_PriceIsDaysTimesRate(t *testing.T) {
	repo := &mockBookingRepository{}
	carRepo := &mockCarRepository{cars: map[string]*model.Car{testCarID: testCar()}}
	svc := newTestService(repo, newMockLockRepo(), carRepo)

	booking, err := svc.Create(context.Background(), testUserID, &model.CreateBookingRequest{
		Car:        testCarID,
		PickupDate: date(2026, time.January, 16),
		ReturnDate: date(2026, time.January, 20),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Jan 16 through Jan 20 spans 5 chargeable days at 100 per day.
	if booking.Price != 500 {
		t.Errorf("expected price 500, got %v", booking.Price)
	}
	if booking.Status != model.BookingPending {
		t.Errorf("expected status pending, got %s", booking.Status)
	}
	if booking.PaymentStatus != model.PaymentPending {
		t.Errorf("expected payment status pending, got %s", booking.PaymentStatus)
	}
	if booking.Owner != testOwnerID {
		t.Errorf("expected owner snapshot %s, got %s", testOwnerID, booking.Owner)
	}
}

func TestCreate_SameDayChargesOneDay(t *testing.T) {
	repo := &mockBookingRepository{}
	carRepo := &mockCarRepository{cars: map[string]*model.Car{testCarID: testCar()}}
	svc := newTestService(repo, newMockLockRepo(), carRepo)

	booking, err := svc.Create(context.Background(), testUserID, &model.CreateBookingRequest{
		Car:        testCarID,
		PickupDate: date(2026, time.March, 10),
		ReturnDate: date(2026, time.March, 10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Price != 100 {
		t.Errorf("expected price 100 for a same-day booking, got %v", booking.Price)
	}
}

func TestCreate_BoundaryDayConflicts(t *testing.T) {
	repo := &mockBookingRepository{
		bookings: []*model.Booking{{
			ID:         "507f1f77bcf86cd799439020",
			Car:        testCarID,
			User:       testUserID,
			Owner:      testOwnerID,
			PickupDate: daterange.DayStart(date(2026, time.February, 10)),
			ReturnDate: daterange.DayEnd(date(2026, time.February, 14)),
			Status:     model.BookingConfirmed,
		}},
	}
	carRepo := &mockCarRepository{cars: map[string]*model.Car{testCarID: testCar()}}
	svc := newTestService(repo, newMockLockRepo(), carRepo)

	// A pickup on the existing booking's return day must conflict: ranges
	// are inclusive on both ends.
	_, err := svc.Create(context.Background(), testUserID, &model.CreateBookingRequest{
		Car:        testCarID,
		PickupDate: date(2026, time.February, 14),
		ReturnDate: date(2026, time.February, 16),
	})
	if err == nil {
		t.Fatal("expected conflict error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected conflict error, got %v", err)
	}

	// The day after the return day is free.
	booking, err := svc.Create(context.Background(), testUserID, &model.CreateBookingRequest{
		Car:        testCarID,
		PickupDate: date(2026, time.February, 15),
		ReturnDate: date(2026, time.February, 16),
	})
	if err != nil {
		t.Fatalf("unexpected error for adjacent range: %v", err)
	}
	if booking.Price != 200 {
		t.Errorf("expected price 200, got %v", booking.Price)
	}
}

func TestCreate_InvertedDatesRejected(t *testing.T) {
	repo := &mockBookingRepository{}
	carRepo := &mockCarRepository{cars: map[string]*model.Car{testCarID: testCar()}}
	svc := newTestService(repo, newMockLockRepo(), carRepo)

	_, err := svc.Create(context.Background(), testUserID, &model.CreateBookingRequest{
		Car:        testCarID,
		PickupDate: date(2026, time.April, 10),
		ReturnDate: date(2026, time.April, 5),
	})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
	if len(repo.bookings) != 0 {
		t.Errorf("expected no booking persisted, got %d", len(repo.bookings))
	}
}

func TestCreate_CancelledBookingDoesNotBlock(t *testing.T) {
	repo := &mockBookingRepository{
		bookings: []*model.Booking{{
			ID:         "507f1f77bcf86cd799439021",
			Car:        testCarID,
			User:       testUserID,
			Owner:      testOwnerID,
			PickupDate: daterange.DayStart(date(2026, time.May, 1)),
			ReturnDate: daterange.DayEnd(date(2026, time.May, 5)),
			Status:     model.BookingCancelled,
		}},
	}
	carRepo := &mockCarRepository{cars: map[string]*model.Car{testCarID: testCar()}}
	svc := newTestService(repo, newMockLockRepo(), carRepo)

	_, err := svc.Create(context.Background(), testUserID, &model.CreateBookingRequest{
		Car:        testCarID,
		PickupDate: date(2026, time.May, 3),
		ReturnDate: date(2026, time.May, 4),
	})
	if err != nil {
		t.Fatalf("cancelled booking must not block the range: %v", err)
	}
}

func TestCreate_RemovedCarRejected(t *testing.T) {
	car := testCar()
	car.Removed = true
	car.IsAvailable = false
	repo := &mockBookingRepository{}
	carRepo := &mockCarRepository{cars: map[string]*model.Car{testCarID: car}}
	svc := newTestService(repo, newMockLockRepo(), carRepo)

	_, err := svc.Create(context.Background(), testUserID, &model.CreateBookingRequest{
		Car:        testCarID,
		PickupDate: date(2026, time.June, 1),
		ReturnDate: date(2026, time.June, 2),
	})
	if err == nil {
		t.Fatal("expected error for removed car, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreate_UnknownCarNotFound(t *testing.T) {
	repo := &mockBookingRepository{}
	carRepo := &mockCarRepository{cars: map[string]*model.Car{}}
	svc := newTestService(repo, newMockLockRepo(), carRepo)

	_, err := svc.Create(context.Background(), testUserID, &model.CreateBookingRequest{
		Car:        testCarID,
		PickupDate: date(2026, time.June, 1),
		ReturnDate: date(2026, time.June, 2),
	})
	if err == nil {
		t.Fatal("expected not found error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

// Two concurrent creates for the same car and overlapping dates: the advisory
// lock serializes them, and the transactional re-check rejects the loser. At
// most one booking may be persisted.
func TestCreate_ConcurrentDoubleBooking(t *testing.T) {
	repo := &mockBookingRepository{}
	lockRepo := newMockLockRepo()
	lockRepo.delay = 20 * time.Millisecond
	carRepo := &mockCarRepository{cars: map[string]*model.Car{testCarID: testCar()}}
	svc := newTestService(repo, lockRepo, carRepo)

	req := func() *model.CreateBookingRequest {
		return &model.CreateBookingRequest{
			Car:        testCarID,
			PickupDate: date(2026, time.July, 1),
			ReturnDate: date(2026, time.July, 5),
		}
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), testUserID, req())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		appErr := apperrors.AsAppError(err)
		if appErr.Code != apperrors.CodeConflict {
			t.Errorf("losing request must fail with conflict, got %v", err)
		}
	}
	if succeeded > 1 {
		t.Errorf("expected at most one booking to succeed, got %d", succeeded)
	}
	if len(repo.bookings) > 1 {
		t.Errorf("expected at most one persisted booking, got %d", len(repo.bookings))
	}
}

func TestChangeStatus_OwnerOfRecordOnly(t *testing.T) {
	repo := &mockBookingRepository{
		bookings: []*model.Booking{{
			ID:            testBookingID,
			Car:           testCarID,
			User:          testUserID,
			Owner:         testOwnerID,
			PickupDate:    daterange.DayStart(date(2026, time.August, 1)),
			ReturnDate:    daterange.DayEnd(date(2026, time.August, 3)),
			Price:         300,
			Status:        model.BookingPending,
			PaymentStatus: model.PaymentPending,
		}},
	}
	svc := newTestService(repo, newMockLockRepo(), &mockCarRepository{cars: map[string]*model.Car{}})

	_, err := svc.ChangeStatus(context.Background(), otherOwnerID, &model.ChangeBookingStatusRequest{
		BookingID: testBookingID,
		Status:    model.BookingConfirmed,
	})
	if err == nil {
		t.Fatal("expected forbidden error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeForbidden {
		t.Errorf("expected forbidden error, got %v", err)
	}
	if repo.bookings[0].Status != model.BookingPending {
		t.Errorf("booking status must be unchanged, got %s", repo.bookings[0].Status)
	}

	updated, err := svc.ChangeStatus(context.Background(), testOwnerID, &model.ChangeBookingStatusRequest{
		BookingID: testBookingID,
		Status:    model.BookingConfirmed,
	})
	if err != nil {
		t.Fatalf("unexpected error for owner-of-record: %v", err)
	}
	if updated.Status != model.BookingConfirmed {
		t.Errorf("expected status confirmed, got %s", updated.Status)
	}
}

func TestChangeStatus_RepeatedCancelIsIdempotent(t *testing.T) {
	repo := &mockBookingRepository{
		bookings: []*model.Booking{{
			ID:            testBookingID,
			Car:           testCarID,
			User:          testUserID,
			Owner:         testOwnerID,
			PickupDate:    daterange.DayStart(date(2026, time.August, 10)),
			ReturnDate:    daterange.DayEnd(date(2026, time.August, 12)),
			Price:         300,
			Status:        model.BookingPending,
			PaymentStatus: model.PaymentPending,
		}},
	}
	svc := newTestService(repo, newMockLockRepo(), &mockCarRepository{cars: map[string]*model.Car{}})

	for i := 0; i < 2; i++ {
		updated, err := svc.ChangeStatus(context.Background(), testOwnerID, &model.ChangeBookingStatusRequest{
			BookingID: testBookingID,
			Status:    model.BookingCancelled,
		})
		if err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", i+1, err)
		}
		if updated.Status != model.BookingCancelled {
			t.Errorf("attempt %d: expected status cancelled, got %s", i+1, updated.Status)
		}
	}
}

func TestChangeStatus_UnknownStatusRejected(t *testing.T) {
	repo := &mockBookingRepository{
		bookings: []*model.Booking{{
			ID:            testBookingID,
			Car:           testCarID,
			User:          testUserID,
			Owner:         testOwnerID,
			PickupDate:    daterange.DayStart(date(2026, time.August, 20)),
			ReturnDate:    daterange.DayEnd(date(2026, time.August, 22)),
			Price:         300,
			Status:        model.BookingPending,
			PaymentStatus: model.PaymentPending,
		}},
	}
	svc := newTestService(repo, newMockLockRepo(), &mockCarRepository{cars: map[string]*model.Car{}})

	_, err := svc.ChangeStatus(context.Background(), testOwnerID, &model.ChangeBookingStatusRequest{
		BookingID: testBookingID,
		Status:    "archived",
	})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
	if repo.bookings[0].Status != model.BookingPending {
		t.Errorf("booking status must be unchanged, got %s", repo.bookings[0].Status)
	}
}

func TestChangeStatus_UnknownBookingReportedBeforeBadStatus(t *testing.T) {
	repo := &mockBookingRepository{}
	svc := newTestService(repo, newMockLockRepo(), &mockCarRepository{cars: map[string]*model.Car{}})

	_, err := svc.ChangeStatus(context.Background(), testOwnerID, &model.ChangeBookingStatusRequest{
		BookingID: testBookingID,
		Status:    "archived",
	})
	if err == nil {
		t.Fatal("expected not found error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestSearchAvailable_ExcludesBookedCars(t *testing.T) {
	secondCarID := "507f1f77bcf86cd799439030"
	secondCar := testCar()
	secondCar.ID = secondCarID

	repo := &mockBookingRepository{
		bookings: []*model.Booking{{
			ID:         "507f1f77bcf86cd799439031",
			Car:        testCarID,
			User:       testUserID,
			Owner:      testOwnerID,
			PickupDate: daterange.DayStart(date(2026, time.September, 10)),
			ReturnDate: daterange.DayEnd(date(2026, time.September, 15)),
			Status:     model.BookingPending,
		}},
	}
	carRepo := &mockCarRepository{cars: map[string]*model.Car{
		testCarID:   testCar(),
		secondCarID: secondCar,
	}}
	svc := newTestService(repo, newMockLockRepo(), carRepo)

	cars, err := svc.SearchAvailable(context.Background(), &model.AvailabilityRequest{
		Location:   "Cape Town",
		PickupDate: date(2026, time.September, 12),
		ReturnDate: date(2026, time.September, 13),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cars) != 1 {
		t.Fatalf("expected 1 available car, got %d", len(cars))
	}
	if cars[0].ID != secondCarID {
		t.Errorf("expected car %s, got %s", secondCarID, cars[0].ID)
	}
}

func TestBookedDays_DistinctSortedDays(t *testing.T) {
	repo := &mockBookingRepository{
		bookings: []*model.Booking{
			{
				ID:         "507f1f77bcf86cd799439040",
				Car:        testCarID,
				User:       testUserID,
				Owner:      testOwnerID,
				PickupDate: daterange.DayStart(date(2026, time.October, 3)),
				ReturnDate: daterange.DayEnd(date(2026, time.October, 5)),
				Status:     model.BookingConfirmed,
			},
			{
				ID:         "507f1f77bcf86cd799439041",
				Car:        testCarID,
				User:       testUserID,
				Owner:      testOwnerID,
				PickupDate: daterange.DayStart(date(2026, time.October, 5)),
				ReturnDate: daterange.DayEnd(date(2026, time.October, 6)),
				Status:     model.BookingPending,
			},
			{
				ID:         "507f1f77bcf86cd799439042",
				Car:        testCarID,
				User:       testUserID,
				Owner:      testOwnerID,
				PickupDate: daterange.DayStart(date(2026, time.October, 1)),
				ReturnDate: daterange.DayEnd(date(2026, time.October, 1)),
				Status:     model.BookingCancelled,
			},
		},
	}
	svc := newTestService(repo, newMockLockRepo(), &mockCarRepository{cars: map[string]*model.Car{}})

	days, err := svc.BookedDays(context.Background(), testCarID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Oct 3-6: overlapping day (Oct 5) appears once, cancelled booking's day
	// does not appear at all.
	want := []time.Time{
		daterange.DayStart(date(2026, time.October, 3)),
		daterange.DayStart(date(2026, time.October, 4)),
		daterange.DayStart(date(2026, time.October, 5)),
		daterange.DayStart(date(2026, time.October, 6)),
	}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(days))
	}
	for i := range want {
		if !days[i].Equal(want[i]) {
			t.Errorf("day %d: expected %v, got %v", i, want[i], days[i])
		}
	}
}

func TestIsAvailable_Monotonicity(t *testing.T) {
	// If a wide range is free, every sub-range of it is free too.
	repo := &mockBookingRepository{
		bookings: []*model.Booking{{
			ID:         "507f1f77bcf86cd799439050",
			Car:        testCarID,
			User:       testUserID,
			Owner:      testOwnerID,
			PickupDate: daterange.DayStart(date(2026, time.November, 20)),
			ReturnDate: daterange.DayEnd(date(2026, time.November, 25)),
			Status:     model.BookingConfirmed,
		}},
	}
	svc := newTestService(repo, newMockLockRepo(), &mockCarRepository{cars: map[string]*model.Car{}})

	wide, err := svc.IsAvailable(context.Background(), testCarID, date(2026, time.November, 1), date(2026, time.November, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !wide {
		t.Fatal("expected wide range to be available")
	}

	for d := 1; d <= 9; d++ {
		ok, err := svc.IsAvailable(context.Background(), testCarID, date(2026, time.November, d), date(2026, time.November, d+1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Errorf("sub-range starting Nov %d must be available when the wide range is", d)
		}
	}
}
