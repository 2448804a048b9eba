package service

import (
	"context"
	"errors"
	"sync"

	carserrors "drivio/internal/cars/errors"
	"drivio/internal/cars/repository"
	"drivio/internal/cars/validator"
	"drivio/pkg/config"
	apperrors "drivio/pkg/errors"
	"drivio/pkg/model"
	"drivio/pkg/sanitizer"
)

type CarService interface {
	Add(ctx context.Context, ownerID string, car *model.Car) error
	GetByID(ctx context.Context, id string) (*model.Car, error)
	ListAvailable(ctx context.Context, limit, offset int) ([]*model.Car, int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Car, error)
	ToggleAvailability(ctx context.Context, requesterID, carID string) (*model.Car, error)
	Remove(ctx context.Context, requesterID, carID string) error
}

type carService struct {
	repo      repository.CarRepository
	validator *validator.CarValidator
	cfg       *config.Config
}

func NewCarService(repo repository.CarRepository, validator *validator.CarValidator, cfg *config.Config) CarService {
	return &carService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *carService) Add(ctx context.Context, ownerID string, car *model.Car) error {
	car.Owner = ownerID
	car.IsAvailable = true
	car.Removed = false
	s.sanitize(car)

	if err := s.validator.Validate(car); err != nil {
		s.cfg.Log.Warn("Car validation failed", "error", err)
		return apperrors.Validation("Car validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, car); err != nil {
		s.cfg.Log.Error("Failed to create car", "error", err)
		return apperrors.Internal("Failed to create car", err)
	}

	s.cfg.Log.Info("Car created", "id", car.ID, "owner", ownerID, "brand", car.Brand, "model", car.Model)
	return nil
}

func (s *carService) GetByID(ctx context.Context, id string) (*model.Car, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Car ID cannot be empty")
	}

	car, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapCarError(err, id)
	}

	return car, nil
}

// ListAvailable pages through the public catalog. Count and page fetch run
// concurrently under a shared deadline.
func (s *carService) ListAvailable(ctx context.Context, limit, offset int) ([]*model.Car, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var cars []*model.Car
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountAvailable(sharedCtx)
		if err != nil {
			s.cfg.Log.Error("Failed to count available cars", "error", err)
			errCount = apperrors.Internal("Failed to count cars", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		cars, err = s.repo.FindAvailable(sharedCtx, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list available cars",
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve cars", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return cars, count, nil
}

func (s *carService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Car, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	cars, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list owner cars", "owner", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve cars", err)
	}
	return cars, nil
}

func (s *carService) ToggleAvailability(ctx context.Context, requesterID, carID string) (*model.Car, error) {
	car, err := s.authorizeFleetAction(ctx, requesterID, carID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.SetAvailability(ctx, carID, !car.IsAvailable)
	if err != nil {
		s.cfg.Log.Error("Failed to toggle car availability", "id", carID, "error", err)
		return nil, mapCarError(err, carID)
	}

	s.cfg.Log.Info("Car availability toggled", "id", carID, "is_available", updated.IsAvailable)
	return updated, nil
}

func (s *carService) Remove(ctx context.Context, requesterID, carID string) error {
	if _, err := s.authorizeFleetAction(ctx, requesterID, carID); err != nil {
		return err
	}

	if err := s.repo.MarkRemoved(ctx, carID); err != nil {
		s.cfg.Log.Error("Failed to remove car", "id", carID, "error", err)
		return mapCarError(err, carID)
	}

	s.cfg.Log.Info("Car removed", "id", carID, "owner", requesterID)
	return nil
}

// authorizeFleetAction resolves the car and verifies the requester owns it.
func (s *carService) authorizeFleetAction(ctx context.Context, requesterID, carID string) (*model.Car, error) {
	if requesterID == "" || carID == "" {
		return nil, apperrors.InvalidInput("Requester and car ID are required")
	}

	car, err := s.repo.FindByID(ctx, carID)
	if err != nil {
		return nil, mapCarError(err, carID)
	}

	if car.Owner != requesterID {
		return nil, apperrors.Forbidden("Not authorized to manage this car")
	}

	return car, nil
}

func (s *carService) sanitize(car *model.Car) {
	car.Brand = sanitizer.NormalizeName(car.Brand)
	car.Model = sanitizer.NormalizeName(car.Model)
	car.Location = sanitizer.NormalizeLocation(car.Location)
	car.Description = sanitizer.TrimAndNormalize(car.Description)
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
