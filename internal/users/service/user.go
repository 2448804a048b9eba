package service

import (
	"context"
	"errors"

	userserrors "drivio/internal/users/errors"
	"drivio/internal/users/repository"
	"drivio/internal/users/validator"
	"drivio/pkg/auth"
	"drivio/pkg/config"
	apperrors "drivio/pkg/errors"
	"drivio/pkg/model"
	"drivio/pkg/sanitizer"
)

type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	BecomeOwner(ctx context.Context, userID string) (*model.User, error)
	UpdateImage(ctx context.Context, userID string, imageURL string) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	tokens    *auth.TokenMaker
	cfg       *config.Config
}

func NewUserService(repo repository.UserRepository, validator *validator.UserValidator, tokens *auth.TokenMaker, cfg *config.Config) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
		cfg:       cfg,
	}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, apperrors.InvalidInput("Name, email, and password are required")
	}

	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateRegister(req); err != nil {
		return nil, apperrors.Validation("Registration validation failed", map[string]any{"error": err.Error()})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "error", err)
		return nil, apperrors.Internal("Failed to process registration", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrEmailTaken) {
			return nil, apperrors.Conflict("Email is already registered")
		}
		s.cfg.Log.Error("Failed to create user", "error", err)
		return nil, apperrors.Internal("Failed to create user", err)
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		s.cfg.Log.Error("Failed to generate token", "user", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to issue session token", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID, "email", user.Email)
	return &model.AuthResponse{Token: token, User: user}, nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, apperrors.InvalidInput("Email and password are required")
	}

	req.Email = sanitizer.NormalizeEmail(req.Email)

	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, apperrors.Validation("Login validation failed", map[string]any{"error": err.Error()})
	}

	// Unknown email and wrong password produce the same response so the
	// endpoint cannot be used to probe registered addresses.
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		s.cfg.Log.Error("Failed to look up user", "error", err)
		return nil, apperrors.Internal("Failed to process login", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		s.cfg.Log.Error("Failed to generate token", "user", user.ID, "error", err)
		return nil, apperrors.Internal("Failed to issue session token", err)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return &model.AuthResponse{Token: token, User: user}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapUserError(err, id)
	}

	return user, nil
}

// BecomeOwner promotes the user to the owner role so they can list cars.
// Promoting an existing owner is a no-op.
func (s *userService) BecomeOwner(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.UpdateRole(ctx, userID, model.RoleOwner)
	if err != nil {
		return nil, mapUserError(err, userID)
	}

	s.cfg.Log.Info("User promoted to owner", "id", userID)
	return user, nil
}

func (s *userService) UpdateImage(ctx context.Context, userID string, imageURL string) (*model.User, error) {
	if userID == "" || imageURL == "" {
		return nil, apperrors.InvalidInput("User ID and image URL are required")
	}

	user, err := s.repo.UpdateImage(ctx, userID, imageURL)
	if err != nil {
		return nil, mapUserError(err, userID)
	}

	return user, nil
}

func mapUserError(err error, id string) error {
	if errors.Is(err, userserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("User", id)
	}
	if errors.Is(err, userserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid user ID format")
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Internal("User store operation failed", err)
}
