package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"drivio/internal/users/service"
	"drivio/pkg/auth"
	apperrors "drivio/pkg/errors"
	httputil "drivio/pkg/http"
	"drivio/pkg/imagestore"
	"drivio/pkg/logger"
	"drivio/pkg/middleware"
	"drivio/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service      service.UserService
	images       imagestore.Store
	maxImageSize int64
	log          *logger.Logger
}

func NewUserHandler(service service.UserService, images imagestore.Store, maxImageSize int64, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service:      service,
		images:       images,
		maxImageSize: maxImageSize,
		log:          log,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Register", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Register", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, resp); err != nil {
		h.log.Error("failed to write created response", "handler", "Register", "operation", "WriteCreated", "error", err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Login", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	user, err := h.service.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Me", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) BecomeOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	user, err := h.service.BecomeOwner(r.Context(), identity.UserID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BecomeOwner", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "BecomeOwner", "operation", "WriteSuccess", "error", err)
	}
}

// UpdateImage accepts a multipart form with an "image" file and replaces the
// user's profile image.
func (h *UserHandler) UpdateImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	if h.images == nil {
		if writeErr := httputil.WriteError(w, apperrors.Unavailable("Image uploads are not configured")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateImage", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := r.ParseMultipartForm(h.maxImageSize); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid multipart form",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateImage", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("An image file is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateImage", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	defer file.Close()

	if h.maxImageSize > 0 && header.Size > h.maxImageSize {
		if writeErr := httputil.WriteError(w, apperrors.Validation(fmt.Sprintf("Image exceeds maximum size of %d bytes", h.maxImageSize), nil)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateImage", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxImageSize+1))
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to read image upload", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateImage", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	url, err := h.images.Upload(r.Context(), "users", header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		h.log.Error("failed to upload profile image", "handler", "UpdateImage", "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to store image", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateImage", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	user, err := h.service.UpdateImage(r.Context(), identity.UserID, url)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateImage", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateImage", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/users/register", h.Register)
	router.POST("/api/v1/users/login", h.Login)
	router.GET("/api/v1/users/me", middleware.RequireAuth(h.Me))
	router.POST("/api/v1/users/become-owner", middleware.RequireAuth(h.BecomeOwner))
	router.POST("/api/v1/users/image", middleware.RequireAuth(h.UpdateImage))
}
