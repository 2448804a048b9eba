package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"drivio/internal/cars/service"
	"drivio/pkg/auth"
	apperrors "drivio/pkg/errors"
	httputil "drivio/pkg/http"
	"drivio/pkg/imagestore"
	"drivio/pkg/logger"
	"drivio/pkg/middleware"
	"drivio/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type CarHandler struct {
	service      service.CarService
	images       imagestore.Store
	maxImageSize int64
	log          *logger.Logger
}

func NewCarHandler(service service.CarService, images imagestore.Store, maxImageSize int64, log *logger.Logger) *CarHandler {
	return &CarHandler{
		service:      service,
		images:       images,
		maxImageSize: maxImageSize,
		log:          log,
	}
}

// Add accepts a multipart form with a "car" JSON field and an optional
// "image" file. The image is uploaded to object storage before the car is
// persisted so a stored car never references a missing image.
func (h *CarHandler) Add(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	if err := r.ParseMultipartForm(h.maxImageSize); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid multipart form",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Add", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	var car model.Car
	if err := json.Unmarshal([]byte(r.FormValue("car")), &car); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid car data",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Add", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	imageURL, err := h.uploadImage(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Add", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if imageURL != "" {
		car.Image = imageURL
	}

	if err := h.service.Add(r.Context(), identity.UserID, &car); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Add", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, car); err != nil {
		h.log.Error("failed to write created response", "handler", "Add", "operation", "WriteCreated", "error", err)
	}
}

func (h *CarHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	car, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, car); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

// ListAvailable is the public catalog: every available, non-removed car,
// newest first, paginated via limit/offset query parameters.
func (h *CarHandler) ListAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := parsePagination(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListAvailable", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	cars, total, err := h.service.ListAvailable(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListAvailable", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, cars, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListAvailable", "operation", "WritePaginated", "error", err)
	}
}

func parsePagination(r *http.Request) (limit, offset int, err error) {
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			return 0, 0, apperrors.InvalidInput(fmt.Sprintf("invalid limit parameter: %s", limitStr))
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			return 0, 0, apperrors.InvalidInput(fmt.Sprintf("invalid offset parameter: %s", offsetStr))
		}
	}
	return limit, offset, nil
}

func (h *CarHandler) OwnerCars(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	cars, err := h.service.ListByOwner(r.Context(), identity.UserID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "OwnerCars", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, cars); err != nil {
		h.log.Error("failed to write success response", "handler", "OwnerCars", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CarHandler) ToggleAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())
	id := ps.ByName("id")

	car, err := h.service.ToggleAvailability(r.Context(), identity.UserID, id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ToggleAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, car); err != nil {
		h.log.Error("failed to write success response", "handler", "ToggleAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CarHandler) Remove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())
	id := ps.ByName("id")

	if err := h.service.Remove(r.Context(), identity.UserID, id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Remove", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CarHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/cars", h.ListAvailable)
	router.GET("/api/v1/cars/id/:id", h.GetByID)
	router.POST("/api/v1/cars", middleware.RequireOwner(h.Add))
	router.GET("/api/v1/cars/owner", middleware.RequireOwner(h.OwnerCars))
	router.POST("/api/v1/cars/id/:id/toggle", middleware.RequireOwner(h.ToggleAvailability))
	router.DELETE("/api/v1/cars/id/:id", middleware.RequireOwner(h.Remove))
}

// uploadImage reads the optional "image" part and stores it. Returns "" when
// no image was sent or no image store is configured.
func (h *CarHandler) uploadImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", apperrors.InvalidInput("Invalid image upload")
	}
	defer file.Close()

	if h.images == nil {
		return "", nil
	}

	if h.maxImageSize > 0 && header.Size > h.maxImageSize {
		return "", apperrors.Validation(fmt.Sprintf("Image exceeds maximum size of %d bytes", h.maxImageSize), nil)
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxImageSize+1))
	if err != nil {
		return "", apperrors.Internal("Failed to read image upload", err)
	}

	url, err := h.images.Upload(r.Context(), "cars", header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		h.log.Error("failed to upload car image", "handler", "Add", "error", err)
		return "", apperrors.Internal("Failed to store image", err)
	}

	return url, nil
}
