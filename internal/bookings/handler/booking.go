package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"drivio/internal/bookings/service"
	"drivio/pkg/auth"
	apperrors "drivio/pkg/errors"
	httputil "drivio/pkg/http"
	"drivio/pkg/logger"
	"drivio/pkg/middleware"
	"drivio/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// createBookingPayload carries dates as strings so clients can send either a
// plain calendar date or a full RFC3339 timestamp.
type createBookingPayload struct {
	Car        string `json:"car"`
	PickupDate string `json:"pickup_date"`
	ReturnDate string `json:"return_date"`
}

type availabilityPayload struct {
	Location   string `json:"location"`
	PickupDate string `json:"pickup_date"`
	ReturnDate string `json:"return_date"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Authentication required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var payload createBookingPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	pickup, err := parseDate(payload.PickupDate)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid pickup_date: %s", payload.PickupDate))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	ret, err := parseDate(payload.ReturnDate)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid return_date: %s", payload.ReturnDate))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), identity.UserID, &model.CreateBookingRequest{
		Car:        payload.Car,
		PickupDate: pickup,
		ReturnDate: ret,
	})
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

// MyBookings lists the authenticated user's bookings, newest first.
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	bookings, err := h.service.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MyBookings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "MyBookings", "operation", "WriteSuccess", "error", err)
	}
}

// OwnerBookings lists bookings where the authenticated owner is the
// owner-of-record.
func (h *BookingHandler) OwnerBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	bookings, err := h.service.ListByOwner(r.Context(), identity.UserID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "OwnerBookings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "OwnerBookings", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ChangeStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req model.ChangeBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ChangeStatus", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.ChangeStatus(r.Context(), identity.UserID, &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ChangeStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "ChangeStatus", "operation", "WriteSuccess", "error", err)
	}
}

// CheckAvailability returns the cars in a location that are free for the
// requested date range. Public: it backs the search page.
func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload availabilityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CheckAvailability", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	pickup, err := parseDate(payload.PickupDate)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid pickup_date: %s", payload.PickupDate))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	ret, err := parseDate(payload.ReturnDate)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid return_date: %s", payload.ReturnDate))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	cars, err := h.service.SearchAvailable(r.Context(), &model.AvailabilityRequest{
		Location:   payload.Location,
		PickupDate: pickup,
		ReturnDate: ret,
	})
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CheckAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, cars); err != nil {
		h.log.Error("failed to write success response", "handler", "CheckAvailability", "operation", "WriteSuccess", "error", err)
	}
}

// BookedDays returns the calendar days blocked by a car's active bookings.
func (h *BookingHandler) BookedDays(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	carID := ps.ByName("id")

	days, err := h.service.BookedDays(r.Context(), carID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "BookedDays", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	formatted := make([]string, 0, len(days))
	for _, d := range days {
		formatted = append(formatted, d.Format("2006-01-02"))
	}

	if err := httputil.WriteSuccess(w, formatted); err != nil {
		h.log.Error("failed to write success response", "handler", "BookedDays", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", middleware.RequireAuth(h.Create))
	router.GET("/api/v1/bookings/me", middleware.RequireAuth(h.MyBookings))
	router.GET("/api/v1/bookings/owner", middleware.RequireOwner(h.OwnerBookings))
	router.POST("/api/v1/bookings/change-status", middleware.RequireOwner(h.ChangeStatus))
	router.POST("/api/v1/bookings/check-availability", h.CheckAvailability)
	router.GET("/api/v1/bookings/car/:id/booked-days", h.BookedDays)
}

// parseDate accepts a plain calendar date or a full RFC3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}
