package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingRepo "voyago/database/repository/booking"
	tripRepo "voyago/database/repository/trip"
	"voyago/models"
	"voyago/utils"
)

// BookingHandler serves confirmed bookings and their trips.
type BookingHandler struct {
	Bookings bookingRepo.BookingRepository
	Trips    tripRepo.TripRepository
}

func NewBookingHandler(bookings bookingRepo.BookingRepository, trips tripRepo.TripRepository) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Trips: trips}
}

func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	bookings, err := h.Bookings.GetByUser(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, bookings, "")
}

func (h *BookingHandler) GetDriverBookings(c *gin.Context) {
	bookings, err := h.Bookings.GetByDriver(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, bookings, "")
}

// GetByReference looks a booking up by its short code. Only the traveler
// or the assigned driver may read it.
func (h *BookingHandler) GetByReference(c *gin.Context) {
	booking, err := h.Bookings.GetByReference(c.Param("reference"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if booking == nil {
		utils.RespondError(c, utils.NewNotFoundError("booking not found"))
		return
	}
	userID := c.GetString("userID")
	if booking.UserID != userID && booking.DriverID != userID && c.GetString("role") != models.RoleAdmin {
		utils.RespondError(c, utils.NewUnauthorizedError("not your booking"))
		return
	}
	utils.RespondOK(c, http.StatusOK, booking, "")
}

// GetTrip returns the itinerary behind a booking the caller owns.
func (h *BookingHandler) GetTrip(c *gin.Context) {
	trip, err := h.Trips.GetByID(c.Param("tripID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if trip == nil {
		utils.RespondError(c, utils.NewNotFoundError("trip not found"))
		return
	}
	if trip.UserID != c.GetString("userID") && c.GetString("role") != models.RoleAdmin {
		utils.RespondError(c, utils.NewUnauthorizedError("not your trip"))
		return
	}
	utils.RespondOK(c, http.StatusOK, trip, "")
}

func (h *BookingHandler) GetMyTrips(c *gin.Context) {
	trips, err := h.Trips.GetByUser(c.GetString("userID"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, trips, "")
}

// CancelBooking marks a confirmed booking cancelled. Travelers can only
// cancel their own bookings.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	booking, err := h.Bookings.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if booking == nil {
		utils.RespondError(c, utils.NewNotFoundError("booking not found"))
		return
	}
	if booking.UserID != c.GetString("userID") {
		utils.RespondError(c, utils.NewUnauthorizedError("not your booking"))
		return
	}
	if booking.Status != models.BookingStatusConfirmed {
		utils.RespondError(c, utils.NewConflictError("only confirmed bookings can be cancelled"))
		return
	}

	if err := h.Bookings.UpdateStatus(booking.ID, models.BookingStatusCancelled); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "booking cancelled")
}

// CompleteBooking is called by the assigned driver after the trip ends.
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	booking, err := h.Bookings.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if booking == nil {
		utils.RespondError(c, utils.NewNotFoundError("booking not found"))
		return
	}
	if booking.DriverID != c.GetString("userID") {
		utils.RespondError(c, utils.NewUnauthorizedError("not your booking"))
		return
	}
	if booking.Status != models.BookingStatusConfirmed {
		utils.RespondError(c, utils.NewConflictError("only confirmed bookings can be completed"))
		return
	}

	if err := h.Bookings.UpdateStatus(booking.ID, models.BookingStatusCompleted); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, http.StatusOK, nil, "booking completed")
}
