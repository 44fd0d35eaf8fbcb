package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mistriconnect/middleware"
	"mistriconnect/services/booking"
)

// BookingHandler exposes the job request lifecycle.
type BookingHandler struct {
	Service booking.Service
}

// NewBookingHandler returns a handler backed by the given booking service.
func NewBookingHandler(service booking.Service) *BookingHandler {
	return &BookingHandler{Service: service}
}

// CreateJobRequest handles POST /api/bookings (customer).
func (h *BookingHandler) CreateJobRequest(c *gin.Context) {
	var input booking.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.CustomerID = c.GetString(middleware.CtxCustomerID)

	job, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking request sent successfully", "jobRequest": job})
}

// AcceptJobRequest handles PUT /api/bookings/:jobId/accept (provider).
func (h *BookingHandler) AcceptJobRequest(c *gin.Context) {
	job, err := h.Service.Accept(c.Request.Context(), c.Param("jobId"), c.GetString(middleware.CtxProviderID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking accepted", "jobRequest": job})
}

// RejectJobRequest handles PUT /api/bookings/:jobId/reject (provider).
func (h *BookingHandler) RejectJobRequest(c *gin.Context) {
	job, err := h.Service.Reject(c.Request.Context(), c.Param("jobId"), c.GetString(middleware.CtxProviderID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking rejected", "jobRequest": job})
}

// CancelJobRequest handles DELETE /api/bookings/:jobId (customer).
func (h *BookingHandler) CancelJobRequest(c *gin.Context) {
	err := h.Service.Cancel(c.Request.Context(), c.Param("jobId"), c.GetString(middleware.CtxCustomerID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// ReviewJobRequest handles POST /api/bookings/:jobId/review (customer).
func (h *BookingHandler) ReviewJobRequest(c *gin.Context) {
	var input booking.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.JobID = c.Param("jobId")
	input.CustomerID = c.GetString(middleware.CtxCustomerID)

	if err := h.Service.Review(c.Request.Context(), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rating submitted successfully"})
}

// ListCustomerBookings handles GET /api/bookings (customer).
func (h *BookingHandler) ListCustomerBookings(c *gin.Context) {
	jobs, err := h.Service.ListForCustomer(c.Request.Context(), c.GetString(middleware.CtxCustomerID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobRequests": jobs})
}

// ListProviderBookings handles GET /api/bookings/incoming (provider).
func (h *BookingHandler) ListProviderBookings(c *gin.Context) {
	jobs, err := h.Service.ListForProvider(c.Request.Context(), c.GetString(middleware.CtxProviderID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobRequests": jobs})
}
