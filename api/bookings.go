package api

import (
	"net/http"

	"flightbook/internal/domain"
	"flightbook/internal/service/booking"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.listByEmail)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

func (h *BookingHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.GET("", h.listAll)
	router.PUT("/:id/status", h.updateStatus)
}

type createBookingRequest struct {
	FlightID      string `json:"flight_id"`
	PassengerName string `json:"passenger_name"`
	Email         string `json:"email"`
	Status        string `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), booking.CreateBookingInput{
		FlightID:      req.FlightID,
		PassengerName: req.PassengerName,
		Email:         req.Email,
		Status:        domain.BookingStatus(req.Status),
	})
	if err != nil {
		writeError(c, err, "create booking")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) listByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	list, err := h.service.ListByEmail(c.Request.Context(), email)
	if err != nil {
		writeError(c, err, "fetch bookings")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) listAll(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "fetch bookings")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) get(c *gin.Context) {
	found, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "fetch booking")
		return
	}
	if found == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	cancelled, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "cancel booking")
		return
	}
	if cancelled == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), domain.BookingStatus(req.Status))
	if err != nil {
		writeError(c, err, "update booking status")
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
