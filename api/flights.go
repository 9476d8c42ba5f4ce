package api

import (
	"net/http"
	"strconv"

	"flightbook/internal/domain"
	"flightbook/internal/service/flights"

	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) RegisterAdmin(router *gin.RouterGroup) {
	router.POST("", h.add)
	router.DELETE("/:id", h.delete)
	router.PUT("/:id/seats", h.updateSeats)
}

type addFlightRequest struct {
	FlightNumber   string `json:"flight_number"`
	FromCity       string `json:"from_city"`
	ToCity         string `json:"to_city"`
	SeatsAvailable int    `json:"seats_available"`
	TotalSeats     int    `json:"total_seats"`
	PriceCents     int64  `json:"price_cents"`
	Airline        string `json:"airline"`
	Duration       string `json:"duration"`
}

type updateSeatsRequest struct {
	SeatsAvailable int `json:"seats_available"`
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err, "fetch flights")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) search(c *gin.Context) {
	passengers, _ := strconv.Atoi(c.Query("passengers"))
	params := domain.SearchParams{
		FromCity:      c.Query("from"),
		ToCity:        c.Query("to"),
		DepartureDate: c.Query("date"),
		Passengers:    passengers,
	}

	list, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		writeError(c, err, "search flights")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "fetch flight")
		return
	}
	if flight == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) add(c *gin.Context) {
	var req addFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight := &domain.Flight{
		FlightNumber:   req.FlightNumber,
		FromCity:       req.FromCity,
		ToCity:         req.ToCity,
		SeatsAvailable: req.SeatsAvailable,
		TotalSeats:     req.TotalSeats,
		PriceCents:     req.PriceCents,
		Airline:        req.Airline,
		Duration:       req.Duration,
	}
	if err := h.service.Add(c.Request.Context(), flight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "delete flight")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FlightHandler) updateSeats(c *gin.Context) {
	var req updateSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.UpdateSeats(c.Request.Context(), c.Param("id"), req.SeatsAvailable); err != nil {
		writeError(c, err, "update flight seats")
		return
	}
	c.Status(http.StatusNoContent)
}
