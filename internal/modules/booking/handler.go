package booking

import (
	"net/http"
	"strconv"
	"time"

	"tooltrack/internal/domain"
	"tooltrack/internal/pkg/response"
	"tooltrack/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the authenticated booking surface.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings/my", h.MyBookings)
	rg.GET("/bookings/calendar", h.Calendar)
	rg.GET("/bookings/history", h.History)
	rg.PUT("/bookings/:id", h.Update)
	rg.POST("/tools/:id/check-availability", h.CheckAvailability)
}

// RegisterAdminRoutes wires the admin-only booking surface.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListAll)
	rg.GET("/bookings/pending", h.ListPending)
	rg.DELETE("/bookings/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
		return
	}

	b, err := h.service.Submit(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
		return
	}

	isAdmin := c.GetString("role") == string(domain.RoleAdmin)
	b, err := h.service.Update(c.Request.Context(), id, c.GetInt64("user_id"), isAdmin, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	toolID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tool ID")
		return
	}

	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	available, err := h.service.CheckAvailability(
		c.Request.Context(), toolID, req.StartDate, req.EndDate, req.ExcludeBookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"available": available})
}

func (h *Handler) Calendar(c *gin.Context) {
	start, err1 := time.Parse(time.RFC3339, c.Query("start"))
	end, err2 := time.Parse(time.RFC3339, c.Query("end"))
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start and end query parameters are required (RFC3339)")
		return
	}

	bookings, err := h.service.Calendar(c.Request.Context(), start, end)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) History(c *gin.Context) {
	var f repository.HistoryFilter
	if v := c.Query("tool_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.ToolID = id
		}
	}
	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.UserID = id
		}
	}
	if v := c.Query("start"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.From = t
		}
	}
	if v := c.Query("end"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.To = t
		}
	}

	bookings, err := h.service.History(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) ListAll(c *gin.Context) {
	bookings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) ListPending(c *gin.Context) {
	bookings, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) MyBookings(c *gin.Context) {
	bookings, err := h.service.ListByUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking time range or duration")
	case ErrConflict:
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Tool is already booked for this time period")
	case ErrToolUnavailable:
		response.Error(c, http.StatusBadRequest, "TOOL_UNAVAILABLE", "Tool is not available for booking")
	case ErrToolNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tool not found")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin capability required")
	case ErrInvalidTransition:
		response.Error(c, http.StatusBadRequest, "INVALID_TRANSITION", "Illegal booking status transition")
	case ErrNotEditable:
		response.Error(c, http.StatusBadRequest, "NOT_EDITABLE", "Booking can no longer be edited")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking request")
	}
}
