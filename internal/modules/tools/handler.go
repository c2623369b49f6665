package tools

import (
	"net/http"
	"strconv"

	"tooltrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the read-only tool surface.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tools", h.List)
	rg.GET("/tools/:id", h.GetByID)
}

// RegisterAdminRoutes wires fleet management, admin-only.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/tools", h.Create)
	rg.PUT("/tools/:id", h.Update)
	rg.DELETE("/tools/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	ts, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch tools")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tools": ts})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tool ID")
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tool not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch tool")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tool": t})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tool data")
		return
	}

	t, fields, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tool data", fields)
		case ErrInvalidStatus:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tool status")
		case ErrDuplicateCode:
			response.Error(c, http.StatusBadRequest, "CODE_EXISTS", "Tool code already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create tool")
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"tool": t})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tool ID")
		return
	}

	var req UpdateToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tool data")
		return
	}

	t, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tool not found")
		case ErrInvalidStatus:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid tool status")
		case ErrDuplicateCode:
			response.Error(c, http.StatusBadRequest, "CODE_EXISTS", "Tool code already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update tool")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tool": t})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid tool ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Tool not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete tool")
		return
	}
	c.Status(http.StatusNoContent)
}
