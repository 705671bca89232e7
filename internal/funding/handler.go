package funding

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aqarshare/admin-portal/admin-portal-backend/internal/apperrors"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	props := rg.Group("/properties/:id")
	{
		props.GET("/funders", h.ListFunders)
		props.GET("/capacity", h.CheckCapacity)
	}
}

func (h *Handler) ListFunders(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	funders, err := h.service.ListByProperty(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, funders)
}

func (h *Handler) CheckCapacity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	report, err := h.service.CheckCapacity(c.Request.Context(), id)
	switch {
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "capacity": report})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, report)
	}
}
