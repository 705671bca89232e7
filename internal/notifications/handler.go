package notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aqarshare/admin-portal/admin-portal-backend/internal/apperrors"
)

// ConnectionHandler upgrades an HTTP request to a push connection.
type ConnectionHandler interface {
	HandleConnection(w http.ResponseWriter, r *http.Request) error
}

type Handler struct {
	service Service
	hub     ConnectionHandler
}

func NewHandler(service Service, hub ConnectionHandler) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	notifs := rg.Group("/notifications")
	{
		notifs.GET("", h.List)
		notifs.GET("/unread-count", h.CountUnread)
		notifs.POST("/:id/read", h.MarkRead)
		notifs.GET("/ws", h.Connect)
	}
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *Handler) CountUnread(c *gin.Context) {
	count, err := h.service.CountUnread(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Connect(c *gin.Context) {
	if err := h.hub.HandleConnection(c.Writer, c.Request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
