package identity

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
	idents := rg.Group("/identifications")
	{
		idents.POST("", h.Submit)
		idents.GET("", h.List)
		idents.GET("/:id", h.Get)
		idents.POST("/:id/approve", h.Approve)
		idents.POST("/:id/reject", h.Reject)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	userID, err := uuid.Parse(c.PostForm("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	front, err := c.FormFile("front_side")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "front_side is required"})
		return
	}
	back, err := c.FormFile("back_side")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "back_side is required"})
		return
	}

	frontFile, err := front.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer frontFile.Close()

	backFile, err := back.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer backFile.Close()

	ident, err := h.service.Submit(c.Request.Context(), SubmitRequest{
		UserID:    userID,
		Type:      DocumentType(c.PostForm("type")),
		FrontSide: frontFile,
		BackSide:  backFile,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ident)
}

func (h *Handler) List(c *gin.Context) {
	var status *Status
	if raw := c.Query("status"); raw != "" {
		st := Status(raw)
		status = &st
	}

	idents, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, idents)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ident, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ident)
}

func (h *Handler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ident, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ident)
}

func (h *Handler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	ident, err := h.service.Reject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ident)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
