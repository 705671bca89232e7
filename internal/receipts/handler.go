package receipts

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

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
	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.Submit)
		receipts.GET("", h.List)
		receipts.GET("/:id", h.Get)
		receipts.POST("/:id/accept", h.Accept)
		receipts.POST("/:id/reject", h.Reject)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	userID, err := uuid.Parse(c.PostForm("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}
	propertyID, err := uuid.Parse(c.PostForm("property_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property_id"})
		return
	}
	countShares, err := strconv.Atoi(c.PostForm("count_shares"))
	if err != nil || countShares <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count_shares must be a positive integer"})
		return
	}

	var depositDate *time.Time
	if raw := c.PostForm("deposit_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "deposit_date must be YYYY-MM-DD"})
			return
		}
		depositDate = &parsed
	}

	var image io.Reader
	if header, err := c.FormFile("image"); err == nil {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer file.Close()
		image = file
	}

	receipt, err := h.service.Submit(c.Request.Context(), SubmitRequest{
		UserID:          userID,
		PropertyID:      propertyID,
		CountShares:     countShares,
		Method:          c.PostForm("method"),
		ReceiptNumber:   c.PostForm("receipt_number"),
		DepositDate:     depositDate,
		DepositedAmount: c.PostForm("deposited_amount"),
		Image:           image,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

func (h *Handler) List(c *gin.Context) {
	var status *Status
	if raw := c.Query("status"); raw != "" {
		st := Status(raw)
		status = &st
	}

	list, err := h.service.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	receipt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}

func (h *Handler) Accept(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result, err := h.service.Accept(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	receipt, err := h.service.Reject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
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
