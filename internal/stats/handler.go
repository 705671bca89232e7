package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	stats := rg.Group("/stats")
	{
		stats.GET("/overview", h.Overview)
		stats.GET("/properties", h.PropertyRosters)
	}
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.repo.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *Handler) PropertyRosters(c *gin.Context) {
	rosters, err := h.repo.PropertyRosters(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rosters)
}
