package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetBillboardMap handles GET /api/billboards/:id/map.
func (h *Handler) GetBillboardMap(c *gin.Context) {
	preview, ok := h.state.ListingPreview(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "billboard not found"})
		return
	}
	c.JSON(http.StatusOK, preview)
}

// GetMap handles GET /api/map?id=&q=. The listing is picked among those
// matching q; a missing or unknown id falls back to the first match.
func (h *Handler) GetMap(c *gin.Context) {
	preview, ok := h.state.MapPreview(c.Query("id"), c.Query("q"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no billboards to show"})
		return
	}
	c.JSON(http.StatusOK, preview)
}
