package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billboard-hub-backend/internal/app"
	"billboard-hub-backend/internal/model"
	"billboard-hub-backend/internal/parse"
)

// ListBillboards handles GET /api/billboards?q=&view=.
func (h *Handler) ListBillboards(c *gin.Context) {
	view, err := app.ParseView(c.Query("view"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	items := h.state.Browse(c.Query("q"), view)
	c.JSON(http.StatusOK, gin.H{"billboards": items, "count": len(items)})
}

// GetBillboard handles GET /api/billboards/:id.
func (h *Handler) GetBillboard(c *gin.Context) {
	b, ok := h.state.Listing(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "billboard not found"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// CreateBillboard handles POST /api/billboards.
func (h *Handler) CreateBillboard(c *gin.Context) {
	var form parse.ListingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	b, outcome := h.state.AddListing(c.Request.Context(), form)
	if !outcome.Applied {
		abortWithOutcome(c, outcome)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// BookBillboard handles POST /api/billboards/:id/book.
func (h *Handler) BookBillboard(c *gin.Context) {
	h.respondWithListing(c, h.state.Book(c.Request.Context(), c.Param("id")))
}

// ReleaseBillboard handles POST /api/billboards/:id/release.
func (h *Handler) ReleaseBillboard(c *gin.Context) {
	h.respondWithListing(c, h.state.Release(c.Request.Context(), c.Param("id")))
}

type availabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// SetAvailability handles PUT /api/billboards/:id/availability.
func (h *Handler) SetAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	h.respondWithListing(c, h.state.SetAvailability(c.Request.Context(), c.Param("id"), *req.Available))
}

func (h *Handler) respondWithListing(c *gin.Context, outcome model.Outcome) {
	if !outcome.Applied {
		abortWithOutcome(c, outcome)
		return
	}
	b, _ := h.state.Listing(c.Param("id"))
	c.JSON(http.StatusOK, b)
}

// GetSizes handles GET /api/sizes.
func (h *Handler) GetSizes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sizes": model.SizeSuggestions, "default": model.DefaultSize})
}
