package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"billboard-hub-backend/internal/app"
	"billboard-hub-backend/internal/model"
	"billboard-hub-backend/internal/notification"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	state   *app.State
	subs    *notification.SubscriptionStore
	webpush *webpush.Options
}

// NewHandler creates a new API handler. subs and webpushOptions may be nil
// when push notifications are disabled.
func NewHandler(state *app.State, subs *notification.SubscriptionStore, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		state:   state,
		subs:    subs,
		webpush: webpushOptions,
	}
}

// statusFor maps a core error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrPreconditionFailed):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// abortWithOutcome writes a rejected outcome as an error response.
func abortWithOutcome(c *gin.Context, outcome model.Outcome) {
	err := outcome.Err()
	c.AbortWithStatusJSON(statusFor(err), gin.H{
		"error":  err.Error(),
		"reason": outcome.Reason,
	})
}
