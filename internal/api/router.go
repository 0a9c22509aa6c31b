package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"billboard-hub-backend/config"
	"billboard-hub-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(handler *Handler, cfg config.ServerConfig) *gin.Engine {
	r := gin.New()
	r.Use(mw.RequestID(), mw.Logger(), mw.Recovery())

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheStore := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.CacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter, mw.FlushOnWrite(cacheStore))
	{
		api.GET("/session", handler.GetSession)
		api.POST("/session", handler.PostSession)
		api.DELETE("/session", handler.DeleteSession)

		api.GET("/billboards", caching, handler.ListBillboards)
		api.POST("/billboards", handler.CreateBillboard)
		api.GET("/billboards/:id", handler.GetBillboard)
		api.POST("/billboards/:id/book", handler.BookBillboard)
		api.POST("/billboards/:id/release", handler.ReleaseBillboard)
		api.PUT("/billboards/:id/availability", handler.SetAvailability)
		api.GET("/billboards/:id/map", handler.GetBillboardMap)
		api.GET("/map", handler.GetMap)
		api.GET("/sizes", handler.GetSizes)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
