package server

import (
	"time"

	"participation-tracker/internal/identity"
	"participation-tracker/internal/metrics"
	handler "participation-tracker/services/bidding/handler"

	"github.com/gin-gonic/gin"
)

// RouterConfig carries the collaborators SetupRouter wires together
type RouterConfig struct {
	Service        handler.ParticipationServiceInterface
	Resolver       identity.Resolver
	RequestTimeout time.Duration
	StoreBackend   string
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(RequestIDMiddleware)     // tag every request
	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	router.GET("/healthz", healthHandler(cfg.StoreBackend))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	participationHandler := handler.NewParticipationHandler(cfg.Service)
	authenticated := []gin.HandlerFunc{TimeoutMiddleware(cfg.RequestTimeout), RequireUser(cfg.Resolver)}

	bids := router.Group("/bids", authenticated...)
	{
		bids.GET("/participation", participationHandler.GetParticipationHandler)
	}

	users := router.Group("/users/me", authenticated...)
	{
		users.GET("/participation", participationHandler.GetParticipationHandler)
	}

	return router
}
