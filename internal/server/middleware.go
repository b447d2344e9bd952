package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"participation-tracker/internal/biddingerrors"
	"participation-tracker/internal/identity"
	"participation-tracker/internal/metrics"
	"participation-tracker/services/bidding/helpers"
	"participation-tracker/utils"

	"github.com/gin-gonic/gin"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestIDMiddleware echoes the caller's X-Request-ID or assigns a new one
func RequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(RequestIDHeader)
	if requestID == "" {
		requestID = utils.GenerateID()
	}
	c.Set(RequestIDKey, requestID)
	c.Header(RequestIDHeader, requestID)
	c.Next()
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	latency := time.Since(start)
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	metrics.RecordHTTPRequest(route, c.Request.Method, c.Writer.Status(), latency.Seconds())

	utils.Info("HTTP Request", map[string]any{
		"request_id": c.GetString(RequestIDKey),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    latency.String(),
	})
}

// TimeoutMiddleware bounds the request context; store calls observe the deadline
func TimeoutMiddleware(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireUser resolves the caller's identity and stores it under identity.UserIDKey.
// Unauthenticated callers get 401 before any handler or store is reached.
func RequireUser(resolver identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := resolver.Resolve(c.Request)
		if err == nil && userID == "" {
			err = biddingerrors.ErrUnauthenticated
		}
		if err != nil {
			status, message := helpers.MapErrorToHTTP(err)
			if errors.Is(err, biddingerrors.ErrUnauthenticated) {
				utils.JSONMessage(c, status, message)
				utils.Info("RequireUser: unauthenticated request", map[string]any{
					"request_id": c.GetString(RequestIDKey),
					"path":       c.Request.URL.Path,
				})
			} else {
				utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
				utils.Error("RequireUser: identity lookup failed", map[string]any{
					"request_id": c.GetString(RequestIDKey),
					"status":     status,
					"error":      err.Error(),
				})
			}
			c.Abort()
			return
		}

		c.Set(identity.UserIDKey, userID)
		c.Next()
	}
}

// healthHandler reports liveness and the configured store backend
func healthHandler(backend string) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"store": backend}, "ok")
	}
}
