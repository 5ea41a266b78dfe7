package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/humidor/entitlements/pkg/response"
)

// StorePinger is the slice of the store the health probe needs.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// @Summary      Health check
// @Description  Probes the persistent store with a trivial read.
// @Tags         System
// @Produce      json
// @Success      200  {object}  response.HealthOK
// @Failure      500  {object}  response.HealthError
// @Router       /webhook/health [get]
func Health(store StorePinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, &response.HealthError{
				Error:   "database unreachable",
				Details: err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, &response.HealthOK{
			Status:    "healthy",
			Database:  "connected",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func RegisterHealthRoutes(r gin.IRouter, store StorePinger) {
	r.GET("/webhook/health", Health(store))
}
