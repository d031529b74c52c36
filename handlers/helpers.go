package handlers

import (
	"restaurant-menu-api/authz"
	"restaurant-menu-api/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// denied writes the HTTP rendering of a non-allow decision.
func denied(c *gin.Context, d authz.Decision) {
	config.Log.Warn("Request denied",
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Int("status", d.Status()))
	c.JSON(d.Status(), gin.H{"error": d.Message()})
}

// listResponse is the body shape of every collection endpoint.
func listResponse(count int, results interface{}) gin.H {
	return gin.H{"count": count, "results": results}
}
