package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bagoloot/bagoloot/db"
	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	status := http.StatusOK
	database := "ok"

	if err := db.Ping(c.Request.Context(), 0); err != nil {
		slog.Warn("Health check database ping failed", "error", err)
		status = http.StatusServiceUnavailable
		database = err.Error()
	}

	c.JSON(status, gin.H{
		"status":    http.StatusText(status),
		"database":  database,
		"message":   "Bag o' Loot is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
