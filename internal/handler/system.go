package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type SystemHandler struct {
	db     Pinger
	logger *zap.Logger
}

func NewSystemHandler(db Pinger, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		db:     db,
		logger: logger,
	}
}

func (h *SystemHandler) Health(c *gin.Context) {
	dbHealthy := true
	if err := h.db.Ping(c.Request.Context()); err != nil {
		dbHealthy = false
		h.logger.Error("Database health check failed", zap.Error(err))
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !dbHealthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status":    status,
		"service":   "finalfeedback",
		"timestamp": time.Now().Unix(),
		"checks": gin.H{
			"database": dbHealthy,
		},
	})
}
