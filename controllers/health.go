package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

type HealthController struct {
	ping func(ctx context.Context) error
}

func NewHealthController(ping func(ctx context.Context) error) *HealthController {
	return &HealthController{ping: ping}
}

func (hc *HealthController) Register(api *gin.RouterGroup) {
	api.GET("/health", hc.Check)
}

/*
* Report store connectivity and process uptime
 */
func (hc *HealthController) Check(c *gin.Context) {
	overall, database := "ok", "connected"
	status := http.StatusOK
	if err := hc.ping(c.Request.Context()); err != nil {
		overall, database = "degraded", "disconnected"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"status":   overall,
		"database": database,
		"uptime":   time.Since(startedAt).Round(time.Second).String(),
	})
}
