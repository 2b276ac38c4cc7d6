package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics serves the default Prometheus registry.
// GET /api/metrics
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
