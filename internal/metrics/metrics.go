package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "teamup_http_requests_total", Help: "HTTP requests by route and status"},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "teamup_http_request_duration_seconds", Help: "HTTP request latency", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	Votes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "teamup_votes_total", Help: "Project vote toggles by outcome"},
		[]string{"action"}, // like, unlike
	)
	JoinRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "teamup_join_requests_total", Help: "Join request lifecycle events"},
		[]string{"event"}, // submitted, withdrawn, approved, declined
	)
	CommentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "teamup_comments_created_total", Help: "Comments posted"},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequests, HTTPDuration, Votes, JoinRequests, CommentsCreated)
	})
}

// RegisterStoreGauges exposes table sizes read at scrape time.
func RegisterStoreGauges(db *gorm.DB) {
	count := func(table string) func() float64 {
		return func() float64 {
			var n int64
			if err := db.Table(table).Count(&n).Error; err != nil {
				return 0
			}
			return float64(n)
		}
	}
	for _, table := range []string{"users", "projects", "join_requests", "comments"} {
		_ = prometheus.Register(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name:        "teamup_store_rows",
				Help:        "Rows per table",
				ConstLabels: prometheus.Labels{"table": table},
			},
			count(table),
		))
	}
}

// Middleware records request count and latency keyed by the route pattern.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
