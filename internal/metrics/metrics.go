package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal 记录 HTTP 请求总量
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration 记录 HTTP 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency distributions.",
		Buckets: []float64{0.1, 0.3, 0.5, 1.0, 2.0, 5.0},
	}, []string{"method", "path"})
)

// 业务指标
var (
	FundablesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qrkot_fundables_created_total",
		Help: "Number of created charity projects and donations",
	}, []string{"kind"})

	AmountPledged = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qrkot_amount_pledged_total",
		Help: "Sum of full_amount of created projects and donations",
	}, []string{"kind"})

	AmountAllocated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qrkot_amount_allocated_total",
		Help: "Total amount moved between donations and projects",
	})

	FundablesClosed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qrkot_fundables_closed_total",
		Help: "Number of projects and donations that became fully invested",
	}, []string{"kind"})

	AllocationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "qrkot_allocation_duration_seconds",
		Help:    "Duration of an allocation pass including the transaction",
		Buckets: prometheus.DefBuckets,
	})

	ReportExports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qrkot_report_exports_total",
		Help: "Spreadsheet export attempts",
	}, []string{"status"})

	AuditViolations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "qrkot_audit_violations",
		Help: "Rows breaking funding invariants found by the last audit",
	})
)

// PrometheusMiddleware gin 请求指标中间件
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath() // 使用路由模板而不是具体路径

		c.Next()

		if path == "" {
			return
		}
		status := strconv.Itoa(c.Writer.Status())
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
