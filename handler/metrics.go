package handler

import (
	"strconv"
	"time"

	"path-system/algo"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics HTTP 与寻路指标
type Metrics struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	routes      *prometheus.CounterVec
	routeMeters prometheus.Histogram
}

// NewMetrics 创建指标并注册到 reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "path",
			Name:      "http_requests_total",
			Help:      "HTTP 请求总数",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "path",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP 请求耗时",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		routes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "path",
			Name:      "routes_total",
			Help:      "寻路次数, 按是否找到路径区分",
		}, []string{"found"}),
		routeMeters: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "path",
			Name:      "route_meters",
			Help:      "找到的路线长度 (米)",
			Buckets:   prometheus.ExponentialBuckets(25, 2, 8),
		}),
	}
	reg.MustRegister(m.requests, m.latency, m.routes, m.routeMeters)
	return m
}

// Middleware 记录每个请求的次数与耗时
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveRoute 记录一次寻路结果
func (m *Metrics) ObserveRoute(result algo.PathResult) {
	m.routes.WithLabelValues(strconv.FormatBool(result.Found)).Inc()
	if result.Found {
		m.routeMeters.Observe(result.Stats.Meters)
	}
}
