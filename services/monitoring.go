package services

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	serviceContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	MONITORING_SVC          = "monitoring_svc"
	SERVICE_NAME            = "lumen_api"
	DEFAULT_PROMETHEUS_PORT = 2112
)

// HTTP Metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	httpRequestsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_failed_total",
			Help: "Total failed HTTP requests (4xx, 5xx status codes)",
		},
		[]string{"endpoint", "method"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Progress & gamification metrics
var (
	masteryEventsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mastery_events_total",
			Help: "Total topic practice events recorded",
		},
	)

	recommendationsServedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total recommendations returned to users",
		},
	)

	badgesAwardedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badges_awarded_total",
			Help: "Total badges awarded",
		},
		[]string{"category"},
	)

	coinsAwardedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coins_awarded_total",
			Help: "Total coins credited to users",
		},
	)

	xpGrantedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "xp_granted_total",
			Help: "Total XP granted to users",
		},
	)

	streakResetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "streak_resets_total",
			Help: "Total daily streaks broken and reset to 1",
		},
	)
)

// System Metrics
var (
	heapAllocBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "heap_alloc_bytes",
			Help: "Heap memory allocated in bytes",
		},
	)

	heapSysBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "heap_sys_bytes",
			Help: "Heap memory obtained from system in bytes",
		},
	)

	gcTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gc_total",
			Help: "Total number of garbage collections",
		},
	)
)

type MonitoringService struct {
	serviceContext.DefaultService

	port     int
	register *prometheus.Registry

	closed      chan struct{}
	server      *fiber.App
	lastGCCount uint32
}

func (svc *MonitoringService) Id() string {
	return MONITORING_SVC
}

func (svc *MonitoringService) Start() error {
	svc.closed = make(chan struct{}, 1)

	portStr := os.Getenv("PROMETHEUS_PORT")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = DEFAULT_PROMETHEUS_PORT
	}
	svc.port = port

	reg := prometheus.NewRegistry()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	reg.MustRegister(
		httpRequestsTotal,
		httpRequestsFailedTotal,
		httpRequestDurationSeconds,
		masteryEventsTotal,
		recommendationsServedTotal,
		badgesAwardedTotal,
		coinsAwardedTotal,
		xpGrantedTotal,
		streakResetsTotal,
		heapAllocBytes,
		heapSysBytes,
		gcTotal,
	)

	svc.register = reg

	go svc.updateMemoryMetrics()

	config := fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		},
	}

	svc.server = fiber.New(config)
	svc.server.Use(recover.New())

	svc.server.Get("/metrics", svc.metricsHandler)
	svc.server.Get("/health", svc.healthHandler)

	log.Info().Int("port", svc.port).Msg("Prometheus metrics server started")
	return svc.server.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *MonitoringService) Shutdown() {
	svc.closed <- struct{}{}
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *MonitoringService) metricsHandler(c *fiber.Ctx) error {
	handler := promhttp.HandlerFor(svc.register, promhttp.HandlerOpts{})
	return adaptor.HTTPHandler(handler)(c)
}

func (svc *MonitoringService) healthHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "healthy",
		"service":   SERVICE_NAME,
		"timestamp": time.Now().Unix(),
	})
}

// updateMemoryMetrics updates memory-related metrics every 15 seconds
func (svc *MonitoringService) updateMemoryMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			heapAllocBytes.Set(float64(m.Alloc))
			heapSysBytes.Set(float64(m.Sys))

			if m.NumGC > svc.lastGCCount {
				gcTotal.Add(float64(m.NumGC - svc.lastGCCount))
				svc.lastGCCount = m.NumGC
			}

		case <-svc.closed:
			log.Info().Msg("Memory metrics updater stopped")
			return
		}
	}
}

// RecordMasteryEvent counts one topic practice event.
func (svc *MonitoringService) RecordMasteryEvent() {
	masteryEventsTotal.Inc()
}

// RecordRecommendations counts recommendations returned to a user.
func (svc *MonitoringService) RecordRecommendations(n int) {
	recommendationsServedTotal.Add(float64(n))
}

// RecordBadgeAwarded counts an awarded badge by category.
func (svc *MonitoringService) RecordBadgeAwarded(category string) {
	badgesAwardedTotal.WithLabelValues(category).Inc()
}

// RecordCoinsAwarded counts coins credited to a user. Deductions are not counted.
func (svc *MonitoringService) RecordCoinsAwarded(amount int) {
	if amount > 0 {
		coinsAwardedTotal.Add(float64(amount))
	}
}

// RecordXPGranted counts XP granted to a user.
func (svc *MonitoringService) RecordXPGranted(amount int) {
	xpGrantedTotal.Add(float64(amount))
}

// RecordStreakReset counts a broken daily streak.
func (svc *MonitoringService) RecordStreakReset() {
	streakResetsTotal.Inc()
}

// RecordRequest records HTTP request metrics
func (svc *MonitoringService) RecordRequest(method, endpoint, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	httpRequestDurationSeconds.WithLabelValues(endpoint, method, status).Observe(duration.Seconds())

	statusCode, _ := strconv.Atoi(status)
	if statusCode >= 400 {
		httpRequestsFailedTotal.WithLabelValues(endpoint, method).Inc()
	}
}

// MonitoringMiddleware creates a Fiber middleware for monitoring HTTP requests
func MonitoringMiddleware(monitoringSvc *MonitoringService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		method := c.Method()

		err := c.Next()

		endpoint := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		monitoringSvc.RecordRequest(method, endpoint, status, time.Since(start))

		return err
	}
}
