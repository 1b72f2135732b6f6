// Package metrics 提供 Prometheus helper，包含常用 counter/gauge/histogram 模板
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/khamyang/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 数据库查询计数
	DBQueriesTotal prometheus.Counter
	// 数据库查询耗时
	DBQueryDuration prometheus.Histogram

	// 业务指标
	UserRegistrationsTotal   prometheus.Counter
	SellerRegistrationsTotal prometheus.Counter
	LoginsTotal              prometheus.Counter
	WordsTotal               prometheus.Counter
	SongsTotal               prometheus.Counter
	ProductsTotal            prometheus.Counter
	AudioUploadsTotal        prometheus.Counter
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khamyang",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "khamyang",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		DBQueriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khamyang",
			Subsystem: serviceName,
			Name:      "db_queries_total",
			Help:      "Total database queries",
		}),
		DBQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "khamyang",
			Subsystem: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		UserRegistrationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khamyang",
			Subsystem: serviceName,
			Name:      "user_registrations_total",
			Help:      "Total user registrations",
		}),
		SellerRegistrationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khamyang",
			Subsystem: serviceName,
			Name:      "seller_registrations_total",
			Help:      "Total seller registrations",
		}),
		LoginsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khamyang",
			Subsystem: serviceName,
			Name:      "logins_total",
			Help:      "Total successful logins across identity classes",
		}),
		WordsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khamyang",
			Subsystem: serviceName,
			Name:      "words_created_total",
			Help:      "Total dictionary words created",
		}),
		SongsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khamyang",
			Subsystem: serviceName,
			Name:      "songs_created_total",
			Help:      "Total songs created",
		}),
		ProductsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khamyang",
			Subsystem: serviceName,
			Name:      "products_created_total",
			Help:      "Total products created",
		}),
		AudioUploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khamyang",
			Subsystem: serviceName,
			Name:      "audio_uploads_total",
			Help:      "Total audio files stored",
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.UserRegistrationsTotal,
		m.SellerRegistrationsTotal,
		m.LoginsTotal,
		m.WordsTotal,
		m.SongsTotal,
		m.ProductsTotal,
		m.AudioUploadsTotal,
	}

	for _, c := range collectors {
		if err := prometheus.DefaultRegisterer.Register(c); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}

	logger.Info(context.Background(), "Metrics registered successfully")
	return nil
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) error {
	if path == "" {
		path = "/metrics"
	}

	http.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Error(context.Background(), "Failed to start Prometheus HTTP server", "error", err)
		}
	}()

	return nil
}
