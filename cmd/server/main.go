// Package main is the entry point for the Onchain Wrapped server, which
// aggregates a wallet's yearly multi-chain activity into one shareable
// year-in-review record.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourorg/onchain-wrapped/internal/config"
	"github.com/yourorg/onchain-wrapped/internal/fetch"
	"github.com/yourorg/onchain-wrapped/internal/ipfs"
	"github.com/yourorg/onchain-wrapped/internal/otel"
	"github.com/yourorg/onchain-wrapped/internal/report"
)

// startTime records when the service was initialized for uptime reporting
var startTime = time.Now()

// Server holds the wired service components.
type Server struct {
	cfg       config.Config
	covalent  fetch.API
	pinata    *ipfs.Pinata
	rateLimit *rate.Limiter
	metrics   *serverMetrics
	server    *http.Server
}

// serverMetrics holds Prometheus metrics for the server
type serverMetrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	totalTx         prometheus.Gauge
	activeChains    prometheus.Gauge
}

// registerMetrics sets up Prometheus metrics collection
func registerMetrics() *serverMetrics {
	m := newServerMetrics()

	prometheus.MustRegister(
		m.requestCounter,
		m.requestDuration,
		m.totalTx,
		m.activeChains,
	)

	return m
}

func newServerMetrics() *serverMetrics {
	return &serverMetrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wrapped_requests_total",
				Help: "Total number of requests processed",
			},
			[]string{"endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wrapped_request_duration_seconds",
				Help:    "Request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		totalTx: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wrapped_last_total_tx",
				Help: "Transaction count of the most recent aggregation",
			},
		),
		activeChains: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wrapped_last_active_chains",
				Help: "Active chain count of the most recent aggregation",
			},
		),
	}
}

func main() {
	setupLogging()

	cfg := config.Load()
	shutdownTracer := otel.InitTracer(cfg.OtelEndpoint)
	defer shutdownTracer()

	server := NewServer(cfg)
	server.Start()
}

// NewServer wires a server instance from configuration.
func NewServer(cfg config.Config) *Server {
	s := &Server{
		cfg:       cfg,
		covalent:  fetch.NewClient(cfg.CovalentURL, cfg.CovalentAPIKey, cfg.PageSize),
		pinata:    ipfs.NewPinata(cfg.PinataURL, cfg.PinataJWT),
		rateLimit: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		metrics:   registerMetrics(),
	}

	logrus.WithFields(logrus.Fields{
		"port":         cfg.Port,
		"target_year":  cfg.TargetYear,
		"fetch_budget": cfg.FetchBudget,
		"page_size":    cfg.PageSize,
	}).Info("Server initialized")

	return s
}

// Start begins the HTTP server and sets up graceful shutdown
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/wrapped", s.handleWrapped)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/status", s.handleStatus)
	mux.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Server starting on port %s", s.cfg.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server shutdown failed: %v", err)
	}

	logrus.Info("Server stopped")
}

// handleWrapped aggregates the address's target-year activity and responds
// with the year-in-review record.
func (s *Server) handleWrapped(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.rateLimit.Allow() {
		s.errorResponse(w, "wrapped", http.StatusTooManyRequests, "Rate limit exceeded")
		return
	}

	address := r.URL.Query().Get("address")
	if address == "" {
		s.errorResponse(w, "wrapped", http.StatusBadRequest, "Address required")
		return
	}
	if !ethcommon.IsHexAddress(address) {
		s.errorResponse(w, "wrapped", http.StatusBadRequest, "Invalid address")
		return
	}
	if s.cfg.CovalentAPIKey == "" {
		s.errorResponse(w, "wrapped", http.StatusBadRequest, "API key missing")
		return
	}

	// Checksummed form so the same wallet always echoes identically.
	address = ethcommon.HexToAddress(address).Hex()

	// Per-chain failures degrade to partial stats inside the fetch layer;
	// anything escaping to here is unexpected and surfaces as a plain 500.
	defer func() {
		if rec := recover(); rec != nil {
			logrus.WithField("panic", rec).Error("Aggregation failed")
			s.errorResponse(w, "wrapped", http.StatusInternalServerError, "Failed to fetch data")
		}
	}()

	agg := fetch.Aggregate(r.Context(), s.covalent, address, s.cfg.FetchBudget, s.cfg.TargetYear)
	result := report.Build(address, s.cfg.TargetYear, agg)

	s.metrics.totalTx.Set(float64(agg.TotalTx))
	s.metrics.activeChains.Set(float64(agg.ActiveChains))
	s.metrics.requestCounter.WithLabelValues("wrapped", "success").Inc()
	s.metrics.requestDuration.WithLabelValues("wrapped").Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, result)
}

// handleUpload pins mint metadata JSON to IPFS and returns the resulting URI.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var meta ipfs.Metadata
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		s.errorResponse(w, "upload", http.StatusBadRequest, "Invalid request body")
		return
	}
	meta.ApplyDefaults()

	cid, err := s.pinata.PinJSON(r.Context(), meta)
	if err != nil {
		logrus.WithError(err).Error("IPFS upload failed")
		s.errorResponse(w, "upload", http.StatusInternalServerError, "Internal Server Error during IPFS upload")
		return
	}

	s.metrics.requestCounter.WithLabelValues("upload", "success").Inc()
	s.metrics.requestDuration.WithLabelValues("upload").Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"ipfsUri": "ipfs://" + cid,
	})
}

// handleHealth is a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStatus provides detailed service status information
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "operational",
		"uptime":  time.Since(startTime).String(),
		"version": "1.0.0",
		"configuration": map[string]interface{}{
			"target_year":  s.cfg.TargetYear,
			"fetch_budget": s.cfg.FetchBudget.String(),
			"page_size":    s.cfg.PageSize,
		},
	})
}

// errorResponse returns a formatted error response and records it.
func (s *Server) errorResponse(w http.ResponseWriter, endpoint string, statusCode int, msg string) {
	logrus.Warn(msg)
	s.metrics.requestCounter.WithLabelValues(endpoint, "error").Inc()
	writeJSON(w, statusCode, map[string]string{"error": msg})
}
