// Package metrics provides Prometheus metrics for the file manager.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filemanager_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filemanager_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Store metrics
	storeEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "filemanager_store_entries",
			Help: "Number of entries in the store by state",
		},
		[]string{"state"},
	)

	storageUsedBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filemanager_storage_used_bytes",
			Help: "Bytes used by entries outside the trash",
		},
	)

	previewsCached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filemanager_previews_cached",
			Help: "Number of image previews held in memory",
		},
	)

	previewEvictions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filemanager_preview_evictions",
			Help: "Previews dropped by the preview cache since start",
		},
	)

	// Upload metrics
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filemanager_uploads_total",
			Help: "Total uploads by path taken",
		},
		[]string{"path"},
	)

	uploadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filemanager_upload_bytes_total",
			Help: "Total bytes declared by uploads",
		},
	)

	previewFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filemanager_preview_failures_total",
			Help: "Preview reads or thumbnail builds that failed",
		},
	)

	// Websocket metrics
	wsClientsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filemanager_ws_clients_active",
			Help: "Number of connected change-feed clients",
		},
	)

	rateLimitHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filemanager_rate_limit_hits_total",
			Help: "Total rate limit rejections (429s)",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetStoreState mirrors the store after a mutation.
func SetStoreState(active int, deleted int, previews int, evictions int, usedBytes int64) {
	storeEntries.WithLabelValues("active").Set(float64(active))
	storeEntries.WithLabelValues("deleted").Set(float64(deleted))
	previewsCached.Set(float64(previews))
	previewEvictions.Set(float64(evictions))
	storageUsedBytes.Set(float64(usedBytes))
}

// RecordUpload records an accepted upload. path is "sync" or "preview".
func RecordUpload(path string, bytes int64) {
	uploadsTotal.WithLabelValues(path).Inc()
	uploadBytesTotal.Add(float64(bytes))
}

func RecordPreviewFailure() {
	previewFailuresTotal.Inc()
}

func WSClientConnected() {
	wsClientsActive.Inc()
}

func WSClientDisconnected() {
	wsClientsActive.Dec()
}

func RecordRateLimitHit() {
	rateLimitHitsTotal.Inc()
}
