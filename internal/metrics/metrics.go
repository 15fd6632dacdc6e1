package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videostream_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "videostream_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Session Metrics
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videostream_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	TokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videostream_token_refreshes_total",
			Help: "Total number of refresh token rotations",
		},
		[]string{"status"},
	)

	// Engagement Metrics
	SubscriptionTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videostream_subscription_toggles_total",
			Help: "Total number of subscription toggles",
		},
		[]string{"action"},
	)

	LikeTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videostream_like_toggles_total",
			Help: "Total number of like toggles",
		},
		[]string{"target", "action"},
	)

	// Upload Metrics
	VideoUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videostream_video_uploads_total",
			Help: "Total number of video uploads",
		},
		[]string{"status"},
	)

	VideoUploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "videostream_video_upload_size_bytes",
			Help:    "Size of uploaded videos in bytes",
			Buckets: prometheus.ExponentialBuckets(1024*1024, 2, 12), // 1MB to 2GB
		},
	)

	// Cache Metrics
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videostream_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videostream_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)
)

// ToggleAction converts a toggle outcome to its metric label.
func ToggleAction(added bool) string {
	if added {
		return "added"
	}
	return "removed"
}
