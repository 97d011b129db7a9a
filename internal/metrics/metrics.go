package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Sync Metrics
var (
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRunsTotal,
			Help: HelpTextSyncRunsTotal,
		},
		[]string{LabelFeed, LabelOutcome},
	)

	PostsIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePostsIngestedTotal,
			Help: HelpTextPostsIngestedTotal,
		},
		[]string{LabelFeed},
	)

	IngestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameIngestErrorsTotal,
			Help: HelpTextIngestErrorsTotal,
		},
		[]string{LabelFeed},
	)

	FeedOrderViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFeedOrderViolations,
			Help: HelpTextFeedOrderViolations,
		},
		[]string{LabelFeed},
	)

	FeedCursor = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameFeedCursor,
			Help: HelpTextFeedCursor,
		},
		[]string{LabelFeed},
	)
)

// Token and remote API Metrics
var (
	TokenOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTokenOperationsTotal,
			Help: HelpTextTokenOperationsTotal,
		},
		[]string{LabelOperation, LabelOutcome},
	)

	TokenRefreshDeadline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameTokenRefreshDeadline,
			Help: HelpTextTokenRefreshDeadline,
		},
	)

	RemoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRemoteRequestsTotal,
			Help: HelpTextRemoteRequestsTotal,
		},
		[]string{LabelOperation, LabelOutcome},
	)

	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameRemoteDuration,
			Help:    HelpTextRemoteDuration,
			Buckets: RemoteLatencyBuckets,
		},
		[]string{LabelOperation},
	)
)

// Cache Metrics
var (
	PostCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePostCacheRequests,
			Help: HelpTextPostCacheRequests,
		},
		[]string{LabelResult},
	)

	ThumbnailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameThumbnailsTotal,
			Help: HelpTextThumbnailsTotal,
		},
		[]string{LabelResult},
	)
)

// Worker Metrics
var (
	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameJobDuration,
			Help:    HelpTextJobDuration,
			Buckets: JobDurationBuckets,
		},
		[]string{LabelJob},
	)

	JobFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameJobFailures,
			Help: HelpTextJobFailures,
		},
		[]string{LabelJob},
	)
)
