// Package metrics はPrometheusメトリクスの収集と公開を提供します。
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels shared by the domain counters.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Collector はHTTPリクエストと予約・決済まわりのメトリクスを収集します。
type Collector struct {
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	checkout        *prometheus.CounterVec
	webhookEvents   *prometheus.CounterVec
	reservations    prometheus.Counter
	signups         prometheus.Counter
	verifications   prometheus.Counter
	verificationBad *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録します。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lodging_http_requests_total",
			Help: "HTTPリクエスト数",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lodging_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		checkout: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lodging_checkout_sessions_total",
			Help: "決済セッション作成の結果別件数",
		}, []string{"result"}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lodging_webhook_events_total",
			Help: "決済Webhookイベントの種別・処理結果別件数",
		}, []string{"type", "outcome"}),
		reservations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lodging_reservations_created_total",
			Help: "作成された予約数",
		}),
		signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lodging_signups_total",
			Help: "会員登録（認証メール送信済み）数",
		}),
		verifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lodging_user_verifications_total",
			Help: "メール認証が完了したユーザー数",
		}),
		verificationBad: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lodging_user_verification_failures_total",
			Help: "メール認証の失敗数",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		c.requests,
		c.duration,
		c.checkout,
		c.webhookEvents,
		c.reservations,
		c.signups,
		c.verifications,
		c.verificationBad,
	)
	return c
}

// Middleware はリクエスト数と処理時間を記録するginミドルウェアです。
// パスはルート定義（/houses/:id）で集計し、未定義ルートは "unmatched" にまとめます。
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := ctx.Request.Method
		c.requests.WithLabelValues(method, path, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.duration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordCheckoutSession は決済セッション作成の成否を記録します。
func (c *Collector) RecordCheckoutSession(result string) {
	c.checkout.WithLabelValues(result).Inc()
}

// RecordWebhookEvent はWebhookイベントの処理結果を記録します。
func (c *Collector) RecordWebhookEvent(eventType, outcome string) {
	c.webhookEvents.WithLabelValues(eventType, outcome).Inc()
}

// RecordReservationCreated は予約作成を記録します。
func (c *Collector) RecordReservationCreated() {
	c.reservations.Inc()
}

// RecordSignup は会員登録を記録します。
func (c *Collector) RecordSignup() {
	c.signups.Inc()
}

// RecordVerification はメール認証の結果を記録します。reason が空なら成功です。
func (c *Collector) RecordVerification(reason string) {
	if reason == "" {
		c.verifications.Inc()
		return
	}
	c.verificationBad.WithLabelValues(reason).Inc()
}

// Handler はPrometheusスクレイプ用のハンドラーを返します。
func Handler(gatherer prometheus.Gatherer) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

// Noop はメトリクスを記録しない実装です。テストやメトリクス不要な構成で使います。
type Noop struct{}

func (Noop) RecordCheckoutSession(string)      {}
func (Noop) RecordWebhookEvent(string, string) {}
func (Noop) RecordReservationCreated()         {}
func (Noop) RecordSignup()                     {}
func (Noop) RecordVerification(string)         {}
