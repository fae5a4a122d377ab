// Package metrics 定价引擎的 Prometheus 指标，所有方法对 nil 接收者安全。
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "duomart"

// PricingMetrics 定价相关指标
type PricingMetrics struct {
	resolveTotal    *prometheus.CounterVec
	resolveDuration prometheus.Histogram
	mutationTotal   *prometheus.CounterVec
	txRetries       *prometheus.CounterVec
	invalidations   *prometheus.CounterVec
	jobDuration     *prometheus.HistogramVec
	jobResult       *prometheus.CounterVec
	gatherer        prometheus.Gatherer
}

// NewPricingMetrics 在给定 registry 上注册定价指标；reg 为 nil 时返回不记录的实例
func NewPricingMetrics(reg *prometheus.Registry) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	resolveTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_resolve_total",
		Help:      "Price resolutions by selection mode and cache outcome.",
	}, []string{"selection", "cache"})
	resolveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "price_resolve_duration_seconds",
		Help:      "Latency of price resolution including cache lookups.",
		Buckets:   prometheus.DefBuckets,
	})
	mutationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pricing_mutation_total",
		Help:      "Pricing strategy mutations by operation and result.",
	}, []string{"operation", "result"})
	txRetries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pricing_tx_retry_total",
		Help:      "Pricing transactions retried after serialization conflicts.",
	}, []string{"operation"})
	invalidations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pricing_invalidation_total",
		Help:      "Pricing change notifications by delivery mode.",
	}, []string{"mode"})
	jobDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "job_duration_seconds",
		Help:      "Duration of scheduled jobs in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})
	jobResult := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_result_total",
		Help:      "Scheduled job executions by result.",
	}, []string{"job", "result"})
	reg.MustRegister(resolveTotal, resolveDuration, mutationTotal, txRetries, invalidations, jobDuration, jobResult)
	return &PricingMetrics{
		resolveTotal:    resolveTotal,
		resolveDuration: resolveDuration,
		mutationTotal:   mutationTotal,
		txRetries:       txRetries,
		invalidations:   invalidations,
		jobDuration:     jobDuration,
		jobResult:       jobResult,
		gatherer:        reg,
	}
}

// ObserveResolve 记录一次价格解析
func (m *PricingMetrics) ObserveResolve(selection string, cacheHit bool, duration time.Duration) {
	if m == nil || m.resolveTotal == nil {
		return
	}
	cacheLabel := "miss"
	if cacheHit {
		cacheLabel = "hit"
	}
	m.resolveTotal.WithLabelValues(normalizeLabel(selection), cacheLabel).Inc()
	m.resolveDuration.Observe(duration.Seconds())
}

// IncMutation 记录一次策略变更
func (m *PricingMetrics) IncMutation(operation string, err error) {
	if m == nil || m.mutationTotal == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.mutationTotal.WithLabelValues(normalizeLabel(operation), result).Inc()
}

// IncTxRetry 记录一次事务重试
func (m *PricingMetrics) IncTxRetry(operation string) {
	if m == nil || m.txRetries == nil {
		return
	}
	m.txRetries.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncInvalidation 记录一次缓存失效通知（queued / direct / failed）
func (m *PricingMetrics) IncInvalidation(mode string) {
	if m == nil || m.invalidations == nil {
		return
	}
	m.invalidations.WithLabelValues(normalizeLabel(mode)).Inc()
}

// ObserveJob 记录定时任务执行
func (m *PricingMetrics) ObserveJob(job string, duration time.Duration, err error) {
	if m == nil || m.jobDuration == nil {
		return
	}
	job = normalizeLabel(job)
	m.jobDuration.WithLabelValues(job).Observe(duration.Seconds())
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.jobResult.WithLabelValues(job, result).Inc()
}

// Handler 返回 /metrics 的 HTTP 处理器
func (m *PricingMetrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// NewRegistry 创建带进程与 Go 运行时指标的 registry
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
