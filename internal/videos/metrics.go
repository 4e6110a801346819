package videos

import (
	"sync/atomic"
	"time"
)

// Metrics tracks catalog provider calls.
type Metrics struct {
	providerCalls   int64
	providerErrors  int64
	providerLatency int64 // total latency in nanoseconds
	cacheHits       int64
	cacheMisses     int64
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		providerCalls:   atomic.LoadInt64(&globalMetrics.providerCalls),
		providerErrors:  atomic.LoadInt64(&globalMetrics.providerErrors),
		providerLatency: atomic.LoadInt64(&globalMetrics.providerLatency),
		cacheHits:       atomic.LoadInt64(&globalMetrics.cacheHits),
		cacheMisses:     atomic.LoadInt64(&globalMetrics.cacheMisses),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.providerCalls, 0)
	atomic.StoreInt64(&globalMetrics.providerErrors, 0)
	atomic.StoreInt64(&globalMetrics.providerLatency, 0)
	atomic.StoreInt64(&globalMetrics.cacheHits, 0)
	atomic.StoreInt64(&globalMetrics.cacheMisses, 0)
}

func recordProviderCall(duration time.Duration, err error) {
	atomic.AddInt64(&globalMetrics.providerCalls, 1)
	atomic.AddInt64(&globalMetrics.providerLatency, duration.Nanoseconds())
	if err != nil {
		atomic.AddInt64(&globalMetrics.providerErrors, 1)
	}
}

func recordCacheHit()  { atomic.AddInt64(&globalMetrics.cacheHits, 1) }
func recordCacheMiss() { atomic.AddInt64(&globalMetrics.cacheMisses, 1) }

// AverageProviderLatency returns the average latency in milliseconds
func (m Metrics) AverageProviderLatency() float64 {
	if m.providerCalls == 0 {
		return 0
	}
	avgNs := float64(m.providerLatency) / float64(m.providerCalls)
	return avgNs / 1e6
}

// ProviderErrorRate returns the error rate as a percentage
func (m Metrics) ProviderErrorRate() float64 {
	if m.providerCalls == 0 {
		return 0
	}
	return float64(m.providerErrors) / float64(m.providerCalls) * 100
}

// CacheHitRate returns the cache hit rate as a percentage
func (m Metrics) CacheHitRate() float64 {
	total := m.cacheHits + m.cacheMisses
	if total == 0 {
		return 0
	}
	return float64(m.cacheHits) / float64(total) * 100
}
