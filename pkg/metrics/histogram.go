package metrics

import (
	"math"
	"sort"
	"sync"
)

// LatencyBuckets are the default upper bounds, in microseconds, of the
// validation latency histogram. A Kyber-1024 round trip on commodity
// hardware lands between 50µs and 500µs.
var LatencyBuckets = []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// Histogram tracks the distribution of observations across fixed buckets.
// It is safe for concurrent use.
type Histogram struct {
	mu     sync.RWMutex
	bounds []float64
	counts []uint64 // len(bounds)+1, last is the +Inf bucket
	sum    float64
	count  uint64
	min    float64
	max    float64
}

// NewHistogram creates a histogram with the given bucket upper bounds.
func NewHistogram(bounds []float64) *Histogram {
	b := make([]float64, len(bounds))
	copy(b, bounds)
	sort.Float64s(b)

	return &Histogram{
		bounds: b,
		counts: make([]uint64, len(b)+1),
		min:    math.MaxFloat64,
		max:    -math.MaxFloat64,
	}
}

// Observe records a value.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.counts[sort.SearchFloat64s(h.bounds, v)]++
	h.sum += v
	h.count++
	h.min = math.Min(h.min, v)
	h.max = math.Max(h.max, v)
}

// HistogramSummary is a point-in-time view of a Histogram.
type HistogramSummary struct {
	Count   uint64        `json:"count"`
	Sum     float64       `json:"sum"`
	Min     float64       `json:"min"`
	Max     float64       `json:"max"`
	Mean    float64       `json:"mean"`
	P50     float64       `json:"p50"`
	P90     float64       `json:"p90"`
	P99     float64       `json:"p99"`
	Buckets []BucketCount `json:"buckets"`
}

// BucketCount is a cumulative bucket count.
type BucketCount struct {
	UpperBound float64 `json:"le"`
	Count      uint64  `json:"count"`
}

// Summary returns the current distribution. Bucket counts are cumulative
// and the last bucket has an infinite upper bound.
func (h *Histogram) Summary() HistogramSummary {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buckets := make([]BucketCount, len(h.counts))
	var cumulative uint64
	for i, c := range h.counts {
		cumulative += c
		bound := math.Inf(1)
		if i < len(h.bounds) {
			bound = h.bounds[i]
		}
		buckets[i] = BucketCount{UpperBound: bound, Count: cumulative}
	}

	if h.count == 0 {
		return HistogramSummary{Buckets: buckets}
	}

	return HistogramSummary{
		Count:   h.count,
		Sum:     h.sum,
		Min:     h.min,
		Max:     h.max,
		Mean:    h.sum / float64(h.count),
		P50:     h.quantile(0.50),
		P90:     h.quantile(0.90),
		P99:     h.quantile(0.99),
		Buckets: buckets,
	}
}

// quantile estimates the q-th quantile by linear interpolation inside the
// bucket holding the target rank. Caller holds h.mu.
func (h *Histogram) quantile(q float64) float64 {
	rank := q * float64(h.count)
	var cumulative uint64
	for i, c := range h.counts {
		prev := cumulative
		cumulative += c
		if c == 0 || float64(cumulative) < rank {
			continue
		}
		if i >= len(h.bounds) {
			return h.max
		}
		lower := 0.0
		if i > 0 {
			lower = h.bounds[i-1]
		}
		upper := h.bounds[i]
		frac := (rank - float64(prev)) / float64(c)
		return math.Min(lower+frac*(upper-lower), h.max)
	}
	return h.max
}

// Reset clears all observations.
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clear(h.counts)
	h.sum = 0
	h.count = 0
	h.min = math.MaxFloat64
	h.max = -math.MaxFloat64
}

// Count returns the number of observations.
func (h *Histogram) Count() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}
