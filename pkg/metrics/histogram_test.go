package metrics

import (
	"math"
	"sync"
	"testing"
)

func TestHistogramSummary(t *testing.T) {
	h := NewHistogram([]float64{10, 50, 100})

	h.Observe(5)
	h.Observe(15)
	h.Observe(60)
	h.Observe(150)

	s := h.Summary()
	if s.Count != 4 {
		t.Errorf("count = %d, want 4", s.Count)
	}
	if s.Min != 5 || s.Max != 150 {
		t.Errorf("min/max = %v/%v, want 5/150", s.Min, s.Max)
	}
	if s.Sum != 230 {
		t.Errorf("sum = %v, want 230", s.Sum)
	}
	if s.Mean != 57.5 {
		t.Errorf("mean = %v, want 57.5", s.Mean)
	}

	want := []BucketCount{{10, 1}, {50, 2}, {100, 3}, {math.Inf(1), 4}}
	if len(s.Buckets) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(s.Buckets), len(want))
	}
	for i, b := range want {
		if s.Buckets[i] != b {
			t.Errorf("bucket %d = %+v, want %+v", i, s.Buckets[i], b)
		}
	}
}

func TestHistogramEmpty(t *testing.T) {
	h := NewHistogram([]float64{10, 100})
	s := h.Summary()

	if s.Count != 0 || s.Mean != 0 || s.P99 != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	if len(s.Buckets) != 3 {
		t.Errorf("got %d buckets, want 3", len(s.Buckets))
	}
	for _, b := range s.Buckets {
		if b.Count != 0 {
			t.Errorf("bucket %v has count %d", b.UpperBound, b.Count)
		}
	}
}

func TestHistogramQuantiles(t *testing.T) {
	h := NewHistogram([]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100})
	for i := 1; i <= 100; i++ {
		h.Observe(float64(i))
	}

	s := h.Summary()
	for _, tc := range []struct {
		name     string
		got, exp float64
	}{
		{"p50", s.P50, 50},
		{"p90", s.P90, 90},
		{"p99", s.P99, 99},
	} {
		if math.Abs(tc.got-tc.exp) > 1 {
			t.Errorf("%s = %v, want ~%v", tc.name, tc.got, tc.exp)
		}
	}
	if s.P50 > s.P90 || s.P90 > s.P99 {
		t.Errorf("quantiles not monotonic: %v %v %v", s.P50, s.P90, s.P99)
	}
}

func TestHistogramQuantileOverflow(t *testing.T) {
	h := NewHistogram([]float64{10})
	h.Observe(500)
	h.Observe(700)

	if got := h.Summary().P99; got != 700 {
		t.Errorf("p99 = %v, want max 700", got)
	}
}

func TestHistogramReset(t *testing.T) {
	h := NewHistogram([]float64{10})
	h.Observe(1)
	h.Observe(100)
	h.Reset()

	if h.Count() != 0 {
		t.Errorf("count after reset = %d", h.Count())
	}
	h.Observe(3)
	s := h.Summary()
	if s.Min != 3 || s.Max != 3 {
		t.Errorf("min/max after reset = %v/%v, want 3/3", s.Min, s.Max)
	}
}

func TestHistogramUnsortedBounds(t *testing.T) {
	h := NewHistogram([]float64{100, 10, 50})
	h.Observe(20)

	s := h.Summary()
	if s.Buckets[0].UpperBound != 10 || s.Buckets[1].Count != 1 {
		t.Errorf("bounds not sorted: %+v", s.Buckets)
	}
}

func TestHistogramConcurrency(t *testing.T) {
	h := NewHistogram(LatencyBuckets)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				h.Observe(float64(i))
			}
		}()
	}
	wg.Wait()

	if h.Count() != 8000 {
		t.Errorf("count = %d, want 8000", h.Count())
	}
}
