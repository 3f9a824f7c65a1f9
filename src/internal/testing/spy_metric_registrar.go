package testing

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// SpyMetricRegistrar keeps metric values in memory. Values are tracked per
// name and per name plus label values.
type SpyMetricRegistrar struct {
	sync.Mutex

	metrics    map[string]float64
	histograms map[string]*SpyHistogramObserver
	registry   *prometheus.Registry
}

type SpyHistogramObserver struct {
	sync.Mutex
	Observations []float64
}

func NewSpyMetricRegistrar() *SpyMetricRegistrar {
	return &SpyMetricRegistrar{
		metrics:    make(map[string]float64),
		histograms: make(map[string]*SpyHistogramObserver),
		registry:   prometheus.NewRegistry(),
	}
}

func (r *SpyMetricRegistrar) Registerer() prometheus.Registerer {
	return r.registry
}

func (r *SpyMetricRegistrar) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *SpyMetricRegistrar) Set(name string, value float64, labels ...string) {
	r.Lock()
	defer r.Unlock()

	r.metrics[name] = value
	if len(labels) > 0 {
		r.metrics[labelledKey(name, labels)] = value
	}
}

func (r *SpyMetricRegistrar) Add(name string, delta float64, labels ...string) {
	r.Lock()
	defer r.Unlock()

	r.metrics[name] += delta
	if len(labels) > 0 {
		r.metrics[labelledKey(name, labels)] += delta
	}
}

func (r *SpyMetricRegistrar) Inc(name string, labels ...string) {
	r.Add(name, 1, labels...)
}

func (s *SpyHistogramObserver) Observe(value float64) {
	s.Lock()
	defer s.Unlock()
	s.Observations = append(s.Observations, value)
}

func (r *SpyMetricRegistrar) Histogram(name string, labels ...string) prometheus.Observer {
	r.Lock()
	defer r.Unlock()

	spy, ok := r.histograms[name]
	if ok {
		return spy
	}

	spy = &SpyHistogramObserver{}
	r.histograms[name] = spy
	return spy
}

// Fetch returns a poller for the metric, for use with Eventually.
func (r *SpyMetricRegistrar) Fetch(name string, labels ...string) func() float64 {
	key := name
	if len(labels) > 0 {
		key = labelledKey(name, labels)
	}

	return func() float64 {
		r.Lock()
		defer r.Unlock()

		return r.metrics[key]
	}
}

func (r *SpyMetricRegistrar) FetchHistogram(name string) func() []float64 {
	return func() []float64 {
		r.Lock()
		defer r.Unlock()

		spy, found := r.histograms[name]
		if !found {
			return []float64{}
		}

		spy.Lock()
		defer spy.Unlock()
		return append([]float64(nil), spy.Observations...)
	}
}

func labelledKey(name string, labels []string) string {
	return name + "{" + strings.Join(labels, ",") + "}"
}
