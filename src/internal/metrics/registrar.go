package metrics

import (
	"github.com/cloudfoundry/ticks-release/src/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRegistrar owns the Prometheus collectors served by the metrics
// server. Metric names are fixed when the registrar is built; updating a
// name that was never registered panics.
type PrometheusRegistrar struct {
	registry *prometheus.Registry
	log      *logger.Logger

	sourceID    string
	constLabels map[string]string

	counters      map[string]prometheus.Counter
	counterVecs   map[string]*prometheus.CounterVec
	gauges        map[string]prometheus.Gauge
	histograms    map[string]prometheus.Histogram
	histogramVecs map[string]*prometheus.HistogramVec
}

// NewRegistrar returns a registrar backed by a fresh registry that already
// carries the process and Go runtime collectors.
func NewRegistrar(
	log *logger.Logger,
	sourceID string,
	opts ...RegistrarOption,
) *PrometheusRegistrar {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())

	r := &PrometheusRegistrar{
		log:           log,
		registry:      registry,
		sourceID:      sourceID,
		constLabels:   make(map[string]string),
		counters:      make(map[string]prometheus.Counter),
		counterVecs:   make(map[string]*prometheus.CounterVec),
		gauges:        make(map[string]prometheus.Gauge),
		histograms:    make(map[string]prometheus.Histogram),
		histogramVecs: make(map[string]*prometheus.HistogramVec),
	}

	for _, o := range opts {
		o(r)
	}

	return r
}

func (r *PrometheusRegistrar) Registerer() prometheus.Registerer {
	return r.registry
}

func (r *PrometheusRegistrar) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Set sets the gauge with the given name.
func (r *PrometheusRegistrar) Set(name string, value float64, labels ...string) {
	g, ok := r.gauges[name]
	if !ok {
		r.log.Panic("Set called for unknown metric", logger.String("name", name))
	}

	g.Set(value)
}

// Inc increments the counter with the given name by 1.
func (r *PrometheusRegistrar) Inc(name string, labels ...string) {
	r.Add(name, 1, labels...)
}

// Add adds delta to the counter with the given name. Labelled counters need
// one value per label name.
func (r *PrometheusRegistrar) Add(name string, delta float64, labels ...string) {
	if c, ok := r.counters[name]; ok {
		c.Add(delta)
		return
	}

	if cv, ok := r.counterVecs[name]; ok {
		cv.WithLabelValues(labels...).Add(delta)
		return
	}

	r.log.Panic("Add called for unknown metric", logger.String("name", name))
}

// Histogram returns the observer registered under name.
func (r *PrometheusRegistrar) Histogram(name string, labels ...string) prometheus.Observer {
	if h, ok := r.histograms[name]; ok {
		return h
	}

	if hv, ok := r.histogramVecs[name]; ok {
		return hv.WithLabelValues(labels...)
	}

	r.log.Panic("Histogram called for unknown metric", logger.String("name", name))
	return nil
}

// RegistrarOption configures a PrometheusRegistrar on construction.
type RegistrarOption func(*PrometheusRegistrar)

// WithConstLabels adds labels to every metric registered after it.
func WithConstLabels(labels map[string]string) RegistrarOption {
	return func(r *PrometheusRegistrar) {
		for k, v := range labels {
			r.constLabels[k] = v
		}
	}
}

func WithCounter(name string, opts prometheus.CounterOpts) RegistrarOption {
	return func(r *PrometheusRegistrar) {
		opts.Name = name
		opts.ConstLabels = r.commonConstLabels(opts.ConstLabels)

		r.counters[name] = prometheus.NewCounter(opts)
		r.registry.MustRegister(r.counters[name])
	}
}

func WithLabelledCounter(name string, opts prometheus.CounterOpts, labelNames []string) RegistrarOption {
	return func(r *PrometheusRegistrar) {
		opts.Name = name
		opts.ConstLabels = r.commonConstLabels(opts.ConstLabels)

		r.counterVecs[name] = prometheus.NewCounterVec(opts, labelNames)
		r.registry.MustRegister(r.counterVecs[name])
	}
}

func WithGauge(name string, opts prometheus.GaugeOpts) RegistrarOption {
	return func(r *PrometheusRegistrar) {
		opts.Name = name
		opts.ConstLabels = r.commonConstLabels(opts.ConstLabels)

		r.gauges[name] = prometheus.NewGauge(opts)
		r.registry.MustRegister(r.gauges[name])
	}
}

func WithHistogram(name string, opts prometheus.HistogramOpts) RegistrarOption {
	return func(r *PrometheusRegistrar) {
		opts.Name = name
		opts.ConstLabels = r.commonConstLabels(opts.ConstLabels)

		r.histograms[name] = prometheus.NewHistogram(opts)
		r.registry.MustRegister(r.histograms[name])
	}
}

func WithLabelledHistogram(name string, opts prometheus.HistogramOpts, labelNames []string) RegistrarOption {
	return func(r *PrometheusRegistrar) {
		opts.Name = name
		opts.ConstLabels = r.commonConstLabels(opts.ConstLabels)

		r.histogramVecs[name] = prometheus.NewHistogramVec(opts, labelNames)
		r.registry.MustRegister(r.histogramVecs[name])
	}
}

func (r *PrometheusRegistrar) commonConstLabels(constLabels prometheus.Labels) prometheus.Labels {
	labels := make(prometheus.Labels, len(constLabels)+len(r.constLabels)+1)
	for k, v := range constLabels {
		labels[k] = v
	}
	for k, v := range r.constLabels {
		labels[k] = v
	}
	labels["source_id"] = r.sourceID

	return labels
}
