package metrics

import "github.com/prometheus/client_golang/prometheus"

// NullRegistrar accepts every update and records nothing. It is the default
// for components built without metrics.
type NullRegistrar struct {
	registry *prometheus.Registry
}

func NewNullRegistrar() *NullRegistrar {
	return &NullRegistrar{registry: prometheus.NewRegistry()}
}

func (n *NullRegistrar) Registerer() prometheus.Registerer {
	return n.registry
}

func (n *NullRegistrar) Gatherer() prometheus.Gatherer {
	return n.registry
}

func (*NullRegistrar) Set(string, float64, ...string) {}

func (*NullRegistrar) Inc(string, ...string) {}

func (*NullRegistrar) Add(string, float64, ...string) {}

func (*NullRegistrar) Histogram(string, ...string) prometheus.Observer {
	return nullObserver{}
}

type nullObserver struct{}

func (nullObserver) Observe(float64) {}
