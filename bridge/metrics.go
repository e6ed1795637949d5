package bridge

import "github.com/prometheus/client_golang/prometheus"

// Operation kinds used as metric labels.
const (
	kindStaticCall  = "static_call"
	kindCall        = "instance_call"
	kindConstructor = "constructor"
	kindGetField    = "get_field"
	kindSetField    = "set_field"
	kindRegister    = "register_natives"
)

var (
	metricCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jnibridge",
		Name:      "calls_total",
		Help:      "Dispatched operations by kind.",
	}, []string{"kind"})

	metricFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jnibridge",
		Name:      "failures_total",
		Help:      "Operations that returned an error, by kind.",
	}, []string{"kind"})

	metricGlobalRefs = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "jnibridge",
		Name:      "live_global_refs",
		Help:      "Global references currently held by object proxies.",
	})
)

// RegisterMetrics registers the bridge collectors with r. The collectors
// are updated whether or not they are registered; registration only makes
// them visible to a scrape.
func RegisterMetrics(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{metricCalls, metricFailures, metricGlobalRefs} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func observeCall(kind string) {
	metricCalls.WithLabelValues(kind).Inc()
}

// fail records a failed operation and passes the error through.
func fail(kind string, err error) error {
	metricFailures.WithLabelValues(kind).Inc()
	return err
}
