package metrics

import "github.com/kilianp07/schoolrun/core/factory"

// sinkRegistry holds the sink types known to NewMetricsSink. infra/metrics
// registers "nop", "prometheus" and "influx" at init.
var sinkRegistry = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink adds a metrics sink factory identified by name.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinkRegistry.Register(name, f)
}

// Closer is implemented by sinks holding connections, such as the Influx sink.
type Closer interface {
	Close()
}

// Close releases sink if it implements Closer.
func Close(sink MetricsSink) {
	if c, ok := sink.(Closer); ok {
		c.Close()
	}
}

// NewMetricsSink builds the configured sinks. No entry yields a NopSink, one
// entry its sink, several a MultiSink in configuration order. If any entry
// fails, the sinks already built are closed.
func NewMetricsSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	if len(cfgs) == 1 {
		return sinkRegistry.Create(cfgs[0])
	}
	sinks := make([]MetricsSink, 0, len(cfgs))
	for _, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			NewMultiSink(sinks...).Close()
			return nil, err
		}
		sinks = append(sinks, s)
	}
	return NewMultiSink(sinks...), nil
}
