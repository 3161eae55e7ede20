// Package metrics defines the events emitted by the prediction service and
// the sink interfaces that record them. Implementations such as PromSink and
// InfluxSink live in infra/metrics and register themselves with the sink
// factory. NewMetricsSink returns a MultiSink when several sinks are
// configured and a NopSink when none are.
package metrics
