// Package metrics provides observability hooks for conversion runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection needs no nil checks:
//
//	recorder := metrics.NewPrometheusRecorder(nil)
//	conv, err := convert.New(cfg, convert.WithRecorder(recorder))
//
// The Prometheus recorder keeps its own registry. Command line runs export it
// with WriteTextfile for the node_exporter textfile collector.
package metrics
