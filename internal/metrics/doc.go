// Package metrics provides build observability for the generator and the
// hierarchy plugin.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so callers never nil-check:
//
//	p := hierarchy.New(hierarchy.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The CLI activates the Prometheus implementation when --metrics-file is set
// and writes the registry in text exposition format after the run.
package metrics
