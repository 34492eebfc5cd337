// Package metrics records what a vtldocs run did.
//
// Components receive a Recorder and default to NoopRecorder. When --metrics-file is given the CLI swaps in a
// PrometheusRecorder and writes its registry in the text exposition format
// at exit, ready for a node-exporter textfile collector:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	gen := examples.NewGenerator(cfg, set, version).WithRecorder(rec)
//	...
//	_ = rec.WriteTextfile("/var/lib/node_exporter/vtldocs.prom")
package metrics
