// Package metrics records pipeline and stage metrics.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder collects into a Prometheus
// registry which WriteTextfile persists in the text exposition format, so CI
// hosts can pick the file up with the node-exporter textfile collector:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	// ... run pipelines reporting to rec ...
//	err := metrics.WriteTextfile(reg, "/var/lib/node_exporter/msph.prom")
package metrics
