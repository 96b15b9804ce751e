// Package metrics provides observability hooks for sidebar scans and reload coalescing.
//
// Components receive a Recorder through their options and default to NoopRecorder,
// so metrics never require nil checks at call sites:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	m, err := sidebar.Assemble(root, sidebar.Options{Recorder: rec})
//
// The watch command exposes the registry through HTTPHandler when a listen
// address is configured.
package metrics
