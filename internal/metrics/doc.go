// Package metrics tracks request and dataset counters and exposes them in
// Prometheus text exposition format.
//
// Registry.IncRequest(path, code) counts one served request per route and
// status code. Registry.SetDatasetRows(n) records the current table size.
// Registry.ServeHTTP renders both families with expfmt, so GET /metrics is
// scrapeable by any Prometheus-compatible collector.
package metrics
