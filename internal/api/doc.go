// Package api implements the HTTP API for credatlas-server.
//
// New(store, registry) returns an http.Handler that serves:
//
//	GET /                 — welcome payload: total record count + endpoint directory
//	GET /records          — filtered, paginated records (page, size, insname, creddesc)
//	GET /records/{insid}  — all records for one institution ID; 404 if none
//	GET /stats            — distinct institution/credential counts, credential levels
//	GET /metrics          — Prometheus text exposition
//
// All endpoints:
//   - Respond with Content-Type: application/json (except /metrics)
//   - Return 405 for non-GET methods
//   - Return 422 for malformed or out-of-range query/path parameters, so the
//     store only ever sees validated values
//
// JSON types are defined in types.go. No external HTTP framework is used.
package api
