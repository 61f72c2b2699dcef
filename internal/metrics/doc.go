// Package metrics exposes Prometheus collectors for session negotiation and
// the wallet bridge. All methods are safe on a nil receiver so callers can
// run without metrics.
package metrics
