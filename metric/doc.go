// Package metric provides Prometheus metrics management for the frame
// pipeline.
//
// A single Registry owns the process-wide Prometheus registry, the core
// pipeline metrics (frames extracted/decoded, decode errors, overflows,
// emitted updates) and the component-scoped registration API used by
// buffers, worker pools and sessions. Components that receive a nil
// *Registry simply skip metrics collection (nil input = nil feature).
package metric
