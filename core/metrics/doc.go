// Package metrics declares the Prometheus collectors exported by the service.
//
// Collectors are package-level values so any package can record into them
// without plumbing a registry; Init registers them once with the default
// registry and Handler exposes them on /metrics. Label sets stay bounded:
// refresh outcomes are one of three constants, sources are the two configured
// upstream names, and HTTP paths use the matched route template.
package metrics
