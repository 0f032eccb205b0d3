// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing. An
//     incoming X-Ray-ID header is kept so upstream proxies can correlate logs.
//
// Request metrics live in core/metrics and are registered next to RayID in
// the start command.
package middleware
