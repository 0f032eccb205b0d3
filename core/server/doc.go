// Package server holds the HTTP server configuration.
//
// While the start command owns the Fiber application lifecycle, this package
// defines the settings it is built from: listen port, the base path every
// feature is mounted under, and read/write timeouts.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the start command to configure Fiber.
package server
