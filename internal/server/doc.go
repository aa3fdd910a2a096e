// Package server wires and runs the application's HTTP server together with
// its background workers.
//
// It owns signal handling and the graceful shutdown order: the HTTP server
// stops accepting requests and finishes in-flight ones first, then the
// workers are stopped so the audit writer can drain what those requests
// queued.
package server
