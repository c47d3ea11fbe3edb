// Package server wires and runs the sync service's HTTP server.
//
// It owns the server lifecycle: startup, signal handling, and graceful
// shutdown so in-flight create and redeem requests finish before exit.
package server
