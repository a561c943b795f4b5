// Package server wires the HTTP surface: session-backed login, the
// ballot and nomination pages, health probes, and the metrics endpoint.
package server
