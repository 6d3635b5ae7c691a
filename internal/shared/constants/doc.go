// Package constants centralizes defaults shared across the checker.
//
// Ports, paths and timeouts live here so cmd/ and internal/checker agree on
// the wire endpoints of the laberator service without importing each other.
package constants
