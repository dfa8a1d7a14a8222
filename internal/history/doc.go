// Package history is the optional persistence layer for workflow outcomes.
//
// It records one entry per executed step so an RMA session leaves a
// machine-readable record alongside the plain-text operation log.
package history
