// Package domain holds the value types and errors of the emitter: the
// destination, the immutable payload, per-tick outcomes, and the error
// taxonomy (configuration errors versus per-send errors).
//
// Nothing in this package performs I/O.
package domain
