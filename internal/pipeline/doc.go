// Package pipeline fans the per-protein matcher scan out over a
// worker pool. Each protein's scan is independent, so the only job
// here is distribution and order-preserving collection; results are
// byte-identical to the serial annotate path.
package pipeline
