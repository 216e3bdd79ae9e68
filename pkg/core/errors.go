package core

import "fmt"

// SceneFinalizationError signals a scene query issued before Finalize.
type SceneFinalizationError struct {
	Op string
}

func (e *SceneFinalizationError) Error() string {
	return fmt.Sprintf("scene: %s called before Finalize", e.Op)
}

// GeometryError signals a degenerate primitive detected at construction time:
// zero area, colinear rectangle edges, a zero-length edge, or an invalid
// object invariant (transmittance out of range, refractive index below 1,
// an emissive transparent object). Finalize on a scene with no objects
// reports one as well.
type GeometryError struct {
	What string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry: %s", e.What)
}

// EncoderError wraps a failure surfaced by the external image encoder.
type EncoderError struct {
	Cause error
}

func (e *EncoderError) Error() string {
	return fmt.Sprintf("encode: %v", e.Cause)
}

func (e *EncoderError) Unwrap() error {
	return e.Cause
}

// InternalInvariantError marks a fatal, non-recoverable violation of a core
// invariant (negative importance, NaN direction). Detecting one aborts the run
// rather than risk corrupting the output.
type InternalInvariantError struct {
	What string
}

func (e *InternalInvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", e.What)
}
