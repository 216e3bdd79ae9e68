// Package material implements the reflectance evaluators (BRDFs) keyed by
// incoming and outgoing angular pairs in a surface's local hemisphere frame.
// Frame conversion from world-space directions is the caller's job.
package material

import "github.com/riftwood/pathtracer/pkg/core"

// BRDF evaluates the bidirectional reflectance distribution function given
// an incoming and an outgoing direction, each expressed as (theta, phi) in
// the local hemisphere frame: theta polar from the normal, phi azimuth.
type BRDF interface {
	Evaluate(incoming, outgoing core.Vec2) float64
}
