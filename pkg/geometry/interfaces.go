// Package geometry implements the ray-traceable primitives: intersection,
// surface normals, uniform surface sampling, and area, for spheres, boxes,
// inward-facing bounding boxes, oriented rectangles, and triangle meshes.
package geometry

import (
	"math/rand"

	"github.com/riftwood/pathtracer/pkg/core"
)

// Epsilon is the minimum accepted positive ray parameter, guarding against
// self-intersection at a surface point.
const Epsilon = 1e-6

// Intersection is the result of a closest-hit query against one primitive:
// a miss, a single root, or a double root with Near<=Far. EnteredFromInside
// flags a sphere hit where the ray origin lies inside the sphere, so the
// caller knows to flip the surface normal; in that case Near is the usable
// root ahead of the origin and Far holds the negative root behind it, so
// Near>Far.
type Intersection struct {
	Hit               bool
	Near, Far         float64
	IsDouble          bool
	EnteredFromInside bool
}

// Miss is the zero-value non-intersection result.
var Miss = Intersection{}

// Primitive is a shape that can be hit by a ray, queried for its normal at a
// point, uniformly sampled over its surface, and measured for total area.
type Primitive interface {
	Intersect(ray core.Ray) Intersection
	NormalAt(p core.Vec3) core.Vec3
	Area() float64
	Sample(rng *rand.Rand) core.Vec3
}
