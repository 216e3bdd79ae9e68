package geometry

import (
	"math/rand"

	"github.com/riftwood/pathtracer/pkg/core"
)

// Rectangle is an oriented planar rectangle defined by three corners:
// upperLeft, lowerLeft, lowerRight. The two orthogonal edges e1 (lowerLeft to
// lowerRight) and e2 (lowerLeft to upperLeft) span the surface from P0
// (lowerLeft).
type Rectangle struct {
	P0     core.Vec3
	E1, E2 core.Vec3
	Normal core.Vec3
}

// NewRectangle builds a rectangle from its three defining corners, rejecting
// colinear or degenerate edges.
func NewRectangle(upperLeft, lowerLeft, lowerRight core.Vec3) (*Rectangle, error) {
	e1 := lowerRight.Subtract(lowerLeft)
	e2 := upperLeft.Subtract(lowerLeft)
	if e1.LengthSquared() < Epsilon*Epsilon || e2.LengthSquared() < Epsilon*Epsilon {
		return nil, &core.GeometryError{What: "rectangle has a zero-length edge"}
	}
	n := e1.Cross(e2)
	if n.LengthSquared() < Epsilon*Epsilon {
		return nil, &core.GeometryError{What: "rectangle corners are colinear"}
	}
	return &Rectangle{P0: lowerLeft, E1: e1, E2: e2, Normal: n.Normalize()}, nil
}

func (r *Rectangle) Intersect(ray core.Ray) Intersection {
	denom := ray.Direction.Dot(r.Normal)
	if denom > -Epsilon && denom < Epsilon {
		return Miss
	}

	t := r.P0.Subtract(ray.Origin).Dot(r.Normal) / denom
	if t <= Epsilon {
		return Miss
	}

	hit := ray.At(t)
	hv := hit.Subtract(r.P0)
	u := hv.Dot(r.E1)
	v := hv.Dot(r.E2)
	if u < 0 || u > r.E1.LengthSquared() || v < 0 || v > r.E2.LengthSquared() {
		return Miss
	}

	return Intersection{Hit: true, Near: t, Far: t}
}

func (r *Rectangle) NormalAt(p core.Vec3) core.Vec3 {
	return r.Normal
}

func (r *Rectangle) Area() float64 {
	return r.E1.Length() * r.E2.Length()
}

func (r *Rectangle) Sample(rng *rand.Rand) core.Vec3 {
	u, v := rng.Float64(), rng.Float64()
	return r.P0.Add(r.E1.Multiply(u)).Add(r.E2.Multiply(v))
}
