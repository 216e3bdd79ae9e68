package geometry

import (
	"math"
	"math/rand"

	"github.com/riftwood/pathtracer/pkg/core"
)

// Sphere is a ray-traceable sphere of center C and radius R.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a sphere, rejecting a non-positive radius as degenerate.
func NewSphere(center core.Vec3, radius float64) (*Sphere, error) {
	if radius <= 0 {
		return nil, &core.GeometryError{What: "sphere radius must be positive"}
	}
	return &Sphere{Center: center, Radius: radius}, nil
}

// Intersect solves ||o+tD-C||^2=R^2 for t.
func (s *Sphere) Intersect(ray core.Ray) Intersection {
	oc := ray.Origin.Subtract(s.Center)
	dLenSq := ray.Direction.LengthSquared()

	b := -ray.Direction.Dot(oc)
	disc := b*b - dLenSq*(oc.LengthSquared()-s.Radius*s.Radius)
	if disc < 0 {
		return Miss
	}

	sqrtDisc := math.Sqrt(disc)
	t1 := (b - sqrtDisc) / dLenSq
	t2 := (b + sqrtDisc) / dLenSq

	if disc == 0 {
		if t1 <= Epsilon {
			return Miss
		}
		return Intersection{Hit: true, Near: t1, Far: t1}
	}

	if t2 < 0 {
		return Miss
	}
	if t1 < 0 && t2 > 0 {
		// Origin lies inside the sphere: the only usable root is t2. The far
		// value (t1, negative) is retained only so the caller can tell this
		// case apart from a regular double hit via EnteredFromInside.
		return Intersection{Hit: true, Near: t2, Far: t1, IsDouble: true, EnteredFromInside: true}
	}
	if t1 <= Epsilon {
		return Miss
	}
	return Intersection{Hit: true, Near: t1, Far: t2, IsDouble: true}
}

// NormalAt returns the outward unit normal at a point on the sphere's surface.
func (s *Sphere) NormalAt(p core.Vec3) core.Vec3 {
	return p.Subtract(s.Center).Normalize()
}

// Area returns the total surface area 4*pi*r^2.
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// Sample draws a uniformly-distributed point on the sphere's surface.
func (s *Sphere) Sample(rng *rand.Rand) core.Vec3 {
	u1, u2 := rng.Float64(), rng.Float64()
	z := 1 - 2*u1
	r := math.Sqrt(max(0, 1-z*z))
	phi := 2 * math.Pi * u2
	dir := core.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
	return s.Center.Add(dir.Multiply(s.Radius))
}
