package geometry

import (
	"math"
	"math/rand"

	"github.com/riftwood/pathtracer/pkg/core"
)

// Box is an axis-aligned box tested via the three-slab method. Inward flips
// the returned normal so the box can serve as an enclosing room instead of a
// solid obstacle (see BoundingBoxMesh below).
type Box struct {
	Min, Max core.Vec3
	Inward   bool
}

// NewBox creates an axis-aligned box from its min/max corners.
func NewBox(min, max core.Vec3) (*Box, error) {
	if min.X >= max.X || min.Y >= max.Y || min.Z >= max.Z {
		return nil, &core.GeometryError{What: "box has zero or negative extent on an axis"}
	}
	return &Box{Min: min, Max: max}, nil
}

// NewBoundingBoxMesh builds an enclosing room: identical geometry to Box but
// with inward-facing normals, used as an emissive/diffuse room enclosure.
func NewBoundingBoxMesh(min, max core.Vec3) (*Box, error) {
	b, err := NewBox(min, max)
	if err != nil {
		return nil, err
	}
	b.Inward = true
	return b, nil
}

// Intersect runs the slab test on the three axis pairs.
func (b *Box) Intersect(ray core.Ray) Intersection {
	tEnter, tExit := math.Inf(-1), math.Inf(1)

	axes := [3]struct{ o, d, lo, hi float64 }{
		{ray.Origin.X, ray.Direction.X, b.Min.X, b.Max.X},
		{ray.Origin.Y, ray.Direction.Y, b.Min.Y, b.Max.Y},
		{ray.Origin.Z, ray.Direction.Z, b.Min.Z, b.Max.Z},
	}

	for _, a := range axes {
		if a.d == 0 {
			if a.o < a.lo || a.o > a.hi {
				return Miss
			}
			continue
		}
		t1 := (a.lo - a.o) / a.d
		t2 := (a.hi - a.o) / a.d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tEnter = max(tEnter, t1)
		tExit = min(tExit, t2)
	}

	if tEnter > tExit || tExit < Epsilon {
		return Miss
	}
	if tEnter <= Epsilon {
		return Intersection{Hit: true, Near: tExit, Far: tExit}
	}
	return Intersection{Hit: true, Near: tEnter, Far: tExit, IsDouble: true}
}

// NormalAt returns the outward (or, if Inward, inward) normal of the first
// face, checked in -X, +X, -Y, +Y, -Z order, that p lies on within 1e-6; any
// other point gets the +Z face's normal.
func (b *Box) NormalAt(p core.Vec3) core.Vec3 {
	const tol = 1e-6
	n := core.NewVec3(0, 0, 0)
	switch {
	case math.Abs(p.X-b.Min.X) < tol:
		n = core.NewVec3(-1, 0, 0)
	case math.Abs(p.X-b.Max.X) < tol:
		n = core.NewVec3(1, 0, 0)
	case math.Abs(p.Y-b.Min.Y) < tol:
		n = core.NewVec3(0, -1, 0)
	case math.Abs(p.Y-b.Max.Y) < tol:
		n = core.NewVec3(0, 1, 0)
	case math.Abs(p.Z-b.Min.Z) < tol:
		n = core.NewVec3(0, 0, -1)
	default:
		n = core.NewVec3(0, 0, 1)
	}
	if b.Inward {
		return n.Negate()
	}
	return n
}

func (b *Box) size() core.Vec3 {
	return b.Max.Subtract(b.Min)
}

// Area returns the total surface area of all six faces.
func (b *Box) Area() float64 {
	s := b.size()
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// Sample draws a uniform point over the box's surface, picking one of the
// six faces weighted by its area.
func (b *Box) Sample(rng *rand.Rand) core.Vec3 {
	s := b.size()
	faceAreas := [6]float64{s.Y * s.Z, s.Y * s.Z, s.X * s.Z, s.X * s.Z, s.X * s.Y, s.X * s.Y}
	total := 0.0
	for _, a := range faceAreas {
		total += a
	}
	pick := rng.Float64() * total
	u, v := rng.Float64(), rng.Float64()

	idx := 0
	acc := 0.0
	for i, a := range faceAreas {
		acc += a
		if pick <= acc {
			idx = i
			break
		}
	}

	switch idx {
	case 0:
		return core.NewVec3(b.Min.X, b.Min.Y+u*s.Y, b.Min.Z+v*s.Z)
	case 1:
		return core.NewVec3(b.Max.X, b.Min.Y+u*s.Y, b.Min.Z+v*s.Z)
	case 2:
		return core.NewVec3(b.Min.X+u*s.X, b.Min.Y, b.Min.Z+v*s.Z)
	case 3:
		return core.NewVec3(b.Min.X+u*s.X, b.Max.Y, b.Min.Z+v*s.Z)
	case 4:
		return core.NewVec3(b.Min.X+u*s.X, b.Min.Y+v*s.Y, b.Min.Z)
	default:
		return core.NewVec3(b.Min.X+u*s.X, b.Min.Y+v*s.Y, b.Max.Z)
	}
}
