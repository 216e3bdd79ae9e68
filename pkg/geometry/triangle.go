package geometry

import (
	"math"
	"math/rand"

	"github.com/riftwood/pathtracer/pkg/core"
)

// Triangle is one face of a TriangleMesh. If per-vertex normals are given the
// shading normal is barycentric-interpolated across the face; otherwise the
// flat face normal (edge1 x edge2, normalized) is used everywhere.
type Triangle struct {
	V0, V1, V2    core.Vec3
	N0, N1, N2    core.Vec3
	hasVertexNorm bool
	faceNormal    core.Vec3
}

// NewTriangle builds a flat-shaded triangle from three vertices.
func NewTriangle(v0, v1, v2 core.Vec3) (*Triangle, error) {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	n := edge1.Cross(edge2)
	if n.LengthSquared() < Epsilon*Epsilon {
		return nil, &core.GeometryError{What: "triangle is degenerate (zero area)"}
	}
	return &Triangle{V0: v0, V1: v1, V2: v2, faceNormal: n.Normalize()}, nil
}

// NewTriangleWithNormals builds a triangle that interpolates shading normals
// from the three per-vertex normals supplied by the mesh loader.
func NewTriangleWithNormals(v0, v1, v2, n0, n1, n2 core.Vec3) (*Triangle, error) {
	t, err := NewTriangle(v0, v1, v2)
	if err != nil {
		return nil, err
	}
	t.N0, t.N1, t.N2 = n0.Normalize(), n1.Normalize(), n2.Normalize()
	t.hasVertexNorm = true
	return t, nil
}

// Intersect tests the ray against the triangle using Moller-Trumbore.
func (t *Triangle) Intersect(ray core.Ray) Intersection {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -Epsilon && a < Epsilon {
		return Miss
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return Miss
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return Miss
	}

	tHit := f * edge2.Dot(q)
	if tHit <= Epsilon {
		return Miss
	}

	return Intersection{Hit: true, Near: tHit, Far: tHit}
}

// NormalAt returns the shading normal at p, barycentric-interpolated from the
// vertex normals when available, otherwise the flat face normal.
func (t *Triangle) NormalAt(p core.Vec3) core.Vec3 {
	if !t.hasVertexNorm {
		return t.faceNormal
	}

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	vp := p.Subtract(t.V0)

	d00 := edge1.Dot(edge1)
	d01 := edge1.Dot(edge2)
	d11 := edge2.Dot(edge2)
	d20 := vp.Dot(edge1)
	d21 := vp.Dot(edge2)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return t.faceNormal
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w

	n := t.N0.Multiply(u).Add(t.N1.Multiply(v)).Add(t.N2.Multiply(w))
	return n.Normalize()
}

// Contains reports whether p lies on this triangle's face, within a small
// tolerance on both the barycentric coordinates and the perpendicular
// distance to the triangle's plane. Used to pick the triangle a mesh-level
// hit point actually belongs to, rather than merely the nearest one.
func (t *Triangle) Contains(p core.Vec3) bool {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	vp := p.Subtract(t.V0)

	normal := edge1.Cross(edge2)
	planeDist := vp.Dot(normal) / normal.Length()
	if math.Abs(planeDist) > 1e-4 {
		return false
	}

	d00 := edge1.Dot(edge1)
	d01 := edge1.Dot(edge2)
	d11 := edge2.Dot(edge2)
	d20 := vp.Dot(edge1)
	d21 := vp.Dot(edge2)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return false
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w

	const tol = 1e-4
	return u >= -tol && v >= -tol && w >= -tol
}

func (t *Triangle) Area() float64 {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	return edge1.Cross(edge2).Length() / 2
}

func (t *Triangle) Sample(rng *rand.Rand) core.Vec3 {
	u1, u2 := rng.Float64(), rng.Float64()
	su1 := math.Sqrt(u1)
	b0 := 1 - su1
	b1 := u2 * su1
	return t.V0.Multiply(b0).Add(t.V1.Multiply(b1)).Add(t.V2.Multiply(1 - b0 - b1))
}
