package geometry

import (
	"math"
	"math/rand"

	"github.com/riftwood/pathtracer/pkg/core"
)

// TriangleMesh is a triangle soup built from the mesh-loader contract: a flat
// vertex buffer, a flat normal buffer, and a 0-based index buffer naming
// triangles CCW from the outside. Closest-hit is a linear scan over all
// triangles; an acceleration structure is not required.
type TriangleMesh struct {
	triangles []*Triangle
	areas     []float64
	totalArea float64
}

// NewTriangleMesh decodes (vertices, normals, indices) per the mesh-input
// contract: vertices and normals are flat xyz triples, indices reference them
// three at a time. normals may be nil, in which case each face uses its flat
// geometric normal.
func NewTriangleMesh(vertices, normals []float64, indices []int) (*TriangleMesh, error) {
	if len(vertices)%3 != 0 {
		return nil, &core.GeometryError{What: "vertex buffer length is not a multiple of 3"}
	}
	if len(indices)%3 != 0 {
		return nil, &core.GeometryError{What: "index buffer length is not a multiple of 3"}
	}
	if normals != nil && len(normals) != len(vertices) {
		return nil, &core.GeometryError{What: "normal buffer length does not match vertex buffer"}
	}

	numVerts := len(vertices) / 3
	verts := make([]core.Vec3, numVerts)
	for i := range verts {
		verts[i] = core.NewVec3(vertices[3*i], vertices[3*i+1], vertices[3*i+2])
	}

	var norms []core.Vec3
	if normals != nil {
		norms = make([]core.Vec3, numVerts)
		for i := range norms {
			norms[i] = core.NewVec3(normals[3*i], normals[3*i+1], normals[3*i+2])
		}
	}

	numTriangles := len(indices) / 3
	mesh := &TriangleMesh{
		triangles: make([]*Triangle, 0, numTriangles),
		areas:     make([]float64, 0, numTriangles),
	}

	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := indices[3*i], indices[3*i+1], indices[3*i+2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= numVerts || i1 >= numVerts || i2 >= numVerts {
			return nil, &core.GeometryError{What: "triangle index out of range"}
		}

		var tri *Triangle
		var err error
		if norms != nil {
			tri, err = NewTriangleWithNormals(verts[i0], verts[i1], verts[i2], norms[i0], norms[i1], norms[i2])
		} else {
			tri, err = NewTriangle(verts[i0], verts[i1], verts[i2])
		}
		if err != nil {
			return nil, err
		}

		mesh.triangles = append(mesh.triangles, tri)
		area := tri.Area()
		mesh.areas = append(mesh.areas, area)
		mesh.totalArea += area
	}

	if len(mesh.triangles) == 0 {
		return nil, &core.GeometryError{What: "triangle mesh has no faces"}
	}

	return mesh, nil
}

// Intersect scans every triangle and keeps the closest positive hit.
func (tm *TriangleMesh) Intersect(ray core.Ray) Intersection {
	best := Miss
	bestT := math.Inf(1)
	for _, tri := range tm.triangles {
		hit := tri.Intersect(ray)
		if hit.Hit && hit.Near < bestT {
			best = hit
			bestT = hit.Near
		}
	}
	return best
}

// NormalAt finds the triangle p actually lies on and returns its shading
// normal there. The mesh is linear in triangle count; used only for points
// already known to lie on the surface from a prior Intersect call. Two
// adjacent triangles can share an edge point; the first containing triangle
// in mesh order wins. The triangle with the nearest centroid is used only
// when no triangle contains p within tolerance.
func (tm *TriangleMesh) NormalAt(p core.Vec3) core.Vec3 {
	var containing *Triangle
	best := tm.triangles[0]
	bestDist := math.Inf(1)
	for _, tri := range tm.triangles {
		c := tri.V0.Add(tri.V1).Add(tri.V2).Multiply(1.0 / 3.0)
		d := c.Subtract(p).LengthSquared()
		if d < bestDist {
			bestDist = d
			best = tri
		}
		if containing == nil && tri.Contains(p) {
			containing = tri
		}
	}
	if containing != nil {
		return containing.NormalAt(p)
	}
	return best.NormalAt(p)
}

func (tm *TriangleMesh) Area() float64 {
	return tm.totalArea
}

// Sample picks a triangle weighted by its area, then samples uniformly
// within it.
func (tm *TriangleMesh) Sample(rng *rand.Rand) core.Vec3 {
	pick := rng.Float64() * tm.totalArea
	acc := 0.0
	for i, a := range tm.areas {
		acc += a
		if pick <= acc {
			return tm.triangles[i].Sample(rng)
		}
	}
	return tm.triangles[len(tm.triangles)-1].Sample(rng)
}

// Triangles exposes the mesh's faces for diagnostics and testing.
func (tm *TriangleMesh) Triangles() []*Triangle {
	return tm.triangles
}
