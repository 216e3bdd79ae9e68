package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/riftwood/pathtracer/pkg/core"
)

func unitSquareMesh() []float64 {
	return []float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
}

func TestNewTriangleMesh_FlatNormals(t *testing.T) {
	vertices := unitSquareMesh()
	indices := []int{0, 1, 2, 0, 2, 3}

	mesh, err := NewTriangleMesh(vertices, nil, indices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mesh.Triangles()) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(mesh.Triangles()))
	}
	if math.Abs(mesh.Area()-1.0) > 1e-9 {
		t.Errorf("total area = %f, want 1", mesh.Area())
	}
}

func TestTriangleMesh_Intersect_ClosestHit(t *testing.T) {
	vertices := unitSquareMesh()
	indices := []int{0, 1, 2, 0, 2, 3}
	mesh, _ := NewTriangleMesh(vertices, nil, indices)

	ray := core.NewRay(core.NewVec3(0.5, 0.5, -5), core.NewVec3(0, 0, 1))

	hit := mesh.Intersect(ray)
	if !hit.Hit || math.Abs(hit.Near-5.0) > 1e-9 {
		t.Fatalf("expected hit at t=5, got %+v", hit)
	}
}

func TestNewTriangleMesh_RejectsMismatchedIndexLength(t *testing.T) {
	vertices := unitSquareMesh()
	_, err := NewTriangleMesh(vertices, nil, []int{0, 1})
	if err == nil {
		t.Error("expected an error for an index buffer not a multiple of 3")
	}
}

func TestNewTriangleMesh_RejectsOutOfRangeIndex(t *testing.T) {
	vertices := unitSquareMesh()
	_, err := NewTriangleMesh(vertices, nil, []int{0, 1, 9})
	if err == nil {
		t.Error("expected an error for an out-of-range index")
	}
}

// TestTriangleMesh_NormalAt_PicksContainingTriangleNotNearestCentroid builds
// one large triangle and one small, distant triangle with opposite vertex
// normals, and queries a point that lies inside the large triangle but is
// Euclidean-closer to the small triangle's centroid than to the large
// triangle's own centroid. NormalAt must still return the large triangle's
// normal, since that is the face the point actually lies on.
func TestTriangleMesh_NormalAt_PicksContainingTriangleNotNearestCentroid(t *testing.T) {
	vertices := []float64{
		0, 0, 0, // large triangle
		20, 0, 0,
		20, 20, 0,
		-5, -5, 0, // small, distant triangle
		-3, -5, 0,
		-5, -3, 0,
	}
	normals := []float64{
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
		0, 0, -1,
		0, 0, -1,
		0, 0, -1,
	}
	indices := []int{0, 1, 2, 3, 4, 5}

	mesh, err := NewTriangleMesh(vertices, normals, indices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := core.NewVec3(1, 0.1, 0)
	got := mesh.NormalAt(p)
	want := core.NewVec3(0, 0, 1)
	if got.Subtract(want).Length() > 1e-6 {
		t.Fatalf("NormalAt(%v) = %v, want %v (the containing triangle's normal, not the nearest centroid's)", p, got, want)
	}
}

func TestTriangleMesh_Sample_StaysOnTriangles(t *testing.T) {
	vertices := unitSquareMesh()
	indices := []int{0, 1, 2, 0, 2, 3}
	mesh, _ := NewTriangleMesh(vertices, nil, indices)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		p := mesh.Sample(rng)
		if p.X < -1e-9 || p.X > 1+1e-9 || p.Y < -1e-9 || p.Y > 1+1e-9 {
			t.Fatalf("sample %v outside unit square", p)
		}
	}
}
