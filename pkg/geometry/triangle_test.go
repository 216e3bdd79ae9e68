package geometry

import (
	"math"
	"testing"

	"github.com/riftwood/pathtracer/pkg/core"
)

func TestTriangle_Intersect_Center(t *testing.T) {
	tri, err := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit := tri.Intersect(ray)
	if !hit.Hit || math.Abs(hit.Near-5.0) > 1e-9 {
		t.Fatalf("expected hit at t=5, got %+v", hit)
	}
}

func TestTriangle_Intersect_Miss(t *testing.T) {
	tri, _ := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)
	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	if hit := tri.Intersect(ray); hit.Hit {
		t.Errorf("expected miss, got %+v", hit)
	}
}

func TestTriangle_NormalAt_FlatShaded(t *testing.T) {
	tri, _ := NewTriangle(
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	)
	n := tri.NormalAt(core.NewVec3(0, 0, 0))
	want := core.NewVec3(0, 0, 1)
	if n.Subtract(want).Length() > 1e-9 {
		t.Errorf("normal = %v, want %v", n, want)
	}
}

func TestTriangle_NormalAt_Interpolated(t *testing.T) {
	v0, v1, v2 := core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0)
	n0 := core.NewVec3(-0.3, 0, 1).Normalize()
	n1 := core.NewVec3(0.3, 0, 1).Normalize()
	n2 := core.NewVec3(0, 0.3, 1).Normalize()
	tri, err := NewTriangleWithNormals(v0, v1, v2, n0, n1, n2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	atV0 := tri.NormalAt(v0)
	if atV0.Subtract(n0).Length() > 1e-6 {
		t.Errorf("normal at v0 = %v, want %v", atV0, n0)
	}
}

func TestTriangle_Area(t *testing.T) {
	tri, _ := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(4, 0, 0),
		core.NewVec3(0, 3, 0),
	)
	if math.Abs(tri.Area()-6.0) > 1e-9 {
		t.Errorf("area = %f, want 6", tri.Area())
	}
}

func TestNewTriangle_RejectsDegenerate(t *testing.T) {
	_, err := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0))
	if err == nil {
		t.Error("expected an error for a zero-area triangle")
	}
}
