package renderer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riftwood/pathtracer/pkg/camera"
	"github.com/riftwood/pathtracer/pkg/core"
	"github.com/riftwood/pathtracer/pkg/geometry"
	"github.com/riftwood/pathtracer/pkg/integrator"
	"github.com/riftwood/pathtracer/pkg/material"
	"github.com/riftwood/pathtracer/pkg/scene"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	room, err := geometry.NewBoundingBoxMesh(core.NewVec3(-10, -10, -10), core.NewVec3(10, 10, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sun, err := geometry.NewSphere(core.NewVec3(0, 0, 5), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := scene.NewScene()
	s.Add(scene.NewOpaqueObject("room", room, material.NewLambertian(0.8), core.NewVec3(1, 1, 1)))
	s.Add(scene.NewEmissiveObject("sun", sun, material.NewLambertian(1), core.NewVec3(1, 1, 1), core.NewVec3(3, 3, 3)))
	s.Finalize()
	return s
}

func TestRender_ProducesFullyOpaqueImage(t *testing.T) {
	s := testScene(t)
	cam := camera.New(4, 4, 0.05, 0.05, core.NewVec3(0, 0, 0), camera.Identity(), 1, 1)
	cfg := RenderConfig{
		Camera:     cam,
		Integrator: integrator.Config{NumberOfShadowRays: 2, ProbabilityNotToTerminateRay: 0.8},
		NumWorkers: 2,
		Seed:       7,
	}

	img, err := Render(s, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Width != 4 || img.Height != 4 {
		t.Fatalf("got %dx%d, want 4x4", img.Width, img.Height)
	}
	if len(img.Pixels) != 4*4*4 {
		t.Fatalf("got %d bytes, want %d", len(img.Pixels), 4*4*4)
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			alpha := img.Pixels[(y*img.Width+x)*4+3]
			if alpha != 255 {
				t.Errorf("pixel (%d,%d) alpha = %d, want 255", x, y, alpha)
			}
		}
	}
}

func TestRender_DeterministicGivenSeed(t *testing.T) {
	s := testScene(t)
	cam := camera.New(4, 4, 0.05, 0.05, core.NewVec3(0, 0, 0), camera.Identity(), 1, 1)
	cfg := RenderConfig{
		Camera:     cam,
		Integrator: integrator.Config{NumberOfShadowRays: 2, ProbabilityNotToTerminateRay: 0.8},
		NumWorkers: 3,
		Seed:       42,
	}

	first, err := Render(s, cfg)
	require.NoError(t, err)
	second, err := Render(s, cfg)
	require.NoError(t, err)

	require.Equal(t, first.Pixels, second.Pixels, "identically-seeded renders must be byte-for-byte identical")
}

func TestRender_UnfinalizedSceneReturnsError(t *testing.T) {
	s := scene.NewScene()
	cam := camera.New(1, 1, 0.05, 0.05, core.NewVec3(0, 0, 0), camera.Identity(), 1, 1)
	cfg := RenderConfig{
		Camera:     cam,
		Integrator: integrator.Config{NumberOfShadowRays: 0, ProbabilityNotToTerminateRay: 0.8},
		NumWorkers: 1,
		Seed:       1,
	}

	img, err := Render(s, cfg)
	if err == nil {
		t.Fatal("expected an error rendering against an unfinalized scene")
	}
	if img != nil {
		t.Error("expected a nil image on error")
	}
}
