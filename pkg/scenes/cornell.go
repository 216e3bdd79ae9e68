// Package scenes holds built-in scene constructors selectable by name from
// configuration.
package scenes

import (
	"fmt"

	"github.com/riftwood/pathtracer/pkg/core"
	"github.com/riftwood/pathtracer/pkg/geometry"
	"github.com/riftwood/pathtracer/pkg/loaders"
	"github.com/riftwood/pathtracer/pkg/material"
	"github.com/riftwood/pathtracer/pkg/scene"
)

// Build constructs the named built-in scene. meshPath is only consulted for
// the "mesh" scene, which loads a glTF model into an enclosing box. Unknown
// names are a core.GeometryError (no scene to finalize).
func Build(name, meshPath string) (*scene.Scene, error) {
	switch name {
	case "cornell":
		return cornell()
	case "empty":
		return empty()
	case "mesh":
		return meshScene(meshPath)
	default:
		return nil, &core.GeometryError{What: fmt.Sprintf("unknown built-in scene %q", name)}
	}
}

// cornell is a classic Cornell box: five Lambertian walls, an emissive
// ceiling rectangle, a Lambertian sphere, and a transparent sphere.
func cornell() (*scene.Scene, error) {
	const box = 5.0
	white := material.NewLambertian(0.73)
	red := material.NewLambertian(0.65)
	green := material.NewLambertian(0.45)

	s := scene.NewScene()

	floor, err := geometry.NewRectangle(core.NewVec3(0, 0, box), core.NewVec3(0, 0, 0), core.NewVec3(box, 0, 0))
	if err != nil {
		return nil, err
	}
	ceiling, err := geometry.NewRectangle(core.NewVec3(0, box, 0), core.NewVec3(0, box, box), core.NewVec3(box, box, box))
	if err != nil {
		return nil, err
	}
	back, err := geometry.NewRectangle(core.NewVec3(0, box, box), core.NewVec3(0, 0, box), core.NewVec3(box, 0, box))
	if err != nil {
		return nil, err
	}
	left, err := geometry.NewRectangle(core.NewVec3(0, box, box), core.NewVec3(0, 0, box), core.NewVec3(0, 0, 0))
	if err != nil {
		return nil, err
	}
	right, err := geometry.NewRectangle(core.NewVec3(box, box, 0), core.NewVec3(box, 0, 0), core.NewVec3(box, 0, box))
	if err != nil {
		return nil, err
	}

	s.Add(scene.NewOpaqueObject("floor", floor, white, core.NewVec3(1, 1, 1)))
	s.Add(scene.NewOpaqueObject("ceiling", ceiling, white, core.NewVec3(1, 1, 1)))
	s.Add(scene.NewOpaqueObject("back", back, white, core.NewVec3(1, 1, 1)))
	s.Add(scene.NewOpaqueObject("left", left, red, core.NewVec3(0.65, 0.05, 0.05)))
	s.Add(scene.NewOpaqueObject("right", right, green, core.NewVec3(0.12, 0.45, 0.15)))

	const lightSize = 1.3
	lightOffset := (box - lightSize) / 2
	light, err := geometry.NewRectangle(
		core.NewVec3(lightOffset, box-0.01, lightOffset+lightSize),
		core.NewVec3(lightOffset, box-0.01, lightOffset),
		core.NewVec3(lightOffset+lightSize, box-0.01, lightOffset),
	)
	if err != nil {
		return nil, err
	}
	s.Add(scene.NewEmissiveObject("light", light, white, core.NewVec3(1, 1, 1), core.NewVec3(15, 15, 15)))

	leftSphere, err := geometry.NewSphere(core.NewVec3(1.7, 0.8, 1.5), 0.8)
	if err != nil {
		return nil, err
	}
	s.Add(scene.NewOpaqueObject("left-sphere", leftSphere, white, core.NewVec3(0.8, 0.8, 0.9)))

	rightSphere, err := geometry.NewSphere(core.NewVec3(3.4, 0.9, 3.2), 0.9)
	if err != nil {
		return nil, err
	}
	glass, err := scene.NewTransparentObject("right-sphere", rightSphere, 1.5, 0.9, core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}
	s.Add(glass)

	if err := s.Finalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// empty is a 20x20x20 enclosing box with non-emissive Lambertian walls and
// nothing inside: the baseline zero-radiance scenario.
func empty() (*scene.Scene, error) {
	room, err := geometry.NewBoundingBoxMesh(core.NewVec3(-10, -10, -10), core.NewVec3(10, 10, 10))
	if err != nil {
		return nil, err
	}
	s := scene.NewScene()
	s.Add(scene.NewOpaqueObject("room", room, material.NewLambertian(1.0), core.NewVec3(1, 1, 1)))
	if err := s.Finalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// meshScene loads the glTF model at path and places it, as a transparent
// glass object, inside a 20x20x20 enclosing box lit by a small emissive
// ceiling rectangle.
func meshScene(path string) (*scene.Scene, error) {
	data, err := loaders.LoadMesh(path)
	if err != nil {
		return nil, err
	}
	tm, err := geometry.NewTriangleMesh(data.Vertices, data.Normals, data.IntIndices())
	if err != nil {
		return nil, err
	}
	glass, err := scene.NewTransparentObject("mesh", tm, 1.5, 0.9, core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}

	room, err := geometry.NewBoundingBoxMesh(core.NewVec3(-10, -10, -10), core.NewVec3(10, 10, 10))
	if err != nil {
		return nil, err
	}
	light, err := geometry.NewRectangle(
		core.NewVec3(-2, 9.99, 2),
		core.NewVec3(-2, 9.99, -2),
		core.NewVec3(2, 9.99, -2),
	)
	if err != nil {
		return nil, err
	}

	s := scene.NewScene()
	s.Add(scene.NewOpaqueObject("room", room, material.NewLambertian(0.8), core.NewVec3(1, 1, 1)))
	s.Add(scene.NewEmissiveObject("light", light, material.NewLambertian(1), core.NewVec3(1, 1, 1), core.NewVec3(15, 15, 15)))
	s.Add(glass)
	if err := s.Finalize(); err != nil {
		return nil, err
	}
	return s, nil
}
