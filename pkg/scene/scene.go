package scene

import (
	"math"
	"math/rand"

	"github.com/riftwood/pathtracer/pkg/core"
	"github.com/riftwood/pathtracer/pkg/material"
)

// Scene is an ordered collection of Objects plus a derived, cached light
// list. Finalize must run before Intersect or CastShadowRays; querying a
// non-finalized scene is an error.
type Scene struct {
	objects        []*Object
	lights         []*Object
	totalLightArea float64
	finalized      bool
}

func NewScene() *Scene {
	return &Scene{}
}

// Add appends an object to the scene and marks it not finalized: after an
// Add, Intersect and CastShadowRays return an error until Finalize runs
// again and rebuilds the cached light list.
func (s *Scene) Add(obj *Object) {
	s.objects = append(s.objects, obj)
	s.finalized = false
}

// Finalize precomputes the emissive-object list and total light area,
// transitioning the scene into its immutable, query-ready state. A scene
// with no objects at all cannot be rendered and is rejected.
func (s *Scene) Finalize() error {
	if len(s.objects) == 0 {
		return &core.GeometryError{What: "scene has no objects"}
	}

	s.lights = s.lights[:0]
	s.totalLightArea = 0
	for _, o := range s.objects {
		if o.Emissive {
			s.lights = append(s.lights, o)
			s.totalLightArea += o.Primitive.Area()
		}
	}
	s.finalized = true
	return nil
}

// Intersect returns the closest object hit by ray at a positive parameter
// greater than geometry.Epsilon, along with the hit point. Ties are broken
// by insertion order: the first-inserted object wins. A nil object with a
// nil error means the ray missed every object in the scene.
func (s *Scene) Intersect(ray core.Ray) (*Object, core.Vec3, error) {
	if !s.finalized {
		return nil, core.Vec3{}, &core.SceneFinalizationError{Op: "Intersect"}
	}

	var closest *Object
	bestT := math.Inf(1)
	for _, o := range s.objects {
		hit := o.Primitive.Intersect(ray)
		if hit.Hit && hit.Near < bestT {
			bestT = hit.Near
			closest = o
		}
	}
	if closest == nil {
		return nil, core.Vec3{}, nil
	}
	return closest, ray.At(bestT), nil
}

// CastShadowRays estimates direct illumination at a surface point via the
// shadow-ray estimator: for every emissive object, draw numShadowRays
// uniform samples on its surface, skip samples behind the surface or facing
// away from the light, and accumulate
// emitted * f(incoming,outgoing) * cosThetaS * cosThetaL / d^2 * lightArea / N.
// Returns zero, nil if the scene has no lights.
func (s *Scene) CastShadowRays(origin core.Vec3, incomingAngles core.Vec2, brdf material.BRDF, surfaceNormal core.Vec3, numShadowRays int, rng *rand.Rand) (core.Vec3, error) {
	if !s.finalized {
		return core.Vec3{}, &core.SceneFinalizationError{Op: "CastShadowRays"}
	}
	if len(s.lights) == 0 || numShadowRays <= 0 {
		return core.Vec3{}, nil
	}

	total := core.Vec3{}
	for _, light := range s.lights {
		lightArea := light.Primitive.Area()
		sum := core.Vec3{}

		for i := 0; i < numShadowRays; i++ {
			samplePoint := light.Primitive.Sample(rng)
			toLight := samplePoint.Subtract(origin)
			dist := toLight.Length()
			if dist == 0 {
				continue
			}
			l := toLight.Multiply(1.0 / dist)

			cosThetaS := l.Dot(surfaceNormal)
			if cosThetaS <= 0 {
				continue
			}

			shadowRay := core.NewRay(origin, l)
			hitObj, hitPoint, err := s.Intersect(shadowRay)
			if err != nil {
				return core.Vec3{}, err
			}
			if hitObj != light {
				continue
			}

			lightNormal := light.Primitive.NormalAt(hitPoint)
			cosThetaL := l.Negate().Dot(lightNormal)
			if cosThetaL <= 0 {
				continue
			}

			outgoingAngles := core.LocalAngles(l, surfaceNormal)
			f := brdf.Evaluate(incomingAngles, outgoingAngles)

			weight := f * cosThetaS * cosThetaL / (dist * dist) * lightArea / float64(numShadowRays)
			sum = sum.Add(light.Emitted.Multiply(weight))
		}
		total = total.Add(sum)
	}
	return total, nil
}
