// Package integrator implements the recursive path-tracing kernel: per-pixel
// traversal that builds a path tree against a finalized scene and collapses
// it into a radiance estimate.
package integrator

import (
	"math"
	"math/rand"

	"github.com/riftwood/pathtracer/pkg/core"
	"github.com/riftwood/pathtracer/pkg/geometry"
	"github.com/riftwood/pathtracer/pkg/pathtree"
	"github.com/riftwood/pathtracer/pkg/scene"
)

// Config carries the two tunables the kernel needs beyond the scene itself.
type Config struct {
	NumberOfShadowRays           int
	ProbabilityNotToTerminateRay float64
}

// importanceCutoff is the early-termination threshold below which a
// transparent node's contribution is considered negligible.
const importanceCutoff = 1e-3

// Trace walks node's ray against s, recursively extending the path tree and
// setting node.Radiance (and the radiance of every descendant it builds).
func Trace(node *pathtree.Node, s *scene.Scene, cfg Config, rng *rand.Rand) error {
	return trace(node, s, cfg, rng, true)
}

func trace(node *pathtree.Node, s *scene.Scene, cfg Config, rng *rand.Rand, isRoot bool) error {
	checkNodeInvariants(node)

	obj, hitPoint, err := s.Intersect(node.Ray)
	if err != nil {
		return err
	}

	if obj == nil {
		node.Radiance = core.Vec3{}
		return nil
	}

	if obj.Emissive {
		node.Radiance = obj.Emitted
		return nil
	}

	switch obj.Kind {
	case scene.Transparent:
		return traceTransparent(node, obj, hitPoint, s, cfg, rng)
	default:
		return traceOpaque(node, obj, hitPoint, s, cfg, rng, isRoot)
	}
}

func traceTransparent(node *pathtree.Node, obj *scene.Object, p core.Vec3, s *scene.Scene, cfg Config, rng *rand.Rand) error {
	if node.Importance <= importanceCutoff {
		node.Radiance = core.Vec3{}
		return nil
	}

	d := node.Ray.Direction
	n := obj.Primitive.NormalAt(p)

	n1 := node.RefractiveIndex
	n2 := obj.RefractiveIndex
	if node.LastObject == obj && n1 == n2 {
		n2 = 1
		n = n.Negate()
	}

	r := d.Reflect(n)
	t, refracts := d.Refract(n, n1/n2)

	oR := p.Add(n.Subtract(d).Multiply(geometry.Epsilon))
	oT := p.Add(d.Subtract(n).Multiply(geometry.Epsilon))

	tau := obj.Transmittance
	iR := node.Importance * (1 - tau)
	iT := node.Importance * tau

	reflectedChild := &pathtree.Node{
		Ray:             core.NewRay(oR, r),
		Importance:      iR,
		RefractiveIndex: n1,
		LastObject:      obj,
	}
	if err := trace(reflectedChild, s, cfg, rng, false); err != nil {
		return err
	}
	node.ReflectedChild = reflectedChild

	refractedRadiance := core.Vec3{}
	if refracts {
		refractedChild := &pathtree.Node{
			Ray:             core.NewRay(oT, t),
			Importance:      iT,
			RefractiveIndex: n2,
			LastObject:      obj,
			Transmitted:     true,
		}
		if err := trace(refractedChild, s, cfg, rng, false); err != nil {
			return err
		}
		node.RefractedChild = refractedChild
		refractedRadiance = refractedChild.Radiance
	}

	sum := reflectedChild.Radiance.Multiply(iR).Add(refractedRadiance.Multiply(iT))
	node.Radiance = obj.Color.MultiplyVec(sum.Multiply(1.0 / node.Importance))
	return nil
}

func traceOpaque(node *pathtree.Node, obj *scene.Object, p core.Vec3, s *scene.Scene, cfg Config, rng *rand.Rand, isRoot bool) error {
	d := node.Ray.Direction
	n := obj.Primitive.NormalAt(p)

	incomingAngles := core.LocalAngles(d.Negate(), n)
	oR := p.Add(n.Subtract(d).Multiply(geometry.Epsilon))

	directIllum, err := s.CastShadowRays(oR, incomingAngles, obj.BRDF, n, cfg.NumberOfShadowRays, rng)
	if err != nil {
		return err
	}

	pSurv := cfg.ProbabilityNotToTerminateRay
	survives := isRoot || rng.Float64() < pSurv
	if !survives {
		node.Radiance = obj.Color.MultiplyVec(directIllum.Multiply(10))
		return nil
	}

	theta, phi := core.CosineHemisphere(rng.Float64(), rng.Float64())
	nAngles := n.ToSpherical()
	reflectionAngles := core.NewVec2(nAngles.X+theta, nAngles.Y+phi)
	r := core.FromSpherical(reflectionAngles.X, reflectionAngles.Y)

	brdf := obj.BRDF.Evaluate(incomingAngles, core.NewVec2(theta, phi))
	childImportance := node.Importance * brdf * math.Pi

	reflectedChild := &pathtree.Node{
		Ray:             core.NewRay(oR, r),
		Importance:      childImportance,
		RefractiveIndex: node.RefractiveIndex,
		LastObject:      obj,
	}
	if err := trace(reflectedChild, s, cfg, rng, false); err != nil {
		return err
	}
	node.ReflectedChild = reflectedChild

	factor := 0.5 * (childImportance / (pSurv * node.Importance))
	node.Radiance = obj.Color.MultiplyVec(reflectedChild.Radiance.Multiply(factor).Add(directIllum.Multiply(10)))
	return nil
}

// checkNodeInvariants aborts the run on a corrupted path-tree node: negative
// importance or a non-finite ray direction can only mean an upstream defect,
// never a recoverable runtime condition.
func checkNodeInvariants(node *pathtree.Node) {
	if node.Importance < 0 {
		panic(&core.InternalInvariantError{What: "negative importance in path node"})
	}
	d := node.Ray.Direction
	if math.IsNaN(d.X) || math.IsNaN(d.Y) || math.IsNaN(d.Z) {
		panic(&core.InternalInvariantError{What: "NaN ray direction in path node"})
	}
}
