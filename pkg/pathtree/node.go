// Package pathtree implements the per-sample ray tree built and torn down by
// the path-tracing kernel. A node owns its children outright; dropping the
// root (letting it go out of scope) frees the whole tree through ordinary
// garbage collection. LastObject is a non-owning back-reference into the
// scene, which outlives every tree built against it.
package pathtree

import (
	"github.com/riftwood/pathtracer/pkg/core"
	"github.com/riftwood/pathtracer/pkg/scene"
)

// Node is one vertex of a path tree: the ray it was cast along, its
// importance weight, the refractive index of the medium it travels through,
// the object it last intersected (nil at the root), whether that
// intersection was a transmission, its owned children, and the radiance
// accumulated once trace() has visited it.
type Node struct {
	Ray             core.Ray
	Importance      float64
	RefractiveIndex float64
	LastObject      *scene.Object
	Transmitted     bool
	ReflectedChild  *Node
	RefractedChild  *Node
	Radiance        core.Vec3
}

// NewRoot builds the root of a path tree: importance 1, refractive index 1
// (air), no last object, not a transmission.
func NewRoot(ray core.Ray) *Node {
	return &Node{Ray: ray, Importance: 1, RefractiveIndex: 1}
}
