// Package scene holds the renderable object set: a primitive paired with
// either an opaque BRDF or transparent refractive properties, an ordered
// collection of such objects, and the closest-hit / shadow-ray queries the
// path-tracing kernel drives against it.
package scene

import (
	"github.com/riftwood/pathtracer/pkg/core"
	"github.com/riftwood/pathtracer/pkg/geometry"
	"github.com/riftwood/pathtracer/pkg/material"
)

// Kind tags whether an Object is opaque or transparent, replacing runtime
// type assertions with a single dispatchable field.
type Kind int

const (
	Opaque Kind = iota
	Transparent
)

// Object pairs a primitive with its optical behavior. A Transparent object
// is never emissive. RefractiveIndex applies only to Transparent objects and
// must be >= 1; Transmittance must be in [0,1].
type Object struct {
	ID              string
	Primitive       geometry.Primitive
	Kind            Kind
	BRDF            material.BRDF
	RefractiveIndex float64
	Transmittance   float64
	Emissive        bool
	Color           core.Vec3
	Emitted         core.Vec3
}

// NewOpaqueObject builds an opaque object with the given BRDF.
func NewOpaqueObject(id string, prim geometry.Primitive, brdf material.BRDF, color core.Vec3) *Object {
	return &Object{ID: id, Primitive: prim, Kind: Opaque, BRDF: brdf, Color: color, RefractiveIndex: 1}
}

// NewTransparentObject builds a transparent object with refractive index n
// and transmittance tau. Panics are avoided; invalid parameters are
// rejected with a GeometryError since they describe a malformed primitive
// setup, not a runtime condition.
func NewTransparentObject(id string, prim geometry.Primitive, n, tau float64, color core.Vec3) (*Object, error) {
	if n < 1 {
		return nil, &core.GeometryError{What: "transparent object refractive index must be >= 1"}
	}
	if tau < 0 || tau > 1 {
		return nil, &core.GeometryError{What: "transparent object transmittance must be in [0,1]"}
	}
	return &Object{ID: id, Primitive: prim, Kind: Transparent, RefractiveIndex: n, Transmittance: tau, Color: color}, nil
}

// NewEmissiveObject builds a diffuse emitter: opaque, with the given
// emitted radiance. A Transparent object cannot be emissive, so emissive
// construction only ever produces an Opaque object.
func NewEmissiveObject(id string, prim geometry.Primitive, brdf material.BRDF, color, emitted core.Vec3) *Object {
	o := NewOpaqueObject(id, prim, brdf, color)
	o.Emissive = true
	o.Emitted = emitted
	return o
}
