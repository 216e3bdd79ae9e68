package material

import (
	"math"

	"github.com/riftwood/pathtracer/pkg/core"
)

// Lambertian is a perfectly diffuse reflectance: f = rho/pi, independent of
// the incoming and outgoing angles.
type Lambertian struct {
	Rho float64
}

func NewLambertian(rho float64) *Lambertian {
	return &Lambertian{Rho: rho}
}

func (l *Lambertian) Evaluate(incoming, outgoing core.Vec2) float64 {
	return l.Rho / math.Pi
}
