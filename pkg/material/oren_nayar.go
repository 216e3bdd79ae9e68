package material

import (
	"math"

	"github.com/riftwood/pathtracer/pkg/core"
)

// OrenNayar is a rough-diffuse reflectance model parameterized by albedo Rho
// and roughness Sigma (the standard deviation, in radians, of the assumed
// microfacet slope distribution).
type OrenNayar struct {
	Rho   float64
	Sigma float64
}

func NewOrenNayar(rho, sigma float64) *OrenNayar {
	return &OrenNayar{Rho: rho, Sigma: sigma}
}

// Evaluate implements the Oren-Nayar qualitative model:
// f = (rho/pi) * (A + B*max(0,cos(phiI-phiR))*sin(alpha)*tan(beta))
// with alpha = max(thetaI,thetaR), beta = min(thetaI,thetaR).
func (o *OrenNayar) Evaluate(incoming, outgoing core.Vec2) float64 {
	sigma2 := o.Sigma * o.Sigma
	a := 1 - sigma2/(2*(sigma2+0.33))
	b := 0.45 * sigma2 / (sigma2 + 0.09)

	thetaI, phiI := incoming.X, incoming.Y
	thetaR, phiR := outgoing.X, outgoing.Y

	alpha := math.Max(thetaI, thetaR)
	beta := math.Min(thetaI, thetaR)

	cosDelta := math.Cos(phiI - phiR)
	if cosDelta < 0 {
		cosDelta = 0
	}

	return (o.Rho / math.Pi) * (a + b*cosDelta*math.Sin(alpha)*math.Tan(beta))
}
