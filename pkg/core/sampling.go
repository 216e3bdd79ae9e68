package core

import "math"

// CosineHemisphere draws a direction (theta, phi) around the +Z pole with the
// standard cosine-weighted density cos(theta)/pi, from two independent
// uniforms u1,u2 in [0,1). phi is uniform on [0,2*pi); cosTheta=sqrt(u2) is
// the textbook inverse-transform mapping that makes E[cosTheta]=2/3.
func CosineHemisphere(u1, u2 float64) (theta, phi float64) {
	phi = 2 * math.Pi * u1
	cosTheta := math.Sqrt(u2)
	theta = math.Acos(max(-1, min(1, cosTheta)))
	return theta, phi
}

// UniformUnitSquare jitters (u,v) uniformly inside the sub-cell
// [x0,x0+size) x [y0,y0+size) using two independent uniforms.
func UniformUnitSquare(x0, y0, size, u1, u2 float64) (float64, float64) {
	return x0 + u1*size, y0 + u2*size
}
