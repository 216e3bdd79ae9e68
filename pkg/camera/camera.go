// Package camera builds the primary ray array consumed by the renderer: a
// pinhole camera with optional stratified supersampling.
package camera

import (
	"math"
	"math/rand"

	"github.com/riftwood/pathtracer/pkg/core"
)

// Orientation is a 3x3 rotation expressed as three orthonormal basis
// vectors, applied to a view-space direction (x=right, y=up, z=forward).
type Orientation struct {
	Right, Up, Forward core.Vec3
}

// Identity is the orientation that leaves view-space directions unchanged.
func Identity() Orientation {
	return Orientation{
		Right:   core.NewVec3(1, 0, 0),
		Up:      core.NewVec3(0, 1, 0),
		Forward: core.NewVec3(0, 0, 1),
	}
}

func (o Orientation) Apply(v core.Vec3) core.Vec3 {
	return o.Right.Multiply(v.X).Add(o.Up.Multiply(v.Y)).Add(o.Forward.Multiply(v.Z))
}

// Camera generates primary rays for a pinhole view plane at distance
// ViewPlaneDistance along Orientation.Forward from Position.
type Camera struct {
	Width, Height     int
	PixelSizeX        float64
	PixelSizeY        float64
	Position          core.Vec3
	Orientation       Orientation
	ViewPlaneDistance float64
	SamplesPerPixel   int
}

func New(width, height int, pixelSizeX, pixelSizeY float64, position core.Vec3, orientation Orientation, viewPlaneDistance float64, samplesPerPixel int) *Camera {
	return &Camera{
		Width:             width,
		Height:            height,
		PixelSizeX:        pixelSizeX,
		PixelSizeY:        pixelSizeY,
		Position:          position,
		Orientation:       orientation,
		ViewPlaneDistance: viewPlaneDistance,
		SamplesPerPixel:   samplesPerPixel,
	}
}

// GenerateRays builds the full W*H*S primary ray array, row-major with
// sample stride innermost: index (y*W+x)*S+s.
func (c *Camera) GenerateRays(rng *rand.Rand) []core.Ray {
	rays := make([]core.Ray, c.Width*c.Height*c.SamplesPerPixel)
	for x := 0; x < c.Width; x++ {
		col := c.GenerateColumnRays(x, rng)
		for y := 0; y < c.Height; y++ {
			base := (y*c.Width + x) * c.SamplesPerPixel
			copy(rays[base:base+c.SamplesPerPixel], col[y*c.SamplesPerPixel:(y+1)*c.SamplesPerPixel])
		}
	}
	return rays
}

// GenerateColumnRays builds the H*S primary rays for a single image column,
// indexed row-major with sample stride innermost: index y*S+s. Rendering by
// column lets the dispatcher seed one independent RNG stream per column.
func (c *Camera) GenerateColumnRays(x int, rng *rand.Rand) []core.Ray {
	rays := make([]core.Ray, c.Height*c.SamplesPerPixel)

	grid := int(math.Sqrt(float64(c.SamplesPerPixel)))
	stratified := grid*grid == c.SamplesPerPixel && grid > 0

	x0 := (float64(x) - float64(c.Width)/2) * c.PixelSizeX

	for y := 0; y < c.Height; y++ {
		y0 := (float64(y) - float64(c.Height)/2) * c.PixelSizeY
		base := y * c.SamplesPerPixel

		for s := 0; s < c.SamplesPerPixel; s++ {
			var sx, sy float64
			switch {
			case c.SamplesPerPixel == 1:
				sx = x0 + c.PixelSizeX/2
				sy = y0 + c.PixelSizeY/2
			case stratified:
				cellX, cellY := s%grid, s/grid
				cellSizeX := c.PixelSizeX / float64(grid)
				cellSizeY := c.PixelSizeY / float64(grid)
				sx = x0 + (float64(cellX)+rng.Float64())*cellSizeX
				sy = y0 + (float64(cellY)+rng.Float64())*cellSizeY
			default:
				sx = x0 + rng.Float64()*c.PixelSizeX
				sy = y0 + rng.Float64()*c.PixelSizeY
			}

			dir := c.Orientation.Apply(core.NewVec3(sx, sy, c.ViewPlaneDistance)).Normalize()
			rays[base+s] = core.NewRay(c.Position, dir)
		}
	}

	return rays
}
