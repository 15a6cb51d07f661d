package orbital

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// newTestContext returns a Context with root scaling and root mass set
// so that mu in the root local space is a round 1e-3 (G * (1/G) * 10^-3),
// matching the core spec's §8 scenario numbers.
func newTestContext() *Context {
	ctx := NewContext(NewNopLogger())
	ctx.SetRootSpaceScaling(10)
	ctx.GetRootObjectNode().SetMass(1 / kGravitational)
	return ctx
}

func vecLen64(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}

func vec32(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x, y, z} }
