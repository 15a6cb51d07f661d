package orbital

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDynamics_BoundOrbitStaysValidWithZeroedGeometry(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	obj := ctx.CreateCircular(root, 1e5, vec32(0.5, 0, 0), true)
	require.Equal(t, Valid, obj.GetObject().Validity)

	dyn := obj.GetDynamics()
	assert.Equal(t, float32(0), dyn.EscapeTrueAnomaly)
}

func TestComputeDynamics_NonDynamicEscapingOrbitIsInvalidPath(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	circular := ctx.CreateCircular(root, 1e5, vec32(0.9, 0, 0), false)
	fastVelocity := circular.GetObject().State.Velocity.Mul(1.5)
	obj := ctx.Create(root, 1e5, vec32(0.9, 0, 0), fastVelocity, false)

	assert.Equal(t, InvalidPath, obj.GetObject().Validity)
}

func TestComputeDynamics_DynamicEscapingRootLocalSpaceIsInvalidPath(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	circular := ctx.CreateCircular(root, 1e5, vec32(0.9, 0, 0), false)
	fastVelocity := circular.GetObject().State.Velocity.Mul(1.5)
	obj := ctx.Create(root, 1e5, vec32(0.9, 0, 0), fastVelocity, true)

	// A dynamic object escaping the root local space has nowhere to go:
	// the root has no parent to promote into.
	assert.Equal(t, InvalidPath, obj.GetObject().Validity)
}

func TestComputeDynamics_DynamicEscapingNonRootLocalSpaceComputesGeometry(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	host := ctx.CreateCircular(root, 1e5, vec32(0.5, 0, 0), false)
	soi := host.SphereOfInfluence()
	require.False(t, soi.IsNull())

	circular := ctx.CreateCircular(soi, 1e-11, vec32(0.9, 0, 0), false)
	fastVelocity := circular.GetObject().State.Velocity.Mul(1.5)
	ship := ctx.Create(soi, 1e-11, vec32(0.9, 0, 0), fastVelocity, true)

	require.Equal(t, Valid, ship.GetObject().Validity)
	dyn := ship.GetDynamics()
	assert.Greater(t, dyn.EscapeTrueAnomaly, float32(0))
	assert.NotEqual(t, mgl32.Vec3{}, dyn.EscapePoint)
}

func TestComputeInfluence_SmallMassNeverGainsASphere(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	// A circular orbit (nonzero semi-major axis) with negligible mass:
	// the radius of influence scales with (m/M)^0.4, so it stays well
	// under kMinLSpaceRadius however large the semi-major axis is.
	obj := ctx.CreateCircular(root, 1e-11, vec32(0.5, 0, 0), false)
	assert.False(t, obj.IsInfluencing())
}

func TestComputeInfluence_ShrinkingMassCollapsesExistingSphere(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	obj := ctx.CreateCircular(root, 1e5, vec32(0.5, 0, 0), false)
	require.True(t, obj.IsInfluencing())

	obj.SetMass(1e-11)
	assert.False(t, obj.IsInfluencing(), "dropping mass below threshold must collapse the sphere of influence")
}

func TestComputeInfluence_GrowingMassCreatesASphere(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	// Own mass doesn't enter the orbit's shape (SemiMajor depends only
	// on position/velocity/primary mass), so raising mass afterwards
	// only grows the radius-of-influence factor (m/M)^0.4.
	obj := ctx.CreateCircular(root, 1e-11, vec32(0.5, 0, 0), false)
	require.False(t, obj.IsInfluencing())

	obj.SetMass(1e5)
	assert.True(t, obj.IsInfluencing())
}
