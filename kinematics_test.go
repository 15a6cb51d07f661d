package orbital

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKinematics_PromoteThenDemoteRoundTrips is the core spec §8 property:
// promote then demote (same object, same radius) preserves local
// position/velocity to floating-point tolerance.
func TestKinematics_PromoteThenDemoteRoundTrips(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	host := ctx.CreateCircular(root, 1e5, vec32(0.5, 0, 0), false)
	require.Equal(t, Valid, host.GetObject().Validity)
	soi := host.SphereOfInfluence()
	require.False(t, soi.IsNull())

	inner := ctx.Create(soi, 1e-11, vec32(-0.4, 0.1, 0), mgl64.Vec3{0.01, 0, 0.02}, false)
	require.Equal(t, soi.Id(), inner.ParentLsp().Id())

	startPos := inner.GetObject().State.Position
	startVel := inner.GetObject().State.Velocity

	ctx.promoteObjectNode(inner)
	require.Equal(t, root.Id(), inner.ParentLsp().Id())

	ctx.demoteObjectNodeInto(soi, inner)
	require.Equal(t, soi.Id(), inner.ParentLsp().Id())

	endPos := inner.GetObject().State.Position
	endVel := inner.GetObject().State.Velocity

	assert.InDelta(t, float64(startPos[0]), float64(endPos[0]), 1e-4)
	assert.InDelta(t, float64(startPos[1]), float64(endPos[1]), 1e-4)
	assert.InDelta(t, float64(startPos[2]), float64(endPos[2]), 1e-4)
	assert.InDelta(t, startVel[0], endVel[0], 1e-6)
	assert.InDelta(t, startVel[1], endVel[1], 1e-6)
	assert.InDelta(t, startVel[2], endVel[2], 1e-6)
}

// TestKinematics_SetRadiusRoundTripIsIdentityOnChildren is the core spec
// §8 property: changing a local space's radius from R to R and back is
// the identity on child positions/velocities modulo rounding.
func TestKinematics_SetRadiusRoundTripIsIdentityOnChildren(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	host := ctx.CreateEmpty(root, false)
	host.SetMass(1e5)
	host.SetPosition(vec32(0.6, 0, 0))
	lsp := host.AddLocalSpace(kDefaultLSpaceRadius)
	child := ctx.Create(lsp, 1e-11, vec32(0.2, -0.3, 0.1), mgl64.Vec3{0, 0.01, 0}, false)
	require.Equal(t, lsp.Id(), child.ParentLsp().Id())

	startPos := child.GetObject().State.Position
	startVel := child.GetObject().State.Velocity
	originalRadius := lsp.GetLocalSpace().Radius

	require.True(t, lsp.TrySetRadius(originalRadius*1.5))
	require.True(t, lsp.TrySetRadius(originalRadius))

	endPos := child.GetObject().State.Position
	endVel := child.GetObject().State.Velocity

	assert.InDelta(t, float64(startPos[0]), float64(endPos[0]), 1e-4)
	assert.InDelta(t, float64(startPos[1]), float64(endPos[1]), 1e-4)
	assert.InDelta(t, float64(startPos[2]), float64(endPos[2]), 1e-4)
	assert.InDelta(t, startVel[0], endVel[0], 1e-6)
	assert.InDelta(t, startVel[1], endVel[1], 1e-6)
	assert.InDelta(t, startVel[2], endVel[2], 1e-6)
}

func TestLocalSpaceHandle_TrySetRadiusRejectsOutOfRange(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()
	host := ctx.CreateEmpty(root, false)
	host.SetMass(1e5)
	host.SetPosition(vec32(0.6, 0, 0))
	lsp := host.AddLocalSpace(kDefaultLSpaceRadius)

	assert.False(t, lsp.TrySetRadius(kMaxLSpaceRadius*2))
	assert.False(t, lsp.TrySetRadius(kMinLSpaceRadius/2))
	assert.Equal(t, float32(kDefaultLSpaceRadius), lsp.GetLocalSpace().Radius)
}

func TestLocalSpaceHandle_SiblingsStayRadiusSortedDescending(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()
	host := ctx.CreateEmpty(root, false)
	host.SetMass(1e5)
	host.SetPosition(vec32(0.6, 0, 0))

	small := host.AddLocalSpace(0.01)
	large := host.AddLocalSpace(0.05)
	medium := host.AddLocalSpace(0.03)

	lsps := host.GetLocalSpaces()
	radii := make([]float32, len(lsps))
	for i, l := range lsps {
		radii[i] = l.GetLocalSpace().Radius
	}
	for i := 1; i < len(radii); i++ {
		assert.GreaterOrEqual(t, radii[i-1], radii[i], "siblings must be radius-sorted descending")
	}
	_, _, _ = small, large, medium
}

func TestContext_DestroyReparentsChildrenPreservingAbsoluteState(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	host := ctx.CreateCircular(root, 1e5, vec32(0.5, 0, 0), false)
	soi := host.SphereOfInfluence()
	require.False(t, soi.IsNull())

	child := ctx.Create(soi, 1e-11, vec32(0.1, 0, 0), mgl64.Vec3{0, 0, 0.01}, false)

	hostPos := host.GetObject().State.Position
	hostVel := host.GetObject().State.Velocity
	soiRadius := soi.GetLocalSpace().Radius
	childLocalPos := child.GetObject().State.Position
	childLocalVel := child.GetObject().State.Velocity

	expectedPos := childLocalPos.Mul(soiRadius).Add(hostPos)
	expectedVel := childLocalVel.Mul(float64(soiRadius)).Add(hostVel)

	ctx.Destroy(host)

	assert.False(t, ctx.Has(host.Id()))
	assert.Equal(t, root.Id(), child.ParentLsp().Id())

	gotPos := child.GetObject().State.Position
	gotVel := child.GetObject().State.Velocity
	assert.InDelta(t, float64(expectedPos[0]), float64(gotPos[0]), 1e-4)
	assert.InDelta(t, expectedVel[0], gotVel[0], 1e-6)
	assert.InDelta(t, expectedVel[2], gotVel[2], 1e-6)
}
