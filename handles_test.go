package orbital

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectHandle_NullAndRootFlags(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootObjectNode()

	assert.True(t, root.IsRoot())
	assert.False(t, root.IsNull())
	assert.True(t, NullObjectHandle().IsNull())
	assert.False(t, NullObjectHandle().IsRoot())
}

func TestObjectHandle_ParentNavigationMatchesTreeShape(t *testing.T) {
	ctx := newTestContext()
	rootLsp := ctx.GetRootLocalSpaceNode()

	host := ctx.CreateCircular(rootLsp, 1e5, vec32(0.5, 0, 0), false)
	require.Equal(t, rootLsp.Id(), host.ParentLsp().Id())
	require.True(t, host.ParentObj().IsRoot())

	soi := host.SphereOfInfluence()
	require.False(t, soi.IsNull())

	child := ctx.CreateEmpty(soi, false)
	assert.Equal(t, soi.Id(), child.ParentLsp().Id())
	assert.True(t, child.ParentObj().equals(host))
	assert.True(t, child.PrimaryLsp().equals(soi))
	assert.True(t, child.PrimaryObj().equals(host))
}

func TestObjectHandle_SphereOfInfluenceNullUntilInfluencing(t *testing.T) {
	ctx := newTestContext()
	rootLsp := ctx.GetRootLocalSpaceNode()

	// A tiny mass at a modest radius shouldn't carve out a sphere of
	// influence big enough to clear kMinLSpaceRadius.
	tiny := ctx.Create(rootLsp, 1e-11, vec32(0.5, 0, 0), mgl64.Vec3{}, false)
	assert.False(t, tiny.IsInfluencing())
	assert.True(t, tiny.SphereOfInfluence().IsNull())

	massive := ctx.CreateCircular(rootLsp, 1e5, vec32(0.5, 0, 0), false)
	assert.True(t, massive.IsInfluencing())
	assert.False(t, massive.SphereOfInfluence().IsNull())
}

func TestObjectHandle_SetMassRerunsValidity(t *testing.T) {
	ctx := newTestContext()
	rootLsp := ctx.GetRootLocalSpaceNode()

	obj := ctx.Create(rootLsp, 0, vec32(0.5, 0, 0), mgl64.Vec3{}, false)
	require.Equal(t, InvalidMass, obj.GetObject().Validity)

	obj.SetMass(1e5)
	assert.Equal(t, Valid, obj.GetObject().Validity)
	assert.Equal(t, 1e5, obj.GetObject().State.Mass)
}

func TestObjectHandle_SetPositionRerunsValidityAndElements(t *testing.T) {
	ctx := newTestContext()
	rootLsp := ctx.GetRootLocalSpaceNode()

	obj := ctx.CreateCircular(rootLsp, 1e5, vec32(0.5, 0, 0), false)
	require.Equal(t, Valid, obj.GetObject().Validity)

	obj.SetPosition(vec32(1.5, 0, 0))
	assert.Equal(t, InvalidPosition, obj.GetObject().Validity)
}

func TestObjectHandle_SetVelocitySkipsValidityButRecomputesElements(t *testing.T) {
	ctx := newTestContext()
	rootLsp := ctx.GetRootLocalSpaceNode()

	circular := ctx.CreateCircular(rootLsp, 1e5, vec32(0.9, 0, 0), false)
	originalType := circular.GetElements().Type
	require.Equal(t, Circle, originalType)

	circular.SetVelocity(circular.GetObject().State.Velocity.Mul(0.5))
	assert.Equal(t, Valid, circular.GetObject().Validity, "SetVelocity must not touch Validity")
	assert.Equal(t, Ellipse, circular.GetElements().Type, "elements must recompute from the new velocity")
}

func TestObjectHandle_CircularOrbitVelocityProducesACircle(t *testing.T) {
	ctx := newTestContext()
	rootLsp := ctx.GetRootLocalSpaceNode()

	obj := ctx.CreateEmpty(rootLsp, false)
	obj.SetMass(1e5)
	obj.SetPosition(vec32(0.9, 0, 0))
	obj.SetVelocity(obj.CircularOrbitVelocity())

	require.Equal(t, Valid, obj.GetObject().Validity)
	assert.Equal(t, Circle, obj.GetElements().Type)
}

func TestObjectHandle_SetDynamicTogglesDynamicsAttribute(t *testing.T) {
	ctx := newTestContext()
	rootLsp := ctx.GetRootLocalSpaceNode()

	obj := ctx.CreateCircular(rootLsp, 1e5, vec32(0.5, 0, 0), false)
	require.False(t, obj.IsDynamic())

	obj.SetDynamic(true)
	assert.True(t, obj.IsDynamic())

	obj.SetDynamic(false)
	assert.False(t, obj.IsDynamic())
}

func TestObjectHandle_SetContinuousAccelerationRequiresDynamic(t *testing.T) {
	ctx := newTestContext()
	rootLsp := ctx.GetRootLocalSpaceNode()

	obj := ctx.CreateCircular(rootLsp, 1e5, vec32(0.5, 0, 0), true)
	require.True(t, obj.IsDynamic())

	accel := mgl64.Vec3{0, 0, 1e-4}
	obj.SetContinuousAcceleration(accel)
	assert.Equal(t, accel, obj.GetDynamics().ContAcceleration)
}

func TestObjectHandle_SetContinuousAccelerationPanicsWhenNotDynamic(t *testing.T) {
	ctx := newTestContext()
	rootLsp := ctx.GetRootLocalSpaceNode()
	obj := ctx.CreateCircular(rootLsp, 1e5, vec32(0.5, 0, 0), false)

	assert.Panics(t, func() {
		obj.SetContinuousAcceleration(mgl64.Vec3{0, 0, 1})
	})
}

func TestObjectHandle_ApplyInstantAccelerationAddsVelocityDelta(t *testing.T) {
	ctx := newTestContext()
	rootLsp := ctx.GetRootLocalSpaceNode()

	obj := ctx.CreateCircular(rootLsp, 1e5, vec32(0.9, 0, 0), false)
	before := obj.GetObject().State.Velocity
	delta := mgl64.Vec3{0, 0, 0.001}

	obj.ApplyInstantAcceleration(delta)
	after := obj.GetObject().State.Velocity

	assert.InDelta(t, before[0]+delta[0], after[0], 1e-9)
	assert.InDelta(t, before[2]+delta[2], after[2], 1e-9)
}

func TestObjectHandle_LocalPositionFromPrimaryAccountsForChainOffset(t *testing.T) {
	ctx := newTestContext()
	rootLsp := ctx.GetRootLocalSpaceNode()

	host := ctx.CreateCircular(rootLsp, 1e5, vec32(0.5, 0, 0), false)
	soi := host.SphereOfInfluence()
	require.False(t, soi.IsNull())

	child := ctx.Create(soi, 1e-11, vec32(0.2, 0, 0), mgl64.Vec3{}, false)
	// The child's primary is the SOI itself, so its position from
	// primary is just its own local position plus a zero offset.
	require.True(t, child.PrimaryLsp().equals(soi))
	got := child.LocalPositionFromPrimary()
	assert.InDelta(t, float64(child.GetObject().State.Position[0]), float64(got[0]), 1e-6)
}

func TestObjectHandle_SetLocalSpaceMovesWithoutRescaling(t *testing.T) {
	ctx := newTestContext()
	rootLsp := ctx.GetRootLocalSpaceNode()

	hostA := ctx.CreateCircular(rootLsp, 1e5, vec32(0.5, 0, 0), false)
	soiA := hostA.SphereOfInfluence()
	require.False(t, soiA.IsNull())

	obj := ctx.Create(rootLsp, 1e-11, vec32(0.3, 0, 0), mgl64.Vec3{}, false)
	before := obj.GetObject().State.Position

	obj.SetLocalSpace(soiA)
	after := obj.GetObject().State.Position

	assert.Equal(t, before, after, "SetLocalSpace must not rescale stored position")
	assert.Equal(t, soiA.Id(), obj.ParentLsp().Id())
}
