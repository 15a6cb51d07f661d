package orbital

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidity_RootScalingUnsetInvalidatesParent(t *testing.T) {
	ctx := NewContext(NewNopLogger())
	// Root scaling was never set (MetersPerRadius stays 0), so even a
	// well-formed object should come out InvalidParent.
	root := ctx.GetRootLocalSpaceNode()
	obj := ctx.Create(root, 1e5, vec32(0.5, 0, 0), mgl64.Vec3{}, false)
	assert.Equal(t, InvalidParent, obj.GetObject().Validity)
}

func TestValidity_NonPositiveMassIsInvalid(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	obj := ctx.Create(root, 0, vec32(0.5, 0, 0), mgl64.Vec3{}, false)
	assert.Equal(t, InvalidMass, obj.GetObject().Validity)

	obj.SetMass(1e5)
	assert.Equal(t, Valid, obj.GetObject().Validity)
}

func TestValidity_MassTooLargeRelativeToPrimaryIsInvalid(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	rootMass := ctx.GetRootObjectNode().GetObject().State.Mass
	// m/(m+M) must stay below kMaxCOG (1e-4); pick m comparable to M to
	// blow well past that.
	obj := ctx.Create(root, rootMass, vec32(0.5, 0, 0), mgl64.Vec3{}, false)
	assert.Equal(t, InvalidMass, obj.GetObject().Validity)
}

func TestValidity_PositionOutsideEscapeRadiusIsInvalid(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	obj := ctx.Create(root, 1e5, vec32(1.5, 0, 0), mgl64.Vec3{}, false)
	assert.Equal(t, InvalidPosition, obj.GetObject().Validity)
}

func TestValidity_PositionCoincidentWithPrimaryIsInvalid(t *testing.T) {
	ctx := newTestContext()
	root := ctx.GetRootLocalSpaceNode()

	obj := ctx.Create(root, 1e5, vec32(0, 0, 0), mgl64.Vec3{}, false)
	assert.Equal(t, InvalidPosition, obj.GetObject().Validity)
}

func TestValidity_EvaluationOrderParentBeforeMassBeforePosition(t *testing.T) {
	// No root scaling set: even an object with bad mass AND bad position
	// must report InvalidParent first (core spec §4.3's evaluation order).
	ctx := NewContext(NewNopLogger())
	ctx.GetRootObjectNode().SetMass(1 / kGravitational) // mass alone isn't enough; scaling still unset
	root := ctx.GetRootLocalSpaceNode()

	obj := ctx.Create(root, 0, vec32(5, 0, 0), mgl64.Vec3{}, false)
	assert.Equal(t, InvalidParent, obj.GetObject().Validity)
}

func TestValidity_RootIsAlwaysParentAndPositionValid(t *testing.T) {
	ctx := NewContext(NewNopLogger())
	root := ctx.GetRootObjectNode()
	require.True(t, root.IsRoot())

	assert.True(t, ctx.validParent(root))
	assert.True(t, ctx.validPosition(root))
}
