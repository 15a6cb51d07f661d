package orbital

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// ObjectHandle and LocalSpaceHandle are the only public read/write API
// over the arena: lightweight, copyable values that assert depth parity
// on construction and never own the node they name (core spec §4.2).

// ObjectHandle names an object node (even height).
type ObjectHandle struct {
	ctx *Context
	id  NodeID
}

// NullObjectHandle returns the sentinel null object handle.
func NullObjectHandle() ObjectHandle { return ObjectHandle{id: NullNode} }

func newObjectHandle(ctx *Context, id NodeID) ObjectHandle {
	if id != NullNode {
		invariant(ctx.tree.Has(id), "orbital: invalid object node id")
		invariant(ctx.tree.Height(id)%2 == 0, "orbital: ObjectHandle is for object nodes only")
		invariant(ctx.objects.Has(id), "orbital: object node must have an Object attribute")
		invariant(ctx.elements.Has(id) || id == kRootObjId, "orbital: object node must have an Elements attribute")
	}
	return ObjectHandle{ctx: ctx, id: id}
}

// Id returns the handle's underlying node id.
func (h ObjectHandle) Id() NodeID { return h.id }

// IsNull reports whether h is the sentinel null handle.
func (h ObjectHandle) IsNull() bool { return h.id == NullNode }

// IsRoot reports whether h names the permanent root object.
func (h ObjectHandle) IsRoot() bool { return h.id == kRootObjId }

// IsDynamic reports whether h carries a Dynamics attribute.
func (h ObjectHandle) IsDynamic() bool { return h.ctx.dynamics.Has(h.id) }

// IsInfluencing reports whether h has a sphere of influence.
func (h ObjectHandle) IsInfluencing() bool {
	return h.ctx.objects.Get(h.id).Influence != NullNode
}

func (h ObjectHandle) obj() *Object     { return h.ctx.objects.Get(h.id) }
func (h ObjectHandle) elems() *Elements { return h.ctx.elements.Get(h.id) }
func (h ObjectHandle) dyn() *Dynamics   { return h.ctx.dynamics.Get(h.id) }

// GetObject returns a copy of the object's state/integration record.
func (h ObjectHandle) GetObject() Object { return *h.obj() }

// GetElements returns a copy of the object's Keplerian elements.
func (h ObjectHandle) GetElements() Elements { return *h.elems() }

// GetDynamics returns a copy of the object's escape/entry geometry.
// Panics if the object is not dynamic; check IsDynamic first.
func (h ObjectHandle) GetDynamics() Dynamics { return *h.dyn() }

// ParentLsp returns the local space this object is parented to.
func (h ObjectHandle) ParentLsp() LocalSpaceHandle {
	return newLocalSpaceHandle(h.ctx, h.ctx.tree.Parent(h.id))
}

// ParentObj returns the object owning this object's parent local
// space, i.e. its grandparent in the tree.
func (h ObjectHandle) ParentObj() ObjectHandle {
	return newObjectHandle(h.ctx, h.ctx.tree.Grandparent(h.id))
}

// PrimaryLsp returns the local space in which this object's Keplerian
// elements are computed.
func (h ObjectHandle) PrimaryLsp() LocalSpaceHandle {
	return newLocalSpaceHandle(h.ctx, h.ctx.primaryLspID(h.id))
}

// PrimaryObj returns the object that owns PrimaryLsp.
func (h ObjectHandle) PrimaryObj() ObjectHandle {
	return newObjectHandle(h.ctx, h.ctx.primaryObjID(h.id))
}

// SphereOfInfluence returns this object's sphere-of-influence local
// space, or the null handle if it is not influencing.
func (h ObjectHandle) SphereOfInfluence() LocalSpaceHandle {
	inf := h.obj().Influence
	if inf == NullNode {
		return NullLocalSpaceHandle()
	}
	return newLocalSpaceHandle(h.ctx, inf)
}

// LocalPositionFromPrimary returns the object's position, in its
// primary local space's units, offset through the chain of local
// spaces between its own parent and its primary.
func (h ObjectHandle) LocalPositionFromPrimary() mgl32.Vec3 {
	return h.obj().State.Position.Add(h.ParentLsp().LocalOffsetFromPrimary())
}

// GetLocalSpaces returns the object's child local spaces, radius-sorted
// descending (sibling order).
func (h ObjectHandle) GetLocalSpaces() []LocalSpaceHandle {
	children := h.ctx.tree.GetChildren(h.id)
	out := make([]LocalSpaceHandle, len(children))
	for i, c := range children {
		out[i] = newLocalSpaceHandle(h.ctx, c)
	}
	return out
}

// SetLocalSpace moves the object into newLsp, preserving its
// locally-stored position/velocity (no rescaling), then runs the
// mutation cascade.
func (h ObjectHandle) SetLocalSpace(newLsp LocalSpaceHandle) {
	invariant(!h.IsRoot() && !h.IsNull() && !newLsp.IsNull(), "orbital: invalid nodes passed to SetLocalSpace")

	h.ctx.tree.Move(h.id, newLsp.id)

	h.ctx.computeStateValidity(h)
	h.ctx.tryComputeAttributes(h)
	h.ctx.subtreeCascadeAttributeChanges(h.id)
}

// SetMass updates the object's mass and re-runs the mutation cascade.
func (h ObjectHandle) SetMass(mass float64) {
	h.obj().State.Mass = mass
	h.ctx.computeStateValidity(h)
	h.ctx.tryComputeAttributes(h)
	h.ctx.subtreeCascadeAttributeChanges(h.id)
}

// SetPosition updates the object's position and re-runs the mutation
// cascade. Panics on the root or null object.
func (h ObjectHandle) SetPosition(position mgl32.Vec3) {
	invariant(!h.IsNull() && !h.IsRoot(), "orbital: cannot set position of root or null object")

	h.obj().State.Position = position
	h.ctx.computeStateValidity(h)
	h.ctx.tryComputeAttributes(h)
	h.ctx.subtreeCascadeAttributeChanges(h.id)
}

// SetVelocity updates the object's velocity and re-runs attribute
// computation and cascade, but deliberately skips the validity
// recompute: velocity has no validity rule (core spec §4.3), matching
// the source's SetVelocity exactly (see DESIGN.md's Open Questions).
func (h ObjectHandle) SetVelocity(velocity mgl64.Vec3) {
	invariant(!h.IsNull() && !h.IsRoot(), "orbital: cannot set velocity of root or null object")

	h.obj().State.Velocity = velocity
	h.ctx.tryComputeAttributes(h)
	h.ctx.subtreeCascadeAttributeChanges(h.id)
}

// CircularOrbitVelocity returns the velocity for a circular
// counter-clockwise orbit around the object's current primary, given
// its current position.
func (h ObjectHandle) CircularOrbitVelocity() mgl64.Vec3 {
	return h.ctx.circularOrbitVelocity(h.ParentLsp(), h.obj().State.Position)
}

// SetDynamic flips whether the object carries a Dynamics attribute and
// re-runs validity/attribute computation.
func (h ObjectHandle) SetDynamic(isDynamic bool) {
	invariant(!h.IsRoot(), "orbital: cannot set root object dynamics")

	if isDynamic {
		h.ctx.dynamics.GetOrAdd(h.id)
	} else {
		h.ctx.dynamics.TryRemove(h.id)
	}
	h.ctx.computeStateValidity(h)
	h.ctx.tryComputeAttributes(h)
}

// AddLocalSpace creates a new local space as a child of this object.
func (h ObjectHandle) AddLocalSpace(radius float32) LocalSpaceHandle {
	return h.ctx.newLSpaceNode(h, radius)
}

// SetContinuousAcceleration sets a constant acceleration applied every
// Linear integration step while the object is dynamic; the zero vector
// clears it. The object must already be dynamic (SetDynamic(true)).
// Supplemented: see SPEC_FULL.md, "DOMAIN: WHAT THE DISTILLATION DROPPED".
func (h ObjectHandle) SetContinuousAcceleration(accel mgl64.Vec3) {
	invariant(h.IsDynamic(), "orbital: SetContinuousAcceleration requires SetDynamic(true) first")
	h.dyn().ContAcceleration = accel
	h.ctx.tryComputeAttributes(h)
}

// ApplyInstantAcceleration adds an instantaneous velocity change (an
// impulse, not a continuous force) and re-runs the mutation cascade,
// exactly like SetVelocity plus a delta instead of an assignment.
// Supplemented: see SPEC_FULL.md, "DOMAIN: WHAT THE DISTILLATION DROPPED".
func (h ObjectHandle) ApplyInstantAcceleration(deltaV mgl64.Vec3) {
	invariant(!h.IsNull() && !h.IsRoot(), "orbital: cannot apply acceleration to root or null object")

	h.obj().State.Velocity = h.obj().State.Velocity.Add(deltaV)
	h.ctx.tryComputeAttributes(h)
	h.ctx.subtreeCascadeAttributeChanges(h.id)
}

func (h ObjectHandle) equals(o ObjectHandle) bool { return h.id == o.id }
