package orbital

import "github.com/go-gl/mathgl/mgl32"

// LocalSpaceHandle names a local-space node (odd height).
type LocalSpaceHandle struct {
	ctx *Context
	id  NodeID
}

// NullLocalSpaceHandle returns the sentinel null local-space handle.
func NullLocalSpaceHandle() LocalSpaceHandle { return LocalSpaceHandle{id: NullNode} }

func newLocalSpaceHandle(ctx *Context, id NodeID) LocalSpaceHandle {
	if id != NullNode {
		invariant(ctx.tree.Has(id), "orbital: invalid local-space node id")
		invariant(ctx.tree.Height(id)%2 == 1, "orbital: LocalSpaceHandle is for local space nodes only")
		invariant(ctx.lspaces.Has(id), "orbital: local-space node must have a LocalSpace attribute")
	}
	return LocalSpaceHandle{ctx: ctx, id: id}
}

// Id returns the handle's underlying node id.
func (h LocalSpaceHandle) Id() NodeID { return h.id }

// IsNull reports whether h is the sentinel null handle.
func (h LocalSpaceHandle) IsNull() bool { return h.id == NullNode }

// IsRoot reports whether h names the permanent root local space.
func (h LocalSpaceHandle) IsRoot() bool { return h.id == kRootLspId }

func (h LocalSpaceHandle) lsp() *LocalSpace { return h.ctx.lspaces.Get(h.id) }

// GetLocalSpace returns a copy of the local-space attribute record.
func (h LocalSpaceHandle) GetLocalSpace() LocalSpace { return *h.lsp() }

// IsHighestLSpaceOnObject reports whether h is the largest-radius
// local space among its siblings (first in sibling order).
func (h LocalSpaceHandle) IsHighestLSpaceOnObject() bool {
	parent := h.ctx.tree.Parent(h.id)
	return h.id == h.ctx.tree.Get(parent).firstChild
}

// IsInfluencing reports whether h is its own Primary: its parent
// object is the locally dominant source of gravity.
func (h LocalSpaceHandle) IsInfluencing() bool {
	return h.id == h.lsp().Primary
}

// IsSphereOfInfluence reports whether h is the parent object's sphere
// of influence.
func (h LocalSpaceHandle) IsSphereOfInfluence() bool {
	return h.id == h.ParentObj().obj().Influence
}

// ParentObj returns the object this local space is parented to.
func (h LocalSpaceHandle) ParentObj() ObjectHandle {
	return newObjectHandle(h.ctx, h.ctx.tree.Parent(h.id))
}

// ParentLsp returns the local space owning ParentObj, i.e. this local
// space's grandparent in the tree.
func (h LocalSpaceHandle) ParentLsp() LocalSpaceHandle {
	return newLocalSpaceHandle(h.ctx, h.ctx.tree.Grandparent(h.id))
}

// PrimaryLsp returns h's primary local space (itself, if influencing).
func (h LocalSpaceHandle) PrimaryLsp() LocalSpaceHandle {
	return newLocalSpaceHandle(h.ctx, h.lsp().Primary)
}

// PrimaryObj returns the object owning PrimaryLsp.
func (h LocalSpaceHandle) PrimaryObj() ObjectHandle {
	return h.PrimaryLsp().ParentObj()
}

// GetLocalObjects returns the objects parented directly to this local
// space, in sibling order.
func (h LocalSpaceHandle) GetLocalObjects() []ObjectHandle {
	children := h.ctx.tree.GetChildren(h.id)
	out := make([]ObjectHandle, len(children))
	for i, c := range children {
		out[i] = newObjectHandle(h.ctx, c)
	}
	return out
}

// NextHigherLSpace returns the sibling local space with the next
// larger radius, or the grandparent local space if h is already the
// highest on its object.
func (h LocalSpaceHandle) NextHigherLSpace() LocalSpaceHandle {
	n := h.ctx.tree.Get(h.id)
	if n.prevSibling == NullNode {
		return newLocalSpaceHandle(h.ctx, h.ctx.tree.Grandparent(h.id))
	}
	return newLocalSpaceHandle(h.ctx, n.prevSibling)
}

// LocalOffsetFromPrimary returns the offset, in this local space's
// units, of its origin from its primary's origin.
func (h LocalSpaceHandle) LocalOffsetFromPrimary() mgl32.Vec3 {
	return h.ctx.localOffsetFromPrimary(h.id, h.lsp().Primary)
}

// TrySetRadius sets the local space's radius if it lies within
// [kMinLSpaceRadius, kMaxLSpaceRadius] plus tolerance, reporting whether
// it did anything. Panics if the local space is influencing.
func (h LocalSpaceHandle) TrySetRadius(radius float32) bool {
	if !h.IsInfluencing() &&
		radius < kMaxLSpaceRadius+kEpsLSpaceRadius &&
		radius > kMinLSpaceRadius-kEpsLSpaceRadius {
		h.ctx.setRadiusImpl(h, radius)
		return true
	}
	invariant(!h.IsInfluencing(), "orbital: local-space radius of influencing entities cannot be manually set")
	h.ctx.logger.Warnf("orbital: attempted to set invalid local-space radius (%v): must be in [%v, %v]", radius, kMinLSpaceRadius, kMaxLSpaceRadius)
	return false
}

func (h LocalSpaceHandle) equals(o LocalSpaceHandle) bool { return h.id == o.id }
