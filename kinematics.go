package orbital

import "math"

// newObjectNode allocates a fresh object node under parentLsp, with
// its required Object and Elements attributes.
func (c *Context) newObjectNode(parentLsp LocalSpaceHandle) ObjectHandle {
	id := c.tree.NewChild(parentLsp.id)
	c.objects.Add(id, Object{Influence: NullNode, Integration: Integration{updateNext: NullNode}})
	c.elements.Add(id, Elements{})
	return newObjectHandle(c, id)
}

// removeObjectNode frees objID's attribute records and tree node.
func (c *Context) removeObjectNode(obj ObjectHandle) {
	c.objects.Remove(obj.id)
	c.elements.Remove(obj.id)
	c.dynamics.TryRemove(obj.id)
	c.tree.Remove(obj.id)
}

// newLSpaceNode allocates a fresh local-space node under parentObj,
// setting its initial radius through setRadiusImpl (which requires a
// non-zero placeholder radius to compute a rescale factor from).
func (c *Context) newLSpaceNode(parentObj ObjectHandle, radius float32) LocalSpaceHandle {
	id := c.tree.NewChild(parentObj.id)
	c.lspaces.Add(id, LocalSpace{Radius: 1})
	lsp := newLocalSpaceHandle(c, id)
	c.setRadiusImpl(lsp, radius)
	return lsp
}

func (c *Context) removeLSpaceNode(lsp LocalSpaceHandle) {
	c.lspaces.Remove(lsp.id)
	c.tree.Remove(lsp.id)
}

// rescaleLocalSpaces scales every local space owned directly by obj
// by rescalingFactor, recomputing each's MetersPerRadius from its
// (now-stable) parent local space's scale.
func (c *Context) rescaleLocalSpaces(obj ObjectHandle, rescalingFactor float32) {
	parentLspMetersPerRadius := obj.ParentLsp().lsp().MetersPerRadius
	for _, lspHandle := range obj.GetLocalSpaces() {
		lsp := lspHandle.lsp()
		lsp.Radius *= rescalingFactor
		lsp.MetersPerRadius = parentLspMetersPerRadius * float64(lsp.Radius)
	}
}

// promoteObjectNode moves obj to the next-higher local space,
// rescaling position/velocity to preserve its absolute state. Grounded
// on OrbitalPhysics::PromoteObjectNode (core spec §4.6).
func (c *Context) promoteObjectNode(obj ObjectHandle) {
	oldLsp := obj.ParentLsp()
	invariant(!oldLsp.IsRoot(), "orbital: cannot promote objects in the root local space")
	newLsp := oldLsp.NextHigherLSpace()

	o := obj.obj()
	var rescalingFactor float32
	if oldLsp.IsHighestLSpaceOnObject() {
		rescalingFactor = oldLsp.lsp().Radius
		parentObj := oldLsp.ParentObj().obj()
		o.State.Position = o.State.Position.Mul(rescalingFactor).Add(parentObj.State.Position)
		o.State.Velocity = o.State.Velocity.Mul(float64(rescalingFactor)).Add(parentObj.State.Velocity)
	} else {
		rescalingFactor = oldLsp.lsp().Radius / newLsp.lsp().Radius
		o.State.Position = o.State.Position.Mul(rescalingFactor)
		o.State.Velocity = o.State.Velocity.Mul(float64(rescalingFactor))
	}

	c.tree.Move(obj.id, newLsp.id)

	c.rescaleLocalSpaces(obj, rescalingFactor)

	c.computeStateValidity(obj)
	c.tryComputeAttributes(obj)
	c.subtreeCascadeAttributeChanges(obj.id)
}

// demoteObjectNodeInto moves obj into newLsp, a local space owned by
// another object in obj's current local space. Grounded on
// OrbitalPhysics::DemoteObjectNode(LSpaceNode, ObjectNode).
func (c *Context) demoteObjectNodeInto(newLsp LocalSpaceHandle, obj ObjectHandle) {
	invariant(newLsp.ParentLsp().equals(obj.ParentLsp()), "orbital: the given local space is not in the same local space as the given object")

	rescalingFactor := 1 / newLsp.lsp().Radius

	hostObj := newLsp.ParentObj().obj()
	o := obj.obj()
	o.State.Position = o.State.Position.Sub(hostObj.State.Position).Mul(rescalingFactor)
	o.State.Velocity = o.State.Velocity.Sub(hostObj.State.Velocity).Mul(float64(rescalingFactor))

	c.tree.Move(obj.id, newLsp.id)

	c.rescaleLocalSpaces(obj, rescalingFactor)
}

// demoteObjectNode moves obj to the next-lower sibling local space
// attached to the same parent object. Grounded on
// OrbitalPhysics::DemoteObjectNode(ObjectNode).
func (c *Context) demoteObjectNode(obj ObjectHandle) {
	lsp := obj.ParentLsp()
	n := c.tree.Get(lsp.id)
	invariant(n.nextSibling != NullNode, "orbital: there is no next-lower local space")
	newLsp := newLocalSpaceHandle(c, n.nextSibling)

	rescalingFactor := lsp.lsp().Radius / newLsp.lsp().Radius

	o := obj.obj()
	o.State.Position = o.State.Position.Mul(rescalingFactor)
	o.State.Velocity = o.State.Velocity.Mul(float64(rescalingFactor))

	c.tree.Move(obj.id, newLsp.id)

	c.rescaleLocalSpaces(obj, rescalingFactor)
}

// setRadiusImpl resizes lsp to radius, rescaling/relocating child
// objects as necessary, then re-sorting lsp among its siblings by
// radius descending, and finally adopting any objects from the
// newly-adjacent next-higher space that now fall inside it. Grounded
// on LSpaceNode::SetRadiusImpl (core spec §4.6).
func (c *Context) setRadiusImpl(lsp LocalSpaceHandle, radius float32) {
	invariant(lsp.id != kRootLspId, "orbital: cannot set radius of root local space")
	invariant(radius < kMaxLSpaceRadius+kEpsLSpaceRadius && radius > kMinLSpaceRadius-kEpsLSpaceRadius,
		"orbital: attempted to set invalid radius")

	n := c.tree.Get(lsp.id)
	lspRec := lsp.lsp()

	rescaleFactor := lspRec.Radius / radius

	lspRec.Radius = radius
	if c.tree.Height(lsp.id) == 1 {
		lspRec.MetersPerRadius = float64(radius) * c.lspaces.Get(kRootLspId).MetersPerRadius
	} else {
		lspRec.MetersPerRadius = float64(radius) * c.lspaces.Get(c.tree.Grandparent(lsp.id)).MetersPerRadius
	}

	parentObj := lsp.ParentObj()
	if parentObj.obj().Influence != NullNode && radius <= c.lspaces.Get(parentObj.obj().Influence).Radius {
		lspRec.Primary = lsp.id
	} else {
		lspRec.Primary = parentObj.PrimaryLsp().id
	}

	childObjs := lsp.GetLocalObjects()

	prevLsp := NullLocalSpaceHandle()
	if n.prevSibling != NullNode {
		prevLsp = newLocalSpaceHandle(c, n.prevSibling)
	}
	promoteAll := !prevLsp.IsNull() && radius > prevLsp.lsp().Radius

	for _, objHandle := range childObjs {
		o := objHandle.obj()
		o.State.Position = o.State.Position.Mul(rescaleFactor)
		o.State.Velocity = o.State.Velocity.Mul(float64(rescaleFactor))

		posMag2 := o.State.Position.Dot(o.State.Position)
		if promoteAll || float32(math.Sqrt(float64(posMag2))) > kLocalSpaceEscapeRadius {
			c.promoteObjectNode(objHandle) // "promoting" still works: lsp is not yet re-sorted among its siblings
		} else {
			c.computeStateValidity(objHandle)
			c.tryComputeAttributes(objHandle)
			c.subtreeCascadeAttributeChanges(objHandle.id)
		}
	}

	// Re-sort the local space in its sibling linked-list.
	if rescaleFactor < 1 {
		// Radius increased: sort node left-wards.
		for n.prevSibling != NullNode {
			prev := newLocalSpaceHandle(c, n.prevSibling)
			if radius > prev.lsp().Radius {
				c.tree.SwapWithPrevSibling(lsp.id)
				n = c.tree.Get(lsp.id)
			} else {
				break
			}
		}
	} else {
		// Radius decreased: sort node right-wards.
		for n.nextSibling != NullNode {
			next := newLocalSpaceHandle(c, n.nextSibling)
			if radius < next.lsp().Radius {
				c.tree.SwapWithNextSibling(lsp.id)
				n = c.tree.Get(lsp.id)
			} else {
				break
			}
		}
	}

	// Adopt any child objects from the new next-higher local space.
	nextHigher := lsp.NextHigherLSpace()
	nextHigherIsSibling := nextHigher.id == n.prevSibling
	radiusInPrev := lspRec.Radius / nextHigher.lsp().Radius
	lspPos := parentObj.obj().State.Position

	for _, objHandle := range nextHigher.GetLocalObjects() {
		if objHandle.id == c.tree.Get(lsp.id).parent {
			continue // skip parent object
		}
		o := objHandle.obj()
		if nextHigherIsSibling {
			posMag2 := o.State.Position.Dot(o.State.Position)
			if float32(math.Sqrt(float64(posMag2))) < radiusInPrev {
				c.demoteObjectNode(objHandle)
			}
		} else {
			diff := o.State.Position.Sub(lspPos)
			diffMag2 := diff.Dot(diff)
			if float32(math.Sqrt(float64(diffMag2))) < lspRec.Radius {
				c.demoteObjectNodeInto(lsp, objHandle)
			}
		}
	}

	c.subtreeCascadeAttributeChanges(lsp.id)
}

// collapseLocalSpace promotes every object in lsp to the next-higher
// space, preserving absolute state, then frees lsp.
func (c *Context) collapseLocalSpace(lsp LocalSpaceHandle) {
	for _, objHandle := range lsp.GetLocalObjects() {
		c.promoteObjectNode(objHandle)
	}
	invariant(c.tree.Get(lsp.id).firstChild == NullNode, "orbital: failed to remove all children")
	c.removeLSpaceNode(lsp)
}
