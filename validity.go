package orbital

// validParent mirrors the source's ValidParent: the root object is
// always parent-valid, every other object requires its parent object to
// be Valid and the root local space to have received a scaling.
func (c *Context) validParent(obj ObjectHandle) bool {
	if obj.IsRoot() {
		return true
	}
	if c.lspaces.Get(kRootLspId).MetersPerRadius > 0.0 {
		return c.objects.Get(c.tree.Grandparent(obj.id)).Validity == Valid
	}
	c.logger.Warnf("orbital: root scaling has not been set")
	return false
}

// validMass mirrors the source's ValidMass, inequality direction
// preserved exactly (kMaxCOG > m/(m+M), not the reverse) and the root
// bypass preserved: see DESIGN.md's Open Questions.
func (c *Context) validMass(obj ObjectHandle) bool {
	o := c.objects.Get(obj.id)
	hasValidMass := o.State.Mass > 0.0
	if obj.IsRoot() {
		return hasValidMass
	}
	primaryMass := c.objects.Get(c.primaryObjID(obj.id)).State.Mass
	return hasValidMass && kMaxCOG > o.State.Mass/(o.State.Mass+primaryMass)
}

// validPosition mirrors the source's ValidPosition.
func (c *Context) validPosition(obj ObjectHandle) bool {
	const kEscapeDistance2 = kLocalSpaceEscapeRadius * kLocalSpaceEscapeRadius

	if obj.IsRoot() {
		return true
	}
	o := c.objects.Get(obj.id)
	posMag2 := o.State.Position.Dot(o.State.Position)
	posFromPrimary := obj.LocalPositionFromPrimary()
	posFromPrimaryMag2 := posFromPrimary.Dot(posFromPrimary)
	return posMag2 < kEscapeDistance2 && posFromPrimaryMag2 > 0
}

// computeStateValidity evaluates Parent -> Mass -> Position in order,
// first failure wins, and stores the result on the object. The Path
// check is not made here: computeDynamics and computeInfluence set
// InvalidPath afterwards, inside tryComputeAttributes. Velocity is
// never invalid (core spec §4.3).
func (c *Context) computeStateValidity(obj ObjectHandle) bool {
	validity := Valid
	switch {
	case !c.validParent(obj):
		validity = InvalidParent
	case !c.validMass(obj):
		validity = InvalidMass
	case !c.validPosition(obj):
		validity = InvalidPosition
	}
	c.objects.Get(obj.id).Validity = validity
	return validity == Valid
}
