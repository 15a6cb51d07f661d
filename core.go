package orbital

// kRootObjId and kRootLspId are the two permanent nodes created at
// construction: the root object (height 0) and the root local space
// (height 1, child of the root object).
const (
	kRootObjId NodeID = 0
	kRootLspId NodeID = 1
)

// primaryLspID returns the node id of objID's primary local space: the
// Primary field of objID's parent local space.
func (c *Context) primaryLspID(objID NodeID) NodeID {
	parentLsp := c.tree.Parent(objID)
	return c.lspaces.Get(parentLsp).Primary
}

// primaryObjID returns the object that owns objID's primary local
// space.
func (c *Context) primaryObjID(objID NodeID) NodeID {
	return c.tree.Parent(c.primaryLspID(objID))
}

// isLocalSpace reports whether id is a local-space node (odd height).
func (c *Context) isLocalSpace(id NodeID) bool {
	return c.tree.IsLocalSpace(id)
}
