package orbital

import "github.com/go-gl/mathgl/mgl32"

// localOffsetFromPrimary recursively folds the chain of local-space
// offsets between lspID and primaryLspID, rescaling by each local
// space's own radius as the recursion unwinds outward. Grounded on
// LSpaceNode::LocalOffsetFromPrimary.
func (c *Context) localOffsetFromPrimary(lspID, primaryLspID NodeID) mgl32.Vec3 {
	if lspID == primaryLspID {
		return mgl32.Vec3{}
	}
	lspParentObjID := c.tree.Parent(lspID)
	inner := c.objects.Get(lspParentObjID).State.Position.Add(
		c.localOffsetFromPrimary(c.tree.Parent(lspParentObjID), primaryLspID))
	radius := c.lspaces.Get(lspID).Radius
	return inner.Mul(1 / radius)
}
