package orbital

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// computeDynamics derives escape/entry geometry for obj, or marks it
// InvalidPath if its orbit is incompatible with the hierarchy.
// Grounded on OrbitalPhysics::ComputeDynamics (core spec §4.5).
func (c *Context) computeDynamics(obj ObjectHandle) {
	invariant(!obj.IsRoot(), "orbital: cannot compute dynamics on root object")

	o := obj.obj()
	elems := obj.elems()

	invariant(o.Validity == Valid || o.Validity == InvalidPath,
		"orbital: cannot compute dynamics on an object with invalid parent, mass, or position")

	apoapsisRadius := elems.P / (1 - elems.E)
	escapesLocalSpace := elems.Type == Hyperbola || apoapsisRadius > kLocalSpaceEscapeRadius

	var escapeTrueAnomaly float32
	if escapesLocalSpace {
		escapeTrueAnomaly = acosClampedf((elems.P/kLocalSpaceEscapeRadius - 1) / elems.E)
	}

	o.Validity = Valid
	if obj.IsDynamic() {
		if escapesLocalSpace && obj.ParentLsp().IsRoot() {
			c.logger.Warnf("orbital: orbit path cannot exit the simulation space")
			o.Validity = InvalidPath
			return
		}
	} else {
		if escapesLocalSpace {
			c.logger.Warnf("orbital: non-dynamic orbit cannot exit its primary's local space")
			o.Validity = InvalidPath
		}
		return
	}

	dyn := obj.dyn()
	dyn.EscapeTrueAnomaly = escapeTrueAnomaly
	dyn.EscapePoint = mgl32.Vec3{}
	dyn.EntryPoint = mgl32.Vec3{}
	dyn.EscapePointPerifocal = mgl32.Vec2{}

	if escapesLocalSpace {
		sinE, cosE := float32(math.Sin(float64(escapeTrueAnomaly))), float32(math.Cos(float64(escapeTrueAnomaly)))
		entryTrueAnomaly := pi2 - escapeTrueAnomaly
		sinN, cosN := float32(math.Sin(float64(entryTrueAnomaly))), float32(math.Cos(float64(entryTrueAnomaly)))

		escapeDirection := elems.PerifocalX.Mul(cosE).Add(elems.PerifocalY.Mul(sinE))
		entryDirection := elems.PerifocalX.Mul(cosN).Add(elems.PerifocalY.Mul(sinN))

		dyn.EscapePoint = escapeDirection.Mul(kLocalSpaceEscapeRadius)
		dyn.EntryPoint = entryDirection.Mul(kLocalSpaceEscapeRadius)

		dyn.EscapePointPerifocal[0] = kLocalSpaceEscapeRadius*cosE - elems.C
		dyn.EscapePointPerifocal[1] = kLocalSpaceEscapeRadius * sinE
	}
}

// computeInfluence creates, resizes, or collapses obj's sphere of
// influence based on its current radius of influence R_I =
// semiMajor*(m/M)^0.4 (core spec §4.5).
func (c *Context) computeInfluence(obj ObjectHandle) {
	invariant(!obj.IsRoot(), "orbital: cannot compute influence of root object")

	o := obj.obj()
	elems := obj.elems()

	massFactor := math.Pow(o.State.Mass/obj.PrimaryObj().obj().State.Mass, 0.4)
	radiusOfInfluence := elems.SemiMajor * float32(massFactor)

	if radiusOfInfluence > kMinLSpaceRadius {
		if radiusOfInfluence > kMaxLSpaceRadius {
			c.logger.Warnf("orbital: object with sphere of influence must have adequate separation from primary")
			o.Validity = InvalidPath
			return
		}
		if o.Influence == NullNode {
			lspNode := c.newLSpaceNode(obj, radiusOfInfluence)
			lsp := lspNode.lsp()
			lsp.Primary = lspNode.id
			o.Influence = lspNode.id
		} else {
			c.setRadiusImpl(newLocalSpaceHandle(c, o.Influence), radiusOfInfluence)
			invariant(c.lspaces.Get(o.Influence).Primary == o.Influence, "orbital: sphere of influence should still be its own primary")
		}
	} else if o.Influence != NullNode {
		c.collapseLocalSpace(newLocalSpaceHandle(c, o.Influence))
		o.Influence = NullNode
	}
}
