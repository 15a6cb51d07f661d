// Package orbital implements a hierarchical two-body orbital-mechanics
// simulation core: an alternating tree of objects and local spaces
// (spheres of influence), with arena-backed attribute storage,
// Keplerian element computation, and a priority-queue-driven
// integrator supporting both analytic (Angular) and Velocity-Verlet
// (Linear) stepping.
package orbital

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Context owns every node and attribute in one simulation: the tree,
// its four attribute stores, and the update queue. There is no global
// singleton context (unlike the source's static m_Ctx); callers thread
// a *Context through every handle they hold. Grounded on
// OrbitalPhysics::Context (core spec §4.1).
type Context struct {
	tree *tree

	objects  *attributeStorage[Object]
	lspaces  *attributeStorage[LocalSpace]
	elements *attributeStorage[Elements]
	dynamics *attributeStorage[Dynamics]

	updateQueueFront NodeID

	logger Logger

	// onLspChanged is invoked whenever a dynamic object escapes its
	// local space and is promoted, mirroring Context::m_LSpaceChangedCallback.
	onLspChanged func(ObjectHandle)
}

// NewContext creates a Context with its two permanent nodes already
// populated: the root object (height 0, Validity InvalidMass until a
// positive root mass is set) and the root local space (height 1,
// Radius 1, its own Primary). Grounded on Context's constructor.
func NewContext(logger Logger) *Context {
	if logger == nil {
		logger = NewNopLogger()
	}

	c := &Context{
		tree:     newTree(),
		objects:  newAttributeStorage[Object](),
		lspaces:  newAttributeStorage[LocalSpace](),
		elements: newAttributeStorage[Elements](),
		dynamics: newAttributeStorage[Dynamics](),
		logger:   logger,
	}
	c.updateQueueFront = NullNode

	objID := c.tree.NewRoot()
	lspID := c.tree.NewChild(objID)
	invariant(objID == kRootObjId, "orbital: context failed to create root object node")
	invariant(lspID == kRootLspId, "orbital: context failed to create root local space node")

	rootObj := c.objects.Add(objID, Object{Influence: NullNode, Integration: Integration{updateNext: NullNode}})
	rootObj.Validity = InvalidMass

	rootLsp := c.lspaces.Add(lspID, LocalSpace{})
	rootLsp.Radius = 1
	rootLsp.Primary = kRootLspId

	return c
}

// Has reports whether nodeID identifies a live object or local space.
func (c *Context) Has(nodeID NodeID) bool {
	return c.tree.Has(nodeID)
}

// GetRootObjectNode returns the permanent root object.
func (c *Context) GetRootObjectNode() ObjectHandle {
	return newObjectHandle(c, kRootObjId)
}

// GetRootLocalSpaceNode returns the permanent root local space.
func (c *Context) GetRootLocalSpaceNode() LocalSpaceHandle {
	return newLocalSpaceHandle(c, kRootLspId)
}

// SetRootSpaceScaling sets the number of meters represented by one
// unit-radius of the root local space, then cascades attribute
// recomputation across the whole tree (every object's validity
// depends on the root having been scaled). Grounded on
// OrbitalPhysics::SetRootSpaceScaling.
func (c *Context) SetRootSpaceScaling(meters float64) {
	c.lspaces.Get(kRootLspId).MetersPerRadius = meters
	c.subtreeCascadeAttributeChanges(kRootLspId)
}

// OnLspChanged registers the callback invoked whenever a dynamic
// object escapes its local space during OnUpdate.
func (c *Context) OnLspChanged(fn func(ObjectHandle)) {
	c.onLspChanged = fn
}

// Create makes a new object in lsp with the given mass, position, and
// velocity. Grounded on OrbitalPhysics::Create (core spec §4.1, four
// overloads collapsed here into optional trailing arguments via the
// three wrapper constructors below).
func (c *Context) Create(lsp LocalSpaceHandle, mass float64, position mgl32.Vec3, velocity mgl64.Vec3, dynamic bool) ObjectHandle {
	invariant(!lsp.IsNull(), "orbital: invalid local space")

	obj := c.newObjectNode(lsp)
	o := obj.obj()
	o.State.Mass = mass
	o.State.Position = position
	o.State.Velocity = velocity

	if dynamic {
		c.dynamics.GetOrAdd(obj.id)
	}

	c.computeStateValidity(obj)
	c.tryComputeAttributes(obj)

	return obj
}

// CreateCircular makes a new object in lsp at position, with velocity
// defaulting to a circular counter-clockwise orbit around lsp's
// primary.
func (c *Context) CreateCircular(lsp LocalSpaceHandle, mass float64, position mgl32.Vec3, dynamic bool) ObjectHandle {
	invariant(!lsp.IsNull(), "orbital: invalid local space")
	return c.Create(lsp, mass, position, c.circularOrbitVelocity(lsp, position), dynamic)
}

// CreateEmpty makes an uninitialised object (zero mass, position, and
// velocity) in lsp.
func (c *Context) CreateEmpty(lsp LocalSpaceHandle, dynamic bool) ObjectHandle {
	invariant(!lsp.IsNull(), "orbital: invalid local space")
	return c.Create(lsp, 0.0, mgl32.Vec3{}, mgl64.Vec3{}, dynamic)
}

// CreateInRoot makes an uninitialised object in the root local space.
func (c *Context) CreateInRoot(dynamic bool) ObjectHandle {
	return c.Create(c.GetRootLocalSpaceNode(), 0.0, mgl32.Vec3{}, mgl64.Vec3{}, dynamic)
}

// Destroy removes obj, re-parenting any objects in its local spaces to
// obj's own parent local space (rescaling their state to preserve
// absolute position/velocity). Grounded on OrbitalPhysics::Destroy.
func (c *Context) Destroy(obj ObjectHandle) {
	invariant(!obj.IsNull(), "orbital: invalid node")

	parentLsp := obj.ParentLsp()
	o := obj.obj()

	for _, lsp := range obj.GetLocalSpaces() {
		rescalingFactor := lsp.lsp().Radius
		for _, sub := range lsp.GetLocalObjects() {
			subObj := sub.obj()
			subObj.State.Position = subObj.State.Position.Mul(rescalingFactor).Add(o.State.Position)
			subObj.State.Velocity = subObj.State.Velocity.Mul(float64(rescalingFactor)).Add(o.State.Velocity)

			c.tree.Move(sub.id, parentLsp.id)

			c.computeStateValidity(sub)
			c.tryComputeAttributes(sub)
			c.subtreeCascadeAttributeChanges(sub.id)
		}
	}

	c.removeObjectNode(obj)
}

// CollapseLocalSpace deletes lsp, moving any objects within to the
// next-higher local space while preserving their absolute
// position/velocity.
func (c *Context) CollapseLocalSpace(lsp LocalSpaceHandle) {
	c.collapseLocalSpace(lsp)
}
