package orbital

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// computeObjDT picks a per-object timestep inversely proportional to
// speed, floored at minDT, so fast-moving objects get finer steps.
// Grounded on OrbitalPhysics::ComputeObjDT (core spec §4.7).
func computeObjDT(velocityMagnitude, minDT float64) float64 {
	if velocityMagnitude > 0 {
		return math.Max(kMaxUpdateDistance/velocityMagnitude, minDT)
	}
	return minDT
}

// circularOrbitSpeed returns the speed of a circular orbit at
// localRadius (in lsp's radii) around lsp's primary.
func (c *Context) circularOrbitSpeed(lsp LocalSpaceHandle, localRadius float32) float64 {
	primaryMass := lsp.PrimaryObj().obj().State.Mass
	mu := kGravitational * primaryMass * math.Pow(lsp.lsp().MetersPerRadius, -3.0)
	return math.Sqrt(mu / float64(localRadius))
}

// circularOrbitVelocity returns the velocity of a counter-clockwise
// circular orbit at localPosition (in lsp's own local coordinates)
// around lsp's primary, keeping the orbital plane as close to the
// reference plane as the geometry allows. Grounded on
// OrbitalPhysics::CircularOrbitVelocity (core spec §4.7).
func (c *Context) circularOrbitVelocity(lsp LocalSpaceHandle, localPosition mgl32.Vec3) mgl64.Vec3 {
	positionFromPrimary := localPosition.Add(lsp.LocalOffsetFromPrimary())
	rMag := float32(math.Sqrt(float64(positionFromPrimary.Dot(positionFromPrimary))))
	if rMag == 0 {
		return mgl64.Vec3{}
	}

	rDir := positionFromPrimary.Mul(1 / rMag)
	rDotNormal := rDir.Dot(kReferenceNormal)

	var vDir mgl32.Vec3
	if absf(rDotNormal) > kParallelDotProductLimit {
		if rDotNormal > 0 {
			vDir = kReferenceX.Mul(-1)
		} else {
			vDir = kReferenceX
		}
	} else {
		vDir = kReferenceNormal.Cross(rDir).Normalize()
	}

	speed := c.circularOrbitSpeed(lsp, rMag)
	return to64(vDir).Mul(speed)
}

// tryComputeAttributes recomputes an object's orbital elements,
// dynamics, and influence from its current state, re-enters it into
// the update queue if it came out Valid, and picks its stepping
// method for the next update. Grounded on
// OrbitalPhysics::TryComputeAttributes (core spec §4.7).
func (c *Context) tryComputeAttributes(obj ObjectHandle) {
	c.updateQueueSafeRemove(obj)

	o := obj.obj()
	if obj.IsRoot() || !(o.Validity == Valid || o.Validity == InvalidPath) {
		return
	}

	c.computeElements(obj)
	c.computeDynamics(obj)
	c.computeInfluence(obj)

	if o.Validity != Valid {
		return
	}

	c.updateQueuePushFront(obj)

	speed := math.Sqrt(o.State.Velocity.Dot(o.State.Velocity))
	o.Integration.PrevDT = computeObjDT(speed, kDefaultMinDT)

	positionFromPrimary := obj.LocalPositionFromPrimary()
	posMag2 := positionFromPrimary.Dot(positionFromPrimary)
	elems := obj.elems()
	o.Integration.DeltaTrueAnomaly = float32(o.Integration.PrevDT*elems.H) / posMag2

	if o.Integration.DeltaTrueAnomaly > kMinUpdateTrueAnomaly {
		o.Integration.Method = Angular
	} else {
		posDir := positionFromPrimary.Mul(1 / float32(math.Sqrt(float64(posMag2))))
		o.State.Acceleration = to64(posDir).Mul(-1).Mul(elems.Grav / float64(posMag2))
		if obj.IsDynamic() {
			o.State.Acceleration = o.State.Acceleration.Add(obj.dyn().ContAcceleration)
		}
		o.Integration.Method = Linear
	}
}

// subtreeCascadeAttributeChanges recomputes validity and attributes
// for every object descending from rootID, skipping local-space
// nodes. Grounded on OrbitalPhysics::SubtreeCascadeAttributeChanges.
func (c *Context) subtreeCascadeAttributeChanges(rootID NodeID) {
	for _, nodeID := range c.tree.GetSubtree(rootID) {
		if c.isLocalSpace(nodeID) {
			continue
		}
		obj := newObjectHandle(c, nodeID)
		c.computeStateValidity(obj)
		c.tryComputeAttributes(obj)
	}
}

// stepAngular advances obj's true anomaly analytically by its current
// DeltaTrueAnomaly and derives position/velocity from the resulting
// conic point.
func (c *Context) stepAngular(obj ObjectHandle, o *Object, elems *Elements, minObjDT float64) {
	elems.TrueAnomaly += o.Integration.DeltaTrueAnomaly
	elems.TrueAnomaly = wrapf(elems.TrueAnomaly, pi2)

	sinT, cosT := math.Sincos(float64(elems.TrueAnomaly))
	r := elems.P / (1 + elems.E*float32(cosT))

	positionFromPrimary := elems.PerifocalX.Mul(float32(cosT)).Add(elems.PerifocalY.Mul(float32(sinT))).Mul(r)
	o.State.Position = positionFromPrimary.Sub(obj.ParentLsp().LocalOffsetFromPrimary())
	o.State.Velocity = to64(elems.PerifocalY.Mul(elems.E + float32(cosT)).Sub(elems.PerifocalX.Mul(float32(sinT)))).Mul(elems.VConstant)

	speed := math.Sqrt(o.State.Velocity.Dot(o.State.Velocity))
	o.Integration.PrevDT = computeObjDT(speed, minObjDT)
	o.Integration.DeltaTrueAnomaly = float32(o.Integration.PrevDT*elems.H) / (r * r)
}

// stepLinear performs one Velocity-Verlet step for obj using its
// current State.Acceleration as a0, re-running full attribute
// computation if it is dynamically accelerating, or the cheaper
// true-anomaly-only update otherwise.
func (c *Context) stepLinear(obj ObjectHandle, o *Object, elems *Elements, isDynamic bool, minObjDT float64) {
	objDT := o.Integration.PrevDT
	o.State.Position = o.State.Position.Add(
		to32(o.State.Velocity.Mul(objDT)).Add(to32(o.State.Acceleration.Mul(objDT * objDT)).Mul(0.5)))

	positionFromPrimary := obj.LocalPositionFromPrimary()
	r2 := positionFromPrimary.Dot(positionFromPrimary)
	newAcceleration := to64(positionFromPrimary).Mul(-1).Mul(elems.Grav / float64(r2*float32(math.Sqrt(float64(r2)))))

	isDynamicallyAccelerating := false
	if isDynamic {
		contAccel := obj.dyn().ContAcceleration
		newAcceleration = newAcceleration.Add(contAccel)
		isDynamicallyAccelerating = contAccel != mgl64.Vec3{}
	}
	o.State.Velocity = o.State.Velocity.Add(o.State.Acceleration.Add(newAcceleration).Mul(0.5 * objDT))
	o.State.Acceleration = newAcceleration

	if isDynamicallyAccelerating {
		c.computeElements(obj)
		c.computeDynamics(obj)
		c.computeInfluence(obj)
	} else {
		posDir := positionFromPrimary.Normalize()
		newTrueAnomaly := angleBetweenUnitVectors(elems.PerifocalX, posDir)
		if posDir.Dot(elems.PerifocalY) < 0 {
			newTrueAnomaly = pi2 - newTrueAnomaly
		}

		dTrueAnomaly := newTrueAnomaly - elems.TrueAnomaly
		switch {
		case dTrueAnomaly < -float32(math.Pi):
			elems.TrueAnomaly = newTrueAnomaly
		case !(dTrueAnomaly > float32(math.Pi)):
			if newTrueAnomaly > elems.TrueAnomaly {
				elems.TrueAnomaly = newTrueAnomaly
			}
		}
	}

	speed := math.Sqrt(o.State.Velocity.Dot(o.State.Velocity))
	o.Integration.PrevDT = computeObjDT(speed, minObjDT)
	if !isDynamicallyAccelerating {
		posMag2 := positionFromPrimary.Dot(positionFromPrimary)
		o.Integration.DeltaTrueAnomaly = float32(o.Integration.PrevDT*elems.H) / posMag2
		if o.Integration.DeltaTrueAnomaly > kMinUpdateTrueAnomaly {
			o.Integration.Method = Angular
		}
	}
}

// stepEscapeAndAdvance tests for a dynamic escape event, promoting the
// object and invoking the local-space-changed callback if one
// occurred, then advances the update timer and re-sorts the queue.
func (c *Context) stepEscapeAndAdvance(obj ObjectHandle, o *Object, minObjDT float64) {
	if obj.IsDynamic() {
		dyn := obj.dyn()
		elems := obj.elems()
		if dyn.EscapeTrueAnomaly > 0 && elems.TrueAnomaly < float32(math.Pi) && elems.TrueAnomaly > dyn.EscapeTrueAnomaly {
			c.promoteObjectNode(obj)

			if c.onLspChanged != nil {
				c.onLspChanged(obj)
			} else {
				c.logger.Warnf("orbital: local-space-changed callback is not set")
			}

			speed := math.Sqrt(o.State.Velocity.Dot(o.State.Velocity))
			o.Integration.PrevDT = computeObjDT(speed, minObjDT)

			positionFromPrimary := obj.LocalPositionFromPrimary()
			posMag2 := positionFromPrimary.Dot(positionFromPrimary)
			newElems := obj.elems()
			o.Integration.DeltaTrueAnomaly = float32(o.Integration.PrevDT*newElems.H) / posMag2

			if o.Integration.DeltaTrueAnomaly > kMinUpdateTrueAnomaly {
				o.Integration.Method = Angular
			} else {
				posDir := positionFromPrimary.Mul(1 / float32(math.Sqrt(float64(posMag2))))
				o.State.Acceleration = to64(posDir).Mul(-1).Mul(newElems.Grav / float64(posMag2))
				o.State.Acceleration = o.State.Acceleration.Add(obj.dyn().ContAcceleration)
				o.Integration.Method = Linear
			}
		}
	}

	o.Integration.UpdateTimer += o.Integration.PrevDT
	c.updateQueueSortFront()
}

// OnUpdate advances the simulation by dt seconds: every object whose
// update timer has gone negative is stepped (possibly several times,
// bounded by kMaxObjectUpdates per frame) via its current integration
// method, escape events are processed as they're detected, and the
// remaining timers are then debited by dt.
//
// Grounded on OrbitalPhysics::OnUpdate (core spec §4.8). The source's
// Angular case falls through into the Linear case in the same
// iteration whenever Δν drops below kMinUpdateTrueAnomaly; Go has no
// equivalent cross-block fallthrough, so that branch instead switches
// the method and calls stepLinear directly, which is behaviorally
// identical. See DESIGN.md's Open Questions.
func (c *Context) OnUpdate(dt float64) {
	if c.updateQueueFront == NullNode {
		return
	}

	minObjDT := dt / kMaxObjectUpdates

	for c.objects.Get(c.updateQueueFront).Integration.UpdateTimer < 0.0 {
		objID := c.updateQueueFront
		obj := newObjectHandle(c, objID)
		o := c.objects.Get(objID)
		elems := c.elements.Get(objID)
		isDynamic := obj.IsDynamic()

		switch o.Integration.Method {
		case Angular:
			if o.Integration.DeltaTrueAnomaly < kMinUpdateTrueAnomaly {
				positionFromPrimary := obj.LocalPositionFromPrimary()
				posMag2 := positionFromPrimary.Dot(positionFromPrimary)
				posDir := positionFromPrimary.Mul(1 / float32(math.Sqrt(float64(posMag2))))
				o.State.Acceleration = to64(posDir).Mul(-1).Mul(elems.Grav / float64(posMag2))
				if isDynamic {
					o.State.Acceleration = o.State.Acceleration.Add(obj.dyn().ContAcceleration)
				}
				o.Integration.Method = Linear
				c.logger.Debugf("orbital: object %d switched from angular to linear integration", objID)
				c.stepLinear(obj, o, elems, isDynamic, minObjDT)
			} else {
				c.stepAngular(obj, o, elems, minObjDT)
			}
		case Linear:
			c.stepLinear(obj, o, elems, isDynamic, minObjDT)
		}

		c.stepEscapeAndAdvance(obj, o, minObjDT)
	}

	objID := c.updateQueueFront
	for objID != NullNode {
		o := c.objects.Get(objID)
		o.Integration.UpdateTimer -= dt
		objID = o.Integration.updateNext
	}
}
