package orbital

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// computeElements derives the Keplerian elements of obj's orbit around
// its primary from its instantaneous state. Grounded on
// OrbitalPhysics::ComputeElements (core spec §4.4).
//
// Positions are single precision; angular momentum, the gravitational
// parameter, and velocity stay double precision throughout, per the
// core spec's floating-point regime note: it is load-bearing for
// numerical stability at small radii.
func (c *Context) computeElements(obj ObjectHandle) {
	invariant(!obj.IsRoot(), "orbital: cannot compute elements on root object")

	o := obj.obj()
	elems := obj.elems()

	lsp := obj.ParentLsp()

	grav := kGravitational * obj.PrimaryObj().obj().State.Mass * math.Pow(lsp.lsp().MetersPerRadius, -3.0)
	elems.Grav = grav

	positionFromPrimary := obj.LocalPositionFromPrimary()

	hvec := to64(positionFromPrimary).Cross(o.State.Velocity)
	h2 := hvec.Dot(hvec)
	elems.H = math.Sqrt(h2)
	if elems.H == 0 {
		*elems = Elements{Grav: grav}
		return
	}
	elems.PerifocalNormal = to32(hvec.Mul(1 / elems.H))

	elems.P = float32(h2 / elems.Grav)
	elems.VConstant = elems.Grav / elems.H

	posDir := positionFromPrimary.Normalize()
	evec64 := o.State.Velocity.Cross(hvec).Mul(1 / elems.Grav)
	evec := to32(evec64).Sub(posDir)
	elems.E = evec.Len()

	e2 := elems.E * elems.E
	var e2term float32
	if elems.E < kEccentricityEpsilon {
		elems.E = 0
		elems.Type = Circle

		if absf(elems.PerifocalNormal.Dot(kReferenceY)) > kParallelDotProductLimit {
			elems.PerifocalX = kReferenceX
		} else {
			elems.PerifocalX = kReferenceY.Cross(elems.PerifocalNormal)
		}
		elems.PerifocalY = elems.PerifocalNormal.Cross(elems.PerifocalX)

		e2term = 1
	} else {
		elems.PerifocalX = evec.Mul(1 / elems.E)
		elems.PerifocalY = elems.PerifocalNormal.Cross(elems.PerifocalX)

		if elems.E < 1 {
			elems.Type = Ellipse
			e2term = 1 - e2
		} else {
			elems.Type = Hyperbola
			e2term = e2 - 1
		}
		e2term += float32EpsilonValue
	}

	elems.SemiMajor = elems.P / e2term
	elems.SemiMinor = elems.SemiMajor * float32(math.Sqrt(float64(e2term)))

	elems.C = elems.P / (1 + elems.E)
	if elems.Type == Hyperbola {
		elems.C += elems.SemiMajor
	} else {
		elems.C -= elems.SemiMajor
	}

	elems.T = 2 * math.Pi * float64(elems.SemiMajor*elems.SemiMinor) / elems.H

	elems.TrueAnomaly = angleBetweenUnitVectors(elems.PerifocalX, posDir)
	if posDir.Dot(elems.PerifocalY) < 0 {
		elems.TrueAnomaly = pi2 - elems.TrueAnomaly
	}

	elems.I = acosClampedf(elems.PerifocalNormal.Dot(kReferenceNormal))
	if absf(elems.PerifocalNormal.Dot(kReferenceNormal)) > kParallelDotProductLimit {
		elems.N = elems.PerifocalX
	} else {
		elems.N = kReferenceNormal.Cross(elems.PerifocalNormal).Normalize()
	}
	elems.Omega = acosClampedf(elems.N.Dot(kReferenceX))
	if elems.N.Dot(kReferenceY) < 0 {
		elems.Omega = pi2 - elems.Omega
	}
	elems.ArgPeriapsis = angleBetweenUnitVectors(elems.N, elems.PerifocalX)
	if elems.N.Dot(elems.PerifocalY) > 0 {
		elems.ArgPeriapsis = pi2 - elems.ArgPeriapsis
	}
	elems.PerifocalOrientation = mgl32.QuatRotate(elems.ArgPeriapsis, elems.PerifocalNormal).
		Mul(mgl32.QuatRotate(elems.I, elems.N)).
		Mul(mgl32.QuatRotate(elems.Omega, kReferenceNormal))
}

// orbitEquation returns the orbital radius at the given true anomaly:
// r = p / (1 + e*cos(ν)).
func orbitEquation(elems *Elements, trueAnomaly float32) float32 {
	return elems.P / (1 + elems.E*float32(math.Cos(float64(trueAnomaly))))
}

// objectPositionAtTrueAnomaly returns obj's local position (in its own
// parent local space) at the given true anomaly along its conic.
func (c *Context) objectPositionAtTrueAnomaly(obj ObjectHandle, trueAnomaly float32) mgl32.Vec3 {
	elems := obj.elems()
	r := orbitEquation(elems, trueAnomaly)
	sinT, cosT := math.Sincos(float64(trueAnomaly))
	direction := elems.PerifocalX.Mul(float32(cosT)).Add(elems.PerifocalY.Mul(float32(sinT)))
	positionFromPrimary := direction.Mul(r)
	return positionFromPrimary.Sub(obj.ParentLsp().LocalOffsetFromPrimary())
}
