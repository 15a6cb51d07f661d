package orbital

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// attributeStorage is a sparse node-id -> attribute-record mapping backed
// by a recycling Arena, grounded on OrbitalPhysics.h's AttributeStorage<T>
// template (vector + empties set + node-to-attr map).
type attributeStorage[T any] struct {
	items      *Arena[T]
	nodeToAttr map[NodeID]NodeID
}

func newAttributeStorage[T any]() *attributeStorage[T] {
	return &attributeStorage[T]{items: NewArena[T](), nodeToAttr: make(map[NodeID]NodeID)}
}

func (s *attributeStorage[T]) Has(nodeID NodeID) bool {
	_, ok := s.nodeToAttr[nodeID]
	return ok
}

func (s *attributeStorage[T]) Add(nodeID NodeID, value T) *T {
	invariant(!s.Has(nodeID), "orbital: node already has this attribute")
	attrID := s.items.New()
	*s.items.Get(attrID) = value
	s.nodeToAttr[nodeID] = attrID
	return s.items.Get(attrID)
}

func (s *attributeStorage[T]) Get(nodeID NodeID) *T {
	attrID, ok := s.nodeToAttr[nodeID]
	invariant(ok, "orbital: node has no such attribute")
	return s.items.Get(attrID)
}

func (s *attributeStorage[T]) GetOrAdd(nodeID NodeID) *T {
	if attrID, ok := s.nodeToAttr[nodeID]; ok {
		return s.items.Get(attrID)
	}
	var zero T
	return s.Add(nodeID, zero)
}

func (s *attributeStorage[T]) Remove(nodeID NodeID) {
	attrID, ok := s.nodeToAttr[nodeID]
	invariant(ok, "orbital: node has no such attribute")
	s.items.Erase(attrID)
	delete(s.nodeToAttr, nodeID)
}

func (s *attributeStorage[T]) TryRemove(nodeID NodeID) bool {
	if !s.Has(nodeID) {
		return false
	}
	s.Remove(nodeID)
	return true
}

// Validity mirrors the core spec's in-band error state on every object.
// Numeric values are carried over from the source's enum so log output
// and any serialized form reads the same way.
type Validity int

const (
	InvalidParent Validity = iota
	InvalidMass
	InvalidPosition
	InvalidPath
	Valid Validity = 100
)

func (v Validity) String() string {
	switch v {
	case InvalidParent:
		return "InvalidParent"
	case InvalidMass:
		return "InvalidMass"
	case InvalidPosition:
		return "InvalidPosition"
	case InvalidPath:
		return "InvalidPath"
	case Valid:
		return "Valid"
	default:
		return "Validity(unknown)"
	}
}

// OrbitType classifies the conic a set of Elements describes.
type OrbitType int

const (
	Circle OrbitType = iota
	Ellipse
	Hyperbola
)

func (t OrbitType) String() string {
	switch t {
	case Circle:
		return "Circle"
	case Ellipse:
		return "Ellipse"
	case Hyperbola:
		return "Hyperbola"
	default:
		return "OrbitType(unknown)"
	}
}

// Method selects which integrator steps an object forward.
type Method int

const (
	Angular Method = iota
	Linear
)

func (m Method) String() string {
	if m == Angular {
		return "Angular"
	}
	return "Linear"
}

// State is an object's instantaneous kinematic state. Position is single
// precision (local-space-normalized coordinates); mass, velocity and
// acceleration are double precision, matching the core spec's
// floating-point regime note.
type State struct {
	Mass         float64
	Position     mgl32.Vec3
	Velocity     mgl64.Vec3
	Acceleration mgl64.Vec3
}

// Integration tracks an object's place in the update queue and its
// current stepping method.
type Integration struct {
	Method           Method
	PrevDT           float64
	UpdateTimer      float64
	DeltaTrueAnomaly float32
	updateNext       NodeID // next_in_queue; NullNode if tail/absent
}

// Object is the per-object-node attribute record.
type Object struct {
	Validity    Validity
	State       State
	Integration Integration
	Influence   NodeID // local-space handle id, or NullNode
}

// LocalSpace is the per-local-space-node attribute record.
type LocalSpace struct {
	Radius          float32
	MetersPerRadius float64
	Primary         NodeID
	Influencing     bool
}

// Elements holds the Keplerian elements derived from an object's state.
type Elements struct {
	Grav                 float64
	H                    float64
	E                    float32
	Type                 OrbitType
	P                    float32
	VConstant            float64
	I                    float32
	N                    mgl32.Vec3
	Omega                float32
	ArgPeriapsis         float32
	PerifocalX           mgl32.Vec3
	PerifocalY           mgl32.Vec3
	PerifocalNormal      mgl32.Vec3
	PerifocalOrientation mgl32.Quat
	TrueAnomaly          float32
	SemiMajor            float32
	SemiMinor            float32
	C                    float32
	T                    float64
}

// Dynamics holds escape/entry geometry and continuous acceleration for
// objects whose orbit may leave its local space. Present only while the
// object is dynamic.
type Dynamics struct {
	EscapeTrueAnomaly    float32
	EscapePoint          mgl32.Vec3
	EntryPoint           mgl32.Vec3
	EscapePointPerifocal mgl32.Vec2
	ContAcceleration     mgl64.Vec3
}
