package orbital

// Tuning constants, part of the public contract (core spec §6).
const (
	kGravitational          = 6.6743e-11
	kDefaultLSpaceRadius    = 0.1
	kLocalSpaceEscapeRadius = 1.01
	kEccentricityEpsilon    = 1e-4
	kMaxLSpaceRadius        = 0.2
	kMinLSpaceRadius        = 0.004
	kEpsLSpaceRadius        = 1e-6
	kMaxObjectUpdates       = 20.0
	kDefaultMinDT           = 1.0 / (60.0 * 20.0)
	kMaxUpdateDistance      = 1e-6
	kMaxCOG                 = 1e-4

	// float32EpsilonValue is FLT_EPSILON: the smallest e such that
	// 1+e != 1 in IEEE-754 single precision.
	float32EpsilonValue = 1.1920929e-7

	// kMinUpdateTrueAnomaly is "approximately 100*float_epsilon" per the
	// source; true anomaly and Δν are single-precision throughout the
	// integrator.
	kMinUpdateTrueAnomaly = 100 * float32EpsilonValue

	// kParallelDotProductLimit is the dot-product tolerance used to
	// detect that two unit vectors are (anti-)parallel. Value choice
	// recorded in DESIGN.md's Open Questions.
	kParallelDotProductLimit = 0.9999999
)
