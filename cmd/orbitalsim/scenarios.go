package main

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/orbital"
)

// scenario is one of the core specification's §8 literal end-to-end
// demonstrations: a self-contained function that builds its own Context,
// drives it, and logs what happened.
type scenario struct {
	name        string
	description string
	run         func(log orbital.Logger, steps int, dt float64)
}

var scenarioRegistry = map[string]scenario{}

func registerScenario(s scenario) {
	scenarioRegistry[s.name] = s
}

func sortedScenarioNames() []string {
	names := make([]string, 0, len(scenarioRegistry))
	for name := range scenarioRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	registerScenario(scenario{
		name:        "static-circle",
		description: "a non-dynamic object on a circular orbit around the root body",
		run:         runStaticCircle,
	})
	registerScenario(scenario{
		name:        "two-body",
		description: "a second body gains a sphere of influence that hosts a dynamic ship",
		run:         runTwoBodyHierarchy,
	})
	registerScenario(scenario{
		name:        "escape",
		description: "the ship's orbit carries it past its sphere of influence's escape radius",
		run:         runEscape,
	})
	registerScenario(scenario{
		name:        "invalidation",
		description: "zeroing an object's mass pulls it out of the update queue",
		run:         runInvalidation,
	})
	registerScenario(scenario{
		name:        "collapse",
		description: "collapsing a sphere of influence promotes its contents to the root space",
		run:         runCollapse,
	})
	registerScenario(scenario{
		name:        "method-switch",
		description: "the integrator picks Angular for fast orbits and Linear for slow ones",
		run:         runMethodSwitch,
	})
}

// newDemoContext returns a Context scaled and massed the way the core
// specification's §8 scenarios assume: 10 meters per root-space unit,
// root mass 1/G so that the root's gravitational parameter is exactly
// 1e-3 in root-local units.
func newDemoContext(log orbital.Logger) *orbital.Context {
	ctx := orbital.NewContext(log)
	ctx.SetRootSpaceScaling(10)
	ctx.GetRootObjectNode().SetMass(1 / 6.6743e-11)
	return ctx
}

func runStaticCircle(log orbital.Logger, _ int, _ float64) {
	ctx := newDemoContext(log)
	root := ctx.GetRootLocalSpaceNode()

	obj := ctx.CreateCircular(root, 1e5, mgl32.Vec3{0.9, 0, 0}, false)
	elems := obj.GetElements()
	log.Infof("orbitalsim: static-circle: validity=%s type=%s period=%.6fs", obj.GetObject().Validity, elems.Type, elems.T)
}

func runTwoBodyHierarchy(log orbital.Logger, _ int, _ float64) {
	ctx := newDemoContext(log)
	root := ctx.GetRootLocalSpaceNode()

	obj1 := ctx.CreateCircular(root, 1e5, mgl32.Vec3{0, 0, -0.5}, false)
	if !obj1.IsInfluencing() {
		log.Warnf("orbitalsim: two-body: object #1 did not gain a sphere of influence")
		return
	}
	soi := obj1.SphereOfInfluence()
	ship := ctx.Create(soi, 1e-11, mgl32.Vec3{-0.7, 0, 0}, mgl64.Vec3{0, 0, 0.21}, true)
	log.Infof("orbitalsim: two-body: soi_radius=%.6f ship_validity=%s", soi.GetLocalSpace().Radius, ship.GetObject().Validity)
}

func runEscape(log orbital.Logger, steps int, dt float64) {
	ctx := newDemoContext(log)
	root := ctx.GetRootLocalSpaceNode()

	obj1 := ctx.CreateCircular(root, 1e5, mgl32.Vec3{0, 0, -0.5}, false)
	soi := obj1.SphereOfInfluence()
	ship := ctx.Create(soi, 1e-11, mgl32.Vec3{-0.7, 0, 0}, mgl64.Vec3{0, 0, 0.21}, true)

	escaped := false
	ctx.OnLspChanged(func(o orbital.ObjectHandle) {
		escaped = true
		log.Infof("orbitalsim: escape: object %d left its local space at step boundary", o.Id())
	})

	for i := 0; i < steps && !escaped; i++ {
		ctx.OnUpdate(dt)
	}

	log.Infof("orbitalsim: escape: escaped=%v final_validity=%s", escaped, ship.GetObject().Validity)
}

func runInvalidation(log orbital.Logger, _ int, _ float64) {
	ctx := newDemoContext(log)
	root := ctx.GetRootLocalSpaceNode()

	obj1 := ctx.CreateCircular(root, 1e5, mgl32.Vec3{0, 0, -0.5}, false)
	soi := obj1.SphereOfInfluence()
	ship := ctx.Create(soi, 1e-11, mgl32.Vec3{-0.7, 0, 0}, mgl64.Vec3{0, 0, 0.2}, true)

	log.Infof("orbitalsim: invalidation: validity before=%s", ship.GetObject().Validity)
	ship.SetMass(0)
	log.Infof("orbitalsim: invalidation: validity after=%s", ship.GetObject().Validity)
}

func runCollapse(log orbital.Logger, _ int, _ float64) {
	ctx := newDemoContext(log)
	root := ctx.GetRootLocalSpaceNode()

	obj1 := ctx.CreateCircular(root, 1e5, mgl32.Vec3{0, 0, -0.5}, false)
	soi := obj1.SphereOfInfluence()
	ship := ctx.Create(soi, 1e-11, mgl32.Vec3{-0.7, 0, 0}, mgl64.Vec3{0, 0, 0.2}, true)

	ctx.CollapseLocalSpace(soi)
	log.Infof("orbitalsim: collapse: ship_parent_is_root=%v validity=%s", ship.ParentLsp().Id() == root.Id(), ship.GetObject().Validity)
}

func runMethodSwitch(log orbital.Logger, _ int, _ float64) {
	ctx := newDemoContext(log)
	root := ctx.GetRootLocalSpaceNode()

	fast := ctx.CreateCircular(root, 1e5, mgl32.Vec3{0.9, 0, 0}, false)
	slow := ctx.Create(root, 1e5, mgl32.Vec3{0.9, 0, 0}, fast.GetObject().State.Velocity.Mul(0.01), false)

	log.Infof("orbitalsim: method-switch: fast=%s slow=%s", fast.GetObject().Integration.Method, slow.GetObject().Integration.Method)
}

// runScenario runs the named scenario, or every scenario in sorted
// order when name is "all".
func runScenario(log orbital.Logger, name string, steps int, dt float64) error {
	if name == "all" {
		for _, n := range sortedScenarioNames() {
			scenarioRegistry[n].run(log, steps, dt)
		}
		return nil
	}
	s, ok := scenarioRegistry[name]
	if !ok {
		return fmt.Errorf("unknown scenario %q (see %q)", name, "orbitalsim scenarios")
	}
	s.run(log, steps, dt)
	return nil
}
