package ecs

import "testing"

func TestFilterWithWithoutMatch(t *testing.T) {
	world, err := NewWorld()
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	reg := world.Components()

	pos := FactoryNewComponent[Position]()
	vel := FactoryNewComponent[Velocity]()
	health := FactoryNewComponent[Health]()

	m := reg.encode(pos, vel)

	withBoth := With(reg, pos, vel)
	if !withBoth.matches(m) {
		t.Errorf("With(pos, vel) should match an archetype carrying both")
	}

	withHealth := With(reg, health)
	if withHealth.matches(m) {
		t.Errorf("With(health) should not match an archetype without health")
	}

	withoutHealth := Without(reg, health)
	if !withoutHealth.matches(m) {
		t.Errorf("Without(health) should match an archetype lacking health")
	}

	withPosWithoutVel := With(reg, pos).Without(reg, vel)
	if withPosWithoutVel.matches(m) {
		t.Errorf("With(pos).Without(vel) should not match an archetype carrying vel")
	}
}

func TestFilterAndOr(t *testing.T) {
	world, err := NewWorld()
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	reg := world.Components()

	pos := FactoryNewComponent[Position]()
	vel := FactoryNewComponent[Velocity]()
	health := FactoryNewComponent[Health]()

	posOnly := reg.encode(pos)
	posVel := reg.encode(pos, vel)
	posHealth := reg.encode(pos, health)
	velHealth := reg.encode(vel, health)

	and := With(reg, pos).And(With(reg, vel))
	if and.matches(posOnly) {
		t.Errorf("pos AND vel should not match pos-only archetype")
	}
	if !and.matches(posVel) {
		t.Errorf("pos AND vel should match pos+vel archetype")
	}

	or := With(reg, pos, vel).Or(With(reg, pos, health))
	if !or.matches(posVel) {
		t.Errorf("(pos AND vel) OR (pos AND health) should match pos+vel")
	}
	if !or.matches(posHealth) {
		t.Errorf("(pos AND vel) OR (pos AND health) should match pos+health")
	}
	if or.matches(velHealth) {
		t.Errorf("(pos AND vel) OR (pos AND health) should not match vel+health")
	}
}

func TestFilterUnsatisfiable(t *testing.T) {
	world, err := NewWorld()
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	reg := world.Components()
	pos := FactoryNewComponent[Position]()

	f := With(reg, pos).Without(reg, pos)
	if f.satisfiable() {
		t.Errorf("With(pos).Without(pos) should be unsatisfiable")
	}

	Debug = false
	defer func() { Debug = true }()
	q := world.Query(f)
	if q.Length() != 0 {
		t.Errorf("an unsatisfiable filter's query should match nothing")
	}
}

func TestFilterZeroValueMatchesEverything(t *testing.T) {
	world, err := NewWorld()
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	reg := world.Components()
	pos := FactoryNewComponent[Position]()

	var zero Filter
	if !zero.matches(reg.encode(pos)) {
		t.Errorf("the zero Filter should match every archetype")
	}
}
