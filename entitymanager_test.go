package ecs

import "testing"

func TestEntityManagerHasReflectsLastFlush(t *testing.T) {
	world, err := NewWorld()
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	manager := world.Entities()
	pos := FactoryNewComponent[Position]()
	vel := FactoryNewComponent[Velocity]()

	e, err := manager.Spawn(V(pos, Position{}))
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	if err := manager.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if err := e.Insert(vel, Velocity{X: 1}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if e.Has(vel) {
		t.Errorf("Has() should reflect the last flushed state, not a staged-but-unflushed insert")
	}

	if err := manager.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if !e.Has(vel) {
		t.Errorf("Has() should report the component present once its insert has been flushed")
	}
}

func TestEntityManagerInsertTag(t *testing.T) {
	world, err := NewWorld()
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	manager := world.Entities()
	tag := FactoryNewComponent[struct{}]()

	e, err := manager.Spawn()
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	if err := manager.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if err := e.InsertTag(tag); err != nil {
		t.Fatalf("InsertTag() error = %v", err)
	}
	if err := manager.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if !e.Has(tag) {
		t.Errorf("Has(tag) = false after a flushed InsertTag")
	}
}

func TestEntityManagerDespawnDropsPendingPayload(t *testing.T) {
	world, err := NewWorld()
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	manager := world.Entities()
	pos := FactoryNewComponent[Position]()

	e, err := manager.Spawn(V(pos, Position{X: 1}))
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	if err := e.Despawn(); err != nil {
		t.Fatalf("Despawn() error = %v", err)
	}
	if err := manager.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if e.IsAlive() {
		t.Errorf("a despawned-before-first-flush entity should never become alive")
	}
}

func TestEntityManagerFlushReentrancyGuard(t *testing.T) {
	world, err := NewWorld()
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	manager := world.Entities()
	manager.flushing = true
	defer func() { manager.flushing = false }()

	Debug = false
	defer func() { Debug = true }()

	if err := manager.Flush(); err == nil {
		t.Errorf("expected a LockedStorageError for a reentrant Flush call")
	}
}
