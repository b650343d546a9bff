package ecs

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// Debug gates the "fail loudly in development, compiled out / downgraded in
// release" policy from spec §7. With Debug true (the default) developer
// misuse panics with a trace via bark.AddTrace; with Debug false the same
// condition is returned as an ordinary error instead.
var Debug = true

// fail implements the fail-loudly-or-return split used throughout this
// package for developer-misuse errors.
func fail(err error) error {
	if Debug {
		panic(bark.AddTrace(err))
	}
	return err
}

// InvalidLocationError is returned/panicked by validateLocation when a
// Location has a negative TableRow (spec §4.5).
type InvalidLocationError struct {
	TableID, TableRow int
}

func (e InvalidLocationError) Error() string {
	return fmt.Sprintf("invalid entity location {tableId: %d, tableRow: %d}: both must be non-negative", e.TableID, e.TableRow)
}

// InvalidComponentValueError is returned/panicked when Insert is called with
// a nil payload (spec §7). The payload's type is not checked against the
// component; a value with no matching column is dropped at flush.
type InvalidComponentValueError struct {
	Component Component
	Value     any
}

func (e InvalidComponentValueError) Error() string {
	return fmt.Sprintf("invalid value %#v for component %T", e.Value, e.Component)
}

// DuplicateSystemError is returned/panicked by Schedule.AddSystems when a
// system is already registered (spec §7).
type DuplicateSystemError struct {
	System System
}

func (e DuplicateSystemError) Error() string {
	return fmt.Sprintf("system %v already registered on schedule", e.System)
}

// UnknownSystemError is returned/panicked by Schedule.RemoveSystem when the
// system was never added (spec §7).
type UnknownSystemError struct {
	System System
}

func (e UnknownSystemError) Error() string {
	return fmt.Sprintf("system %v is not registered on schedule", e.System)
}

// UnknownScheduleError is returned/panicked by World.Schedule when the
// requested schedule key was never added (spec §7).
type UnknownScheduleError struct {
	Key any
}

func (e UnknownScheduleError) Error() string {
	return fmt.Sprintf("schedule %v was never added to this world", e.Key)
}

// UnsatisfiableFilterError is panicked by Query construction when Debug is
// true and no (require, forbid) pair can ever match a table (spec §4.8).
// With Debug false the check is skipped and no error or warning is issued.
type UnsatisfiableFilterError struct{}

func (e UnsatisfiableFilterError) Error() string {
	return "query filter is unsatisfiable: every (require, forbid) pair overlaps"
}

// MissingResourceFactoryError is returned/panicked when a resource type's
// fromWorld hook returns nothing (spec §7).
type MissingResourceFactoryError struct {
	Type any
}

func (e MissingResourceFactoryError) Error() string {
	return fmt.Sprintf("fromWorld factory for %v returned no resource", e.Type)
}

// UnknownSnapshotError is returned/panicked by DeserializeEntity when a
// snapshot was never produced by SerializeEntity against this world, or its
// generation no longer matches the live entity at that index (spec §6).
type UnknownSnapshotError struct {
	Snapshot EntitySnapshot
}

func (e UnknownSnapshotError) Error() string {
	return fmt.Sprintf("snapshot {index: %d, generation: %d} does not resolve to a live entity", e.Snapshot.Index, e.Snapshot.Generation)
}

// LockedStorageError is returned when a structural mutation is attempted
// while a flush is already in progress for the same world (reentrancy
// guard; kept from the teacher's Locked()/Lock() idiom, narrowed to guard
// only flush reentrancy since spec §4.6 otherwise always stages rather
// than rejecting mutation attempts).
type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "entity manager is mid-flush; structural mutation is not reentrant"
}

// ComponentExistsError names a component the entity already carries. This
// package never returns it: Insert on such a component stages an overwrite
// of its value.
type ComponentExistsError struct {
	Component Component
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity: %T", e.Component)
}

// ComponentNotFoundError documents a Remove that is a silent no-op because
// the entity never carried the component.
type ComponentNotFoundError struct {
	Component Component
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %T", e.Component)
}
