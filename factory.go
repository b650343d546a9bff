package ecs

import "github.com/TheBitDrifter/table"

// factory implements the factory pattern for this package's constructors,
// kept from the teacher's global-instance idiom (Factory.NewX rather than
// package-level NewX funcs) for the handful of constructors that don't need
// generics, which Go methods cannot carry.
type factory struct{}

// Factory is the global factory instance.
var Factory factory

// NewWorld constructs a World, forwarding to the package-level NewWorld
// constructor (kept as a method for parity with the teacher's Factory
// surface).
func (f factory) NewWorld(config ...WorldConfig) (World, error) {
	return NewWorld(config...)
}

// NewCursor creates a Cursor over q's matched tables.
func (f factory) NewCursor(q *Query) *Cursor {
	return NewCursor(q)
}

// NewSchedule creates an empty Schedule.
func (f factory) NewSchedule() *Schedule {
	return NewSchedule()
}

// NewEventBus creates an empty EventBus.
func (f factory) NewEventBus() *EventBus {
	return NewEventBus()
}

// FactoryNewComponent creates a new AccessibleComponent for type T, the
// generic constructor callers use once per component type at startup
// (teacher pattern, unchanged).
func FactoryNewComponent[T any]() AccessibleComponent[T] {
	iden := table.FactoryNewElementType[T]()
	return AccessibleComponent[T]{
		Component: iden,
		Accessor:  table.FactoryNewAccessor[T](iden),
	}
}

// FactoryNewCache creates a new Cache with the specified capacity.
func FactoryNewCache[T any](cap int) Cache[T] {
	return NewCache[T](cap)
}
