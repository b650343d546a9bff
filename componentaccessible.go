package ecs

import "github.com/TheBitDrifter/table"

// AccessibleComponent pairs a Component identity with a typed
// table.Accessor[T], giving callers a reflection-free way to read/write a
// component's value once they already have a row to address (teacher
// pattern, kept verbatim — this is exactly what FactoryNewComponent[T]
// builds, see factory.go).
type AccessibleComponent[T any] struct {
	Component
	table.Accessor[T]
}

// GetFromCursor retrieves a component value for the entity at the cursor's
// current position.
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	return c.Get(cursor.entityIndex-1, cursor.currentTable)
}

// GetFromCursorSafe safely retrieves a component value, reporting whether
// the current table actually carries the column first.
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	if c.Accessor.Check(cursor.currentTable) {
		return true, c.GetFromCursor(cursor)
	}
	return false, nil
}

// CheckCursor reports whether the component exists on the table the cursor
// currently points at.
func (c AccessibleComponent[T]) CheckCursor(cursor *Cursor) bool {
	return c.Accessor.Check(cursor.currentTable)
}

// GetFromEntity retrieves a component value directly from an entity handle.
func (c AccessibleComponent[T]) GetFromEntity(entity Entity) *T {
	return c.Get(entity.Index(), entity.Table())
}

// CheckEntity reports whether entity's current table carries this
// component.
func (c AccessibleComponent[T]) CheckEntity(entity Entity) bool {
	return c.Accessor.Check(entity.Table())
}
