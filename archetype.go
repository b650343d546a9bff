package ecs

import (
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// archetypeID is a table registry's internal id for an archetype. It has no
// relation to componentId; it simply indexes tableRegistry.asSlice.
type archetypeID uint32

// Archetype exposes the identity and backing storage of one archetype
// (spec §3/§4.4). The sentinel archetype (bitfield 0, archetypeID 0) is
// never returned from Acquire with live entities in it; it exists only as
// the implicit source table for freshly spawned entities and the implicit
// sink for despawned ones.
type Archetype interface {
	ID() uint32
	Components() []Component
	Table() table.Table
}

// ArchetypeImpl is the concrete Archetype: a thin wrapper pairing a
// table.Table with its id and its ordered component type list, so that
// Archetype Codec decode (spec §4.2) does not need to reach into the table
// package's internals to recover which types a table holds.
type ArchetypeImpl struct {
	id         archetypeID
	table      table.Table
	components []Component
	archMask   mask.Mask
}

func newArchetypeImpl(
	schema table.Schema,
	entryIndex table.EntryIndex,
	events table.TableEvents,
	id archetypeID,
	archMask mask.Mask,
	components ...Component,
) (ArchetypeImpl, error) {
	elementTypes := make([]table.ElementType, len(components))
	for i, comp := range components {
		elementTypes[i] = comp
	}
	tbl, err := table.NewTableBuilder().
		WithSchema(schema).
		WithEntryIndex(entryIndex).
		WithElementTypes(elementTypes...).
		WithEvents(events).
		Build()
	if err != nil {
		return ArchetypeImpl{}, err
	}
	// Keep a defensive copy; callers may reuse the components slice for the
	// next archetype they build.
	owned := make([]Component, len(components))
	copy(owned, components)
	return ArchetypeImpl{
		table:      tbl,
		id:         id,
		components: owned,
		archMask:   archMask,
	}, nil
}

// Mask returns the archetype bitfield this archetype was registered under.
func (a ArchetypeImpl) Mask() mask.Mask {
	return a.archMask
}

// ID returns the table registry's internal archetype id.
func (a ArchetypeImpl) ID() uint32 {
	return uint32(a.id)
}

// Components returns the component types carried by this archetype, in the
// order they were supplied at construction (not necessarily id-ascending;
// use componentRegistry.decode for the canonical id-ascending view).
func (a ArchetypeImpl) Components() []Component {
	return a.components
}

// Table returns the column-major storage backing this archetype.
func (a ArchetypeImpl) Table() table.Table {
	return a.table
}
