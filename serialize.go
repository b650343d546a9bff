package ecs

import (
	"strconv"

	"github.com/TheBitDrifter/table"
)

// EntitySnapshot is the debug/test entity serialization record (spec §6): a
// two-field {index, generation} pair, not a full component dump. Index is
// the entity's table.EntryID; generation is its Recycled count shifted up
// by one so the zero value is never a valid generation.
type EntitySnapshot struct {
	Index      uint32
	Generation uint32
}

// PlaceholderSnapshot is the reserved sentinel value denoting "no entity"
// (spec §6).
var PlaceholderSnapshot = EntitySnapshot{Index: 1<<32 - 1, Generation: 1}

// serializeCacheCapacity bounds the lookup table DeserializeEntity reads
// from; debug/test tooling only, so a generous fixed ceiling is simpler than
// a growable cache.
const serializeCacheCapacity = 1 << 20

// SerializeEntity produces e's {index, generation} snapshot and records e in
// its EntityManager's lookup table (the A5 Cache, repurposed here) so a
// later DeserializeEntity call against the *same world* can resolve it in
// O(1) rather than scanning every live entity. Calling this more than once
// for the same entity is a no-op on the second call onward, since
// Cache.Register is idempotent per key. The cache is scoped per-manager
// (not package-global) because entity ids restart at 1 in every new World —
// a global table would let one world's snapshot resolve against another's
// entity.
func SerializeEntity(e Entity) (EntitySnapshot, error) {
	snap := EntitySnapshot{
		Index:      uint32(e.ID()),
		Generation: uint32(e.Recycled()) + 1,
	}
	if _, err := e.Manager().snapshots.Register(snapshotKey(snap), e); err != nil {
		return EntitySnapshot{}, err
	}
	return snap, nil
}

// DeserializeEntity resolves a snapshot back to its Entity handle against
// world's own EntityManager. snap == PlaceholderSnapshot always resolves to
// (nil, nil) — "no entity" is not an error. An unknown or
// generation-mismatched snapshot is a hard error: the handle it once named
// either was never serialized against this world or has since been
// recycled for a different entity.
func DeserializeEntity(world World, snap EntitySnapshot) (Entity, error) {
	if snap == PlaceholderSnapshot {
		return nil, nil
	}
	manager := world.Entities()
	idx, ok := manager.snapshots.GetIndex(snapshotKey(snap))
	if !ok {
		return nil, fail(UnknownSnapshotError{Snapshot: snap})
	}
	e := *manager.snapshots.GetItem(idx)
	if uint32(e.Recycled())+1 != snap.Generation {
		return nil, fail(UnknownSnapshotError{Snapshot: snap})
	}
	return manager.Entity(table.EntryID(snap.Index)), nil
}

func snapshotKey(snap EntitySnapshot) string {
	return strconv.FormatUint(uint64(snap.Index), 10) + "#" + strconv.FormatUint(uint64(snap.Generation), 10)
}
