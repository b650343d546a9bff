package ecs

import (
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// sentinelArchetypeID is the reserved table registry entry for the
// despawned archetype (spec §3, §4.4): bitfield 0, never holds live
// entities, serves as the source table for freshly spawned entities and
// the target table for despawned ones.
const sentinelArchetypeID archetypeID = 0

// tableRegistry maps an archetype bitfield to its table, creating tables on
// demand (spec §4.4, C4 Table Registry). It also keeps the reverse index
// (table.Table -> archetypeID) that Entity.Location/Components use, since
// table.Table values carry no world-level identity of their own.
type tableRegistry struct {
	schema      table.Schema
	entryIndex  table.EntryIndex
	events      table.TableEvents
	components  *componentRegistry
	nextID      archetypeID
	asSlice     []ArchetypeImpl
	byMask      map[mask.Mask]archetypeID
	archetypeOf map[table.Table]archetypeID
	onCreate    *EventBus
}

func newTableRegistry(schema table.Schema, entryIndex table.EntryIndex, events table.TableEvents, components *componentRegistry, onCreate *EventBus) (*tableRegistry, error) {
	r := &tableRegistry{
		schema:      schema,
		entryIndex:  entryIndex,
		events:      events,
		components:  components,
		nextID:      1,
		byMask:      make(map[mask.Mask]archetypeID),
		archetypeOf: make(map[table.Table]archetypeID),
		onCreate:    onCreate,
	}
	var zero mask.Mask
	sentinel, err := newArchetypeImpl(schema, entryIndex, events, sentinelArchetypeID, zero)
	if err != nil {
		return nil, err
	}
	r.asSlice = append(r.asSlice, sentinel)
	r.archetypeOf[sentinel.Table()] = sentinelArchetypeID
	// The sentinel is keyed under the zero mask.Mask value, which encode()
	// never produces (it always sets bit 0), so no real archetype can ever
	// collide with it (spec §3: "the despawned archetype is the single
	// reserved value 0").
	r.byMask[zero] = sentinelArchetypeID
	return r, nil
}

// sentinel returns the reserved despawned-archetype table.
func (r *tableRegistry) sentinel() ArchetypeImpl {
	return r.asSlice[sentinelArchetypeID]
}

// acquire returns the existing archetype matching m, or constructs, registers,
// and announces (via the event bus's createTable event) a new one (spec §4.4).
func (r *tableRegistry) acquire(m mask.Mask, components []Component) (ArchetypeImpl, error) {
	if id, ok := r.byMask[m]; ok {
		return r.asSlice[id], nil
	}
	created, err := newArchetypeImpl(r.schema, r.entryIndex, r.events, r.nextID, m, components...)
	if err != nil {
		return ArchetypeImpl{}, err
	}
	r.asSlice = append(r.asSlice, created)
	r.byMask[m] = created.id
	r.archetypeOf[created.Table()] = created.id
	r.nextID++
	if r.onCreate != nil {
		r.onCreate.Emit(created.Table())
	}
	return created, nil
}

// archetypes returns every archetype created so far, including the sentinel
// at index 0 — used by Query's cold rescan (spec §4.7).
func (r *tableRegistry) archetypes() []ArchetypeImpl {
	return r.asSlice
}
