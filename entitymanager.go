package ecs

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// ComponentValue pairs a component marker (the AccessibleComponent/Component
// identity created once via FactoryNewComponent[T]) with the concrete value
// to stage for it. A nil Value marks a zero-sized/tag component — no
// payload is written for it at flush (spec §4.6 `insertTag`).
type ComponentValue struct {
	Marker Component
	Value  any
}

// V is a short constructor for ComponentValue, used at spawn sites:
// manager.Spawn(ecs.V(position, Position{X: 1, Y: 1})).
func V(marker Component, value any) ComponentValue {
	return ComponentValue{Marker: marker, Value: value}
}

// EntityManager stages destination archetypes and pending component
// payloads for every live entity, resolving them into table moves only on
// Flush (C6 Entity Manager, spec §4.6). Every mutating call always stages —
// there is no lock-contingent immediate-apply path, which is the one
// deliberate behavioral break from the teacher's operation_queue.go (see
// DESIGN.md).
type EntityManager struct {
	registry   *tableRegistry
	components *componentRegistry
	entryIndex table.EntryIndex

	destinations map[table.EntryID]mask.Mask
	pending      map[table.EntryID][]ComponentValue

	snapshots *SimpleCache[Entity]

	flushing bool
}

func newEntityManager(registry *tableRegistry, components *componentRegistry, entryIndex table.EntryIndex) *EntityManager {
	return &EntityManager{
		registry:     registry,
		components:   components,
		entryIndex:   entryIndex,
		destinations: make(map[table.EntryID]mask.Mask),
		pending:      make(map[table.EntryID][]ComponentValue),
		snapshots:    NewCache[Entity](serializeCacheCapacity),
	}
}

// Entity returns a handle for a previously spawned id. The handle is a thin,
// stateless facade (spec §4.5) — constructing one is always valid; a
// dangling/unknown id only surfaces as a panic the first time the handle is
// dereferenced (Index/Table/Location), matching the teacher's entry()
// idiom.
func (m *EntityManager) Entity(id table.EntryID) Entity {
	return &entity{id: id, manager: m}
}

// Spawn allocates a new entity id, stages its destination archetype as
// Entity + the markers of every value, and stages the payload (spec §4.6
// `spawn`). The entity is placed in the sentinel (not-resident) table
// immediately so that Flush always has a concrete source table to move out
// of — the sentinel doubles as "freshly spawned, not yet flushed" and
// "despawned" (spec §4.4).
func (m *EntityManager) Spawn(values ...ComponentValue) (Entity, error) {
	entries, err := m.registry.sentinel().Table().NewEntries(1)
	if err != nil {
		return nil, err
	}
	id := entries[0].ID()

	markers := make([]Component, len(values))
	for i, v := range values {
		markers[i] = v.Marker
	}
	m.destinations[id] = m.components.encode(markers...)
	if len(values) > 0 {
		m.pending[id] = append([]ComponentValue(nil), values...)
	}
	return &entity{id: id, manager: m}, nil
}

// destinationMask returns the archetype bitfield e will occupy after the
// next flush: the staged value if one exists, otherwise the entity's
// current table archetype.
func (m *EntityManager) destinationMask(e *entity) mask.Mask {
	if dest, ok := m.destinations[e.id]; ok {
		return dest
	}
	if archID, ok := m.registry.archetypeOf[e.Table()]; ok {
		return m.registry.asSlice[archID].archMask
	}
	var zero mask.Mask
	return zero
}

func markedBit(m mask.Mask, bit uint32) mask.Mask {
	m.Mark(bit)
	return m
}

func unmarkedBit(m mask.Mask, bit uint32) mask.Mask {
	m.Unmark(bit)
	return m
}

// has tests the component bit of e's *current* table archetype — not the
// staged destination (spec §4.6: "eventually consistent... reflects the
// last flushed state"; this also resolves Open Question 1 for Query.Get).
func (m *EntityManager) has(e *entity, c Component) bool {
	archID, ok := m.registry.archetypeOf[e.Table()]
	if !ok {
		return false
	}
	return maskHasBit(m.registry.asSlice[archID].archMask, m.components.bitFor(c))
}

// insert stages an add-or-overwrite of c with value v.
func (m *EntityManager) insert(e *entity, c Component, v any) error {
	if v == nil {
		return fail(InvalidComponentValueError{Component: c, Value: v})
	}
	bit := m.components.componentID(c)
	m.destinations[e.id] = markedBit(m.destinationMask(e), bit)

	pv := m.pending[e.id]
	for i := range pv {
		if pv[i].Marker.ID() == c.ID() {
			pv[i].Value = v
			return nil
		}
	}
	m.pending[e.id] = append(pv, ComponentValue{Marker: c, Value: v})
	return nil
}

// insertTag stages an add of a zero-sized/tag component; payload is
// untouched (spec §4.6 `insertTag`).
func (m *EntityManager) insertTag(e *entity, c Component) error {
	bit := m.components.componentID(c)
	m.destinations[e.id] = markedBit(m.destinationMask(e), bit)
	return nil
}

// remove stages a component removal. Any pending value for c is left in
// place — it is dropped naturally at flush because the destination table
// will not have that column (spec §4.6 `remove`).
func (m *EntityManager) remove(e *entity, c Component) error {
	bit := m.components.bitFor(c)
	m.destinations[e.id] = unmarkedBit(m.destinationMask(e), bit)
	return nil
}

// despawn stages destination archetype 0 (the sentinel) and drops the
// pending payload outright (spec §4.6 `despawn`).
func (m *EntityManager) despawn(e *entity) error {
	var zero mask.Mask
	m.destinations[e.id] = zero
	delete(m.pending, e.id)
	return nil
}

// Flush resolves every staged destination into a table move, per spec
// §4.6/§9. It resolves (validates) every destination table before
// performing any move — if a single entity's destination archetype cannot
// be acquired, Flush returns without moving any entity that round (the
// "validate-all-then-move" policy picked for Open Question 2). Once moves
// begin, a failure on one entity's TransferEntries call propagates
// immediately; moves already applied to other entities in the same round
// are not rolled back (fail loudly, matching the teacher's idiom rather
// than silently continuing).
func (m *EntityManager) Flush() error {
	if m.flushing {
		return fail(LockedStorageError{})
	}
	m.flushing = true
	defer func() { m.flushing = false }()

	type staged struct {
		id   table.EntryID
		dest ArchetypeImpl
	}
	moves := make([]staged, 0, len(m.destinations))
	for id, dest := range m.destinations {
		comps := m.components.decode(dest)
		destArch, err := m.registry.acquire(dest, comps)
		if err != nil {
			return err
		}
		moves = append(moves, staged{id: id, dest: destArch})
	}

	for _, mv := range moves {
		e := &entity{id: mv.id, manager: m}
		srcTable := e.Table()
		destTable := mv.dest.Table()
		row := e.Index()

		if srcTable != destTable {
			if row < 0 {
				continue
			}
			if err := srcTable.TransferEntries(destTable, row); err != nil {
				return err
			}
		}

		newRow := e.Index()
		for _, pv := range m.pending[mv.id] {
			writeComponentValue(destTable, newRow, pv)
		}
	}

	m.destinations = make(map[table.EntryID]mask.Mask)
	m.pending = make(map[table.EntryID][]ComponentValue)
	return nil
}

// writeComponentValue writes pv.Value into the row'th slot of whichever of
// destTable's columns matches pv.Value's type, mirroring the teacher's
// AddComponentWithValue reflection pattern. A type absent from the
// destination archetype is silently discarded (spec §4.3 edge case); a nil
// Value (tag component) is a no-op.
func writeComponentValue(destTable table.Table, row int, pv ComponentValue) {
	if pv.Value == nil {
		return
	}
	valueType := reflect.TypeOf(pv.Value)
	for _, col := range destTable.Rows() {
		if col.Type().Elem() == valueType {
			reflect.Value(col).Index(row).Set(reflect.ValueOf(pv.Value))
			return
		}
	}
}
