package ecs

import (
	"reflect"
	"sort"
	"strings"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/table"
)

var _ Entity = &entity{}

// Entity is an opaque handle carrying an immutable small-integer id (backed
// by the id/recycle-generation pair the underlying table.EntryIndex already
// maintains — see serialize.go's EntitySnapshot for how this doubles as
// spec §6's {index, generation} serialization pair) plus the mutable
// {tableId, tableRow}
// location (spec §3). Entity is a thin facade: every mutating operation
// forwards to the owning EntityManager (spec §4.5), which stages the
// change rather than applying it immediately.
type Entity interface {
	table.Entry

	// Manager returns the EntityManager that owns this handle's staging
	// state.
	Manager() *EntityManager

	// Valid reports whether this handle carries an assigned id at all.
	Valid() bool
	// IsAlive reports whether the entity currently occupies a row outside
	// the sentinel (despawned) archetype (spec §4.5 `isAlive`).
	IsAlive() bool

	// Has tests whether the component's bit is set in the entity's
	// *current* table archetype (spec §4.6 — eventually consistent with
	// respect to staged-but-unflushed mutation).
	Has(Component) bool
	// Insert stages an add-or-overwrite of component c with value v,
	// mirroring spec §4.6 `insert(entity, instance)`.
	Insert(c Component, v any) error
	// InsertTag stages an add of a zero-sized/tag component with no
	// payload (spec §4.6 `insertTag`).
	InsertTag(c Component) error
	// Remove stages a component removal (spec §4.6 `remove`).
	Remove(c Component) error
	// Despawn stages destination archetype 0 and drops any pending
	// payload (spec §4.6 `despawn`).
	Despawn() error

	// Location returns the entity's current {tableId, tableRow}.
	Location() Location

	// Components returns the decoded component type list of the entity's
	// *current* table archetype, in id-ascending order.
	Components() []Component
	// ComponentsAsString renders Components() as a sorted, bracketed list
	// for logs/diagnostics (teacher idiom, kept verbatim).
	ComponentsAsString() string
}

// Location identifies an entity's table and row (spec §3, §4.5). TableID 0
// denotes "not resident" — either never flushed yet, or despawned.
type Location struct {
	TableID  uint32
	TableRow int
}

// validateLocation enforces the non-negative invariant spec §4.5 assigns to
// setLocation; TableID is a uint32 so only TableRow can go negative.
func validateLocation(loc Location) error {
	if loc.TableRow < 0 {
		return fail(InvalidLocationError{TableID: int(loc.TableID), TableRow: loc.TableRow})
	}
	return nil
}

// entity implements Entity.
type entity struct {
	id      table.EntryID
	manager *EntityManager
}

func (e *entity) ID() table.EntryID { return e.id }

func (e *entity) Index() int {
	return e.entry().Index()
}

func (e *entity) Recycled() int {
	return e.entry().Recycled()
}

func (e *entity) Table() table.Table {
	return e.entry().Table()
}

func (e *entity) Manager() *EntityManager { return e.manager }

func (e *entity) Valid() bool {
	return e.id != 0
}

func (e *entity) IsAlive() bool {
	return e.Location().TableID != uint32(sentinelArchetypeID)
}

func (e *entity) Has(c Component) bool {
	return e.manager.has(e, c)
}

func (e *entity) Insert(c Component, v any) error {
	return e.manager.insert(e, c, v)
}

func (e *entity) InsertTag(c Component) error {
	return e.manager.insertTag(e, c)
}

func (e *entity) Remove(c Component) error {
	return e.manager.remove(e, c)
}

func (e *entity) Despawn() error {
	return e.manager.despawn(e)
}

func (e *entity) Location() Location {
	en := e.entry()
	tbl := en.Table()
	id, ok := e.manager.registry.archetypeOf[tbl]
	if !ok {
		return Location{TableID: uint32(sentinelArchetypeID), TableRow: en.Index()}
	}
	return Location{TableID: uint32(id), TableRow: en.Index()}
}

func (e *entity) Components() []Component {
	archID, ok := e.manager.registry.archetypeOf[e.Table()]
	if !ok || archID == sentinelArchetypeID {
		return nil
	}
	return e.manager.registry.asSlice[archID].Components()
}

func (e *entity) ComponentsAsString() string {
	comps := e.Components()
	if len(comps) == 0 {
		return "[]"
	}
	names := make([]string, 0, len(comps))
	for _, c := range comps {
		typeName := reflect.TypeOf(c).String()
		typeName = strings.TrimPrefix(typeName, "*")
		parts := strings.Split(typeName, ".")
		name := parts[len(parts)-1]
		name = strings.TrimSuffix(name, "]")
		names = append(names, name)
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}

// entry returns the table.Entry backing this handle, panicking (via
// bark.AddTrace, matching the teacher's own entry() helper) if the
// underlying entry index has no record for this id — a developer-misuse
// condition, since ids are only ever handed out by EntityManager.Spawn.
func (e *entity) entry() table.Entry {
	en, err := e.manager.entryIndex.Entry(int(e.id - 1))
	if err != nil {
		panic(bark.AddTrace(err))
	}
	return en
}
