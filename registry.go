package ecs

import (
	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// componentRegistry assigns each component type a stable small integer id
// within one world (C1 Type Registry) and keeps the ordered reverse mapping
// needed to decode an archetype bitfield back to a type list (C2 Archetype
// Codec). Component IDs assigned via table.Schema start at 0; this registry
// shifts everything up by one so that bit/id 0 is reserved for the Entity
// component, matching spec §3 ("componentId = 0 is reserved for the Entity
// type itself").
//
// Single-writer: like the table.Schema it wraps, componentRegistry is not
// safe for concurrent registration from multiple goroutines.
type componentRegistry struct {
	schema     table.Schema
	typesByID  []Component // index 0 => componentId 1, etc.
	knownTypes map[uint32]bool
}

func newComponentRegistry(schema table.Schema) *componentRegistry {
	return &componentRegistry{
		schema:     schema,
		typesByID:  make([]Component, 0, 16),
		knownTypes: make(map[uint32]bool, 16),
	}
}

// componentID returns the world-unique, Entity-shifted id for c, registering
// c with the underlying schema on first reference.
func (r *componentRegistry) componentID(c Component) uint32 {
	r.schema.Register(c)
	id := r.schema.RowIndexFor(c) + 1
	if !r.knownTypes[id] {
		r.knownTypes[id] = true
		for uint32(len(r.typesByID)) < id {
			r.typesByID = append(r.typesByID, nil)
		}
		r.typesByID[id-1] = c
	}
	return id
}

// bitFor is the name filter and lookup callers use for componentID; like
// componentID it registers c on first reference.
func (r *componentRegistry) bitFor(c Component) uint32 {
	return r.componentID(c)
}

// encode builds the archetype bitfield for a set of component types, always
// setting bit 0 (the Entity component) as spec §4.2 requires.
func (r *componentRegistry) encode(types ...Component) mask.Mask {
	var m mask.Mask
	m.Mark(0)
	for _, t := range types {
		m.Mark(r.componentID(t))
	}
	return m
}

// decode walks the bitfield LSB -> MSB (skipping bit 0, the Entity
// component, which every live archetype implicitly carries) and returns the
// registered types in ascending-id order. Bits set beyond the registry's
// current size are skipped silently (sparse-registry case named in
// spec §4.2).
func (r *componentRegistry) decode(m mask.Mask) []Component {
	var out []Component
	for id := uint32(1); id <= uint32(len(r.typesByID)); id++ {
		if !maskHasBit(m, id) {
			continue
		}
		if t := r.typesByID[id-1]; t != nil {
			out = append(out, t)
		}
	}
	return out
}

// maskHasBit reports whether bit i is set in m. mask.Mask does not expose a
// single-bit test directly in the dependency's public surface beyond
// ContainsAll/ContainsAny, so a one-bit probe mask is built and tested
// against it — the same idiom the teacher uses to test archetype
// containment in query.go.
func maskHasBit(m mask.Mask, bit uint32) bool {
	var probe mask.Mask
	probe.Mark(bit)
	return m.ContainsAll(probe)
}
