package ecs

import (
	"iter"

	"github.com/TheBitDrifter/table"
)

// Query holds a flat, incrementally-maintained list of tables matching a
// Filter (C7 Query, spec §4.7). Construction performs a cold rescan of
// every archetype that already exists (the teacher's `Cursor.Initialize`
// idiom, run once here rather than on every iteration), then subscribes to
// the world's `createTable` event so tables created afterwards are picked
// up without a second rescan — a capability the teacher's tree-walking
// Cursor does not have.
type Query struct {
	world  *worldImpl
	filter Filter
	tables []table.Table
	subID  SubscriptionID
}

func newQuery(w *worldImpl, filter Filter) *Query {
	if Debug && !filter.satisfiable() {
		fail(UnsatisfiableFilterError{})
	}

	q := &Query{world: w, filter: filter}
	for _, arch := range w.registry.archetypes() {
		if arch.id == sentinelArchetypeID {
			continue
		}
		if filter.matches(arch.archMask) {
			q.tables = append(q.tables, arch.table)
		}
	}

	// SubscribeUnique, not Subscribe: every Query's handler closes over the
	// same newQuery func literal, so a code-pointer-keyed Subscribe would
	// fold every query on this world into one shared subscriber and only
	// the first would ever hear about tables created afterwards.
	q.subID = w.onCreateTable.SubscribeUnique(func(args ...any) {
		if len(args) == 0 {
			return
		}
		tbl, ok := args[0].(table.Table)
		if !ok {
			return
		}
		archID, ok := w.registry.archetypeOf[tbl]
		if !ok {
			return
		}
		if filter.matches(w.registry.asSlice[archID].archMask) {
			q.tables = append(q.tables, tbl)
		}
	})

	return q
}

// Close unsubscribes the query from further createTable notifications. A
// query that will never be queried again should call this so its closure
// does not keep accumulating table references for the life of the world.
func (q *Query) Close() {
	q.world.onCreateTable.UnsubscribeID(q.subID)
}

// Length returns the total number of entities currently matching the
// query, summed across every matched table.
func (q *Query) Length() int {
	total := 0
	for _, t := range q.tables {
		total += t.Length()
	}
	return total
}

// Get reports whether e currently satisfies the query's filter. This reads
// e's *current* table archetype, never a staged-but-unflushed destination
// (spec §9 Open Question 1).
func (q *Query) Get(e Entity) bool {
	archID, ok := q.world.registry.archetypeOf[e.Table()]
	if !ok {
		return false
	}
	return q.filter.matches(q.world.registry.asSlice[archID].archMask)
}

// ForEach visits every matching entity in table order, stopping and
// returning the first error fn produces.
func (q *Query) ForEach(fn func(Entity) error) error {
	for _, t := range q.tables {
		n := t.Length()
		for row := 0; row < n; row++ {
			entry, err := t.Entry(row)
			if err != nil {
				return err
			}
			if err := fn(q.world.manager.Entity(entry.ID())); err != nil {
				return err
			}
		}
	}
	return nil
}

// Pairs iterates (ordinal, Entity) across every matching table, mirroring
// the teacher's Cursor.Entities iterator shape but yielding entity handles
// directly rather than raw table positions.
func (q *Query) Pairs() iter.Seq2[int, Entity] {
	return func(yield func(int, Entity) bool) {
		i := 0
		for _, t := range q.tables {
			n := t.Length()
			for row := 0; row < n; row++ {
				entry, err := t.Entry(row)
				if err != nil {
					return
				}
				if !yield(i, q.world.manager.Entity(entry.ID())) {
					return
				}
				i++
			}
		}
	}
}

// Single returns the first matching entity, or ok=false if none match.
func (q *Query) Single() (e Entity, ok bool) {
	for _, t := range q.tables {
		if t.Length() == 0 {
			continue
		}
		entry, err := t.Entry(0)
		if err != nil {
			return nil, false
		}
		return q.world.manager.Entity(entry.ID()), true
	}
	return nil, false
}

// Reduce folds fn over every matching entity in table order.
func (q *Query) Reduce(initial any, fn func(acc any, e Entity) any) any {
	acc := initial
	for _, t := range q.tables {
		n := t.Length()
		for row := 0; row < n; row++ {
			entry, err := t.Entry(row)
			if err != nil {
				break
			}
			acc = fn(acc, q.world.manager.Entity(entry.ID()))
		}
	}
	return acc
}
