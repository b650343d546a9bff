package ecs

import (
	"iter"

	"github.com/TheBitDrifter/table"
)

var _ iCursor = &Cursor{}

// iCursor defines the interface for iterating over entities matching a
// Query (kept from the teacher's own naming).
type iCursor interface {
	Entities() iter.Seq2[int, table.Table]
	Next() bool
}

// Cursor is an alternate, imperative iteration API over a Query's matched
// tables (spec §4.7 notes both a cursor-style and a ForEach-style consumer
// are reasonable; this keeps the teacher's Cursor shape for callers that
// want manual Next()/CurrentEntity() control instead of a callback). Unlike
// the teacher's Cursor, it reads directly from Query.tables rather than
// re-evaluating a query tree per archetype on every Initialize call, since
// Query already maintains that list incrementally.
type Cursor struct {
	query        *Query
	currentTable table.Table
	tableIndex   int
	entityIndex  int
	remaining    int
	initialized  bool
}

// NewCursor creates a cursor over q's currently matched tables.
func NewCursor(q *Query) *Cursor {
	return &Cursor{query: q}
}

// Next advances to the next entity and returns whether one exists.
func (c *Cursor) Next() bool {
	if c.entityIndex < c.remaining {
		c.entityIndex++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	c.initialize()
	for c.tableIndex < len(c.query.tables) {
		c.currentTable = c.query.tables[c.tableIndex]
		c.remaining = c.currentTable.Length()
		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.tableIndex++
		c.entityIndex = 0
	}
	c.Reset()
	return false
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	if len(c.query.tables) > 0 {
		c.tableIndex = 0
		c.currentTable = c.query.tables[0]
		c.remaining = c.currentTable.Length()
	}
	c.initialized = true
}

// Entities returns an iterator sequence over every matched table's rows.
func (c *Cursor) Entities() iter.Seq2[int, table.Table] {
	return func(yield func(int, table.Table) bool) {
		c.initialize()
		for c.tableIndex < len(c.query.tables) {
			c.currentTable = c.query.tables[c.tableIndex]
			c.remaining = c.currentTable.Length()
			for c.entityIndex < c.remaining {
				if !yield(c.entityIndex, c.currentTable) {
					c.Reset()
					return
				}
				c.entityIndex++
			}
			c.entityIndex = 0
			c.tableIndex++
		}
		c.Reset()
	}
}

// Reset clears cursor state so a subsequent Next()/Entities() call rescans
// from the first matched table.
func (c *Cursor) Reset() {
	c.tableIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.initialized = false
}

// CurrentEntity returns the entity at the current cursor position.
func (c *Cursor) CurrentEntity() (Entity, error) {
	entry, err := c.currentTable.Entry(c.entityIndex - 1)
	if err != nil {
		return nil, err
	}
	return c.query.world.manager.Entity(entry.ID()), nil
}

// EntityAtOffset returns the entity at offset positions from the current
// cursor position, within the current table.
func (c *Cursor) EntityAtOffset(offset int) (Entity, error) {
	entry, err := c.currentTable.Entry(c.entityIndex - 1 + offset)
	if err != nil {
		return nil, err
	}
	return c.query.world.manager.Entity(entry.ID()), nil
}

// EntityIndex returns the current entity index within the current table.
func (c *Cursor) EntityIndex() int {
	return c.entityIndex
}

// RemainingInTable returns the number of entities left in the current
// table.
func (c *Cursor) RemainingInTable() int {
	return c.remaining - c.entityIndex
}

// TotalMatched returns the total number of entities across every matched
// table.
func (c *Cursor) TotalMatched() int {
	c.initialize()
	total := 0
	for _, t := range c.query.tables {
		total += t.Length()
	}
	c.Reset()
	return total
}
