/*
Package ecs provides an archetype-based Entity-Component-System.

Entities are grouped into column-major tables by component signature
(archetype); adding or removing a component moves an entity to whichever
table matches its new signature. Structural changes (spawn, insert, remove,
despawn) are staged against an EntityManager and applied in bulk on Flush,
so queries and systems never observe a half-moved entity mid-iteration.

Core Concepts:

  - Entity: a stable handle into a row of some archetype's table.
  - Component: a typed column identity, created once via FactoryNewComponent.
  - Archetype: the set of entities sharing an exact component signature.
  - Filter: a boolean expression over component presence, used to match
    archetypes against a Query.
  - World: owns the component schema, entity manager, resources and
    schedules, and drives Run.

Basic Usage:

	world, _ := ecs.NewWorld()

	position := ecs.FactoryNewComponent[Position]()
	velocity := ecs.FactoryNewComponent[Velocity]()

	_, _ = world.Entities().Spawn(
		ecs.V(position, Position{}),
		ecs.V(velocity, Velocity{X: 1}),
	)
	_ = world.Entities().Flush()

	query := world.Query(ecs.With(world.Components(), position, velocity))
	cursor := ecs.Factory.NewCursor(query)
	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.GetFromCursor(cursor)
		pos.X += vel.X
		pos.Y += vel.Y
	}

ecs is a standalone library; it carries no rendering, physics or asset
concerns of its own.
*/
package ecs
