package ecs_test

import (
	"fmt"

	"github.com/ridgewerk/ecsforge"
)

// Name is a simple component for entity identification.
type Name struct {
	Value string
}

// Position is a simple component for 2D coordinates.
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement.
type Velocity struct {
	X float64
	Y float64
}

// Example_basic shows basic entity spawning and queries.
func Example_basic() {
	world, _ := ecs.NewWorld()
	manager := world.Entities()

	position := ecs.FactoryNewComponent[Position]()
	velocity := ecs.FactoryNewComponent[Velocity]()
	name := ecs.FactoryNewComponent[Name]()

	for i := 0; i < 5; i++ {
		manager.Spawn(ecs.V(position, Position{}))
	}
	for i := 0; i < 3; i++ {
		manager.Spawn(ecs.V(position, Position{}), ecs.V(velocity, Velocity{}))
	}

	player, _ := manager.Spawn(
		ecs.V(position, Position{X: 10.0, Y: 20.0}),
		ecs.V(velocity, Velocity{X: 1.0, Y: 2.0}),
		ecs.V(name, Name{Value: "Player"}),
	)
	manager.Flush()

	query := world.Query(ecs.With(world.Components(), position, velocity))
	fmt.Printf("Found %d entities with position and velocity\n", query.Length())

	pos := position.GetFromEntity(player)
	vel := velocity.GetFromEntity(player)
	pos.X += vel.X
	pos.Y += vel.Y
	nme := name.GetFromEntity(player)
	fmt.Printf("Updated %s to position (%.1f, %.1f)\n", nme.Value, pos.X, pos.Y)

	// Output:
	// Found 4 entities with position and velocity
	// Updated Player to position (11.0, 22.0)
}

// Example_queries shows how to build And/Or/Without filters.
func Example_queries() {
	world, _ := ecs.NewWorld()
	manager := world.Entities()

	position := ecs.FactoryNewComponent[Position]()
	velocity := ecs.FactoryNewComponent[Velocity]()
	name := ecs.FactoryNewComponent[Name]()

	spawnN := func(n int, values ...ecs.ComponentValue) {
		for i := 0; i < n; i++ {
			manager.Spawn(values...)
		}
	}
	spawnN(3, ecs.V(position, Position{}))
	spawnN(3, ecs.V(position, Position{}), ecs.V(velocity, Velocity{}))
	spawnN(3, ecs.V(position, Position{}), ecs.V(name, Name{}))
	spawnN(3, ecs.V(position, Position{}), ecs.V(velocity, Velocity{}), ecs.V(name, Name{}))
	manager.Flush()

	reg := world.Components()

	andQuery := world.Query(ecs.With(reg, position, velocity))
	fmt.Printf("AND query matched %d entities\n", andQuery.Length())

	orQuery := world.Query(ecs.With(reg, velocity).Or(ecs.With(reg, name)))
	fmt.Printf("OR query matched %d entities\n", orQuery.Length())

	notQuery := world.Query(ecs.With(reg, position).And(ecs.Without(reg, velocity)))
	fmt.Printf("NOT query matched %d entities\n", notQuery.Length())

	// Output:
	// AND query matched 6 entities
	// OR query matched 9 entities
	// NOT query matched 6 entities
}
