package ecs

import (
	"github.com/TheBitDrifter/table"
)

// Component represents a data attribute/state that can be attached to an
// entity. A component type is identified inside one world by a small
// integer componentId, assigned the first time the type is registered
// (see registry.go). Component values are stored by value in dense,
// column-major table storage and are copied on row transfer.
type Component interface {
	table.ElementType
}

// Maybe wraps a Component to mark it as an optional query accessor. Query
// takes no accessor list, so no query operation consumes a Maybe: wrapping
// a type neither registers it nor changes which tables a query matches.
type Maybe struct {
	Component
}

// Opt marks a component as an optional query accessor (spec §4.7/§9
// "Maybe accessor").
func Opt(c Component) Maybe {
	return Maybe{Component: c}
}
