package ecs

import "github.com/TheBitDrifter/table"

// EntityUpdateTiming controls when a World flushes staged structural changes
// relative to running its schedules (spec §4.12).
type EntityUpdateTiming string

const (
	// FlushBefore flushes staged changes before each schedule run.
	FlushBefore EntityUpdateTiming = "before"
	// FlushAfter flushes staged changes after each schedule run. This is
	// the default, matching spec §6's default world configuration.
	FlushAfter EntityUpdateTiming = "after"
	// FlushCustom never flushes implicitly; the caller must call
	// world.Entities().Flush() itself.
	FlushCustom EntityUpdateTiming = "custom"
)

// WorkerFactory is the surface-only placeholder for the source's
// `createWorker` world configuration key. No parallel scheduler is
// specified by spec §1 ("Non-goals"); a configured factory is retained but
// never invoked by World.Run.
type WorkerFactory func(World) any

// WorldConfig holds the configuration keys of a World (spec §6).
type WorldConfig struct {
	// EntityUpdateTiming defaults to FlushAfter.
	EntityUpdateTiming EntityUpdateTiming
	// CreateWorker is opaque and not exercised by this core (spec §1).
	CreateWorker WorkerFactory
	// TableEvents are forwarded to every table.Table this world builds.
	TableEvents table.TableEvents
}

// DefaultWorldConfig returns the spec's documented defaults.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{EntityUpdateTiming: FlushAfter}
}
