package ecs

import (
	"github.com/TheBitDrifter/table"
)

// ScheduleKey identifies a schedule within a World. The four defaults are
// predeclared; any other comparable value may also be used as a key (spec
// §4.10: "the set is open").
type ScheduleKey string

const (
	Startup    ScheduleKey = "Startup"
	PreUpdate  ScheduleKey = "PreUpdate"
	Update     ScheduleKey = "Update"
	PostUpdate ScheduleKey = "PostUpdate"
)

// World owns every other component (C1-C11) and exposes the public
// lifecycle surface (C12 World, spec §4.12).
type World interface {
	// Entities returns the entity manager used to spawn/mutate/despawn and
	// to flush staged structural changes.
	Entities() *EntityManager
	// Resources returns the world's singleton resource registry.
	Resources() *ResourceRegistry
	// Components returns the world's component type registry, needed to
	// build Filters with With/Without.
	Components() *componentRegistry
	// Events returns the event bus for one of the three built-in topics:
	// "start", "stop", "createTable" (spec §6).
	Events(topic string) *EventBus

	// Schedule returns the schedule registered under key, or an error if
	// none was ever added.
	Schedule(key any) (*Schedule, error)
	// AddSchedule registers a schedule under key, replacing any existing
	// one for that key.
	AddSchedule(key any, s *Schedule)

	// AddPlugin invokes fn with the world immediately, surfacing any error.
	AddPlugin(fn func(World) error) error

	// Query builds a query over the given filter (spec §4.7); see query.go.
	// It takes no accessor list: the query yields entity handles, and
	// component values are read through AccessibleComponent.
	Query(filter Filter) *Query

	// Run executes Startup on the first call only, then one pass of
	// PreUpdate -> Update -> PostUpdate on every call, honoring the configured entityUpdateTiming around each
	// schedule (spec §4.12 `run`).
	Run() error

	// Config returns the world's configuration.
	Config() WorldConfig
}

type worldImpl struct {
	config WorldConfig

	schema     table.Schema
	entryIndex table.EntryIndex
	components *componentRegistry
	registry   *tableRegistry
	manager    *EntityManager
	resources  *ResourceRegistry

	onStart       *EventBus
	onStop        *EventBus
	onCreateTable *EventBus

	schedules map[any]*Schedule
	started   bool
}

// NewWorld constructs a World with its sentinel table already instantiated
// at archetype 0 (spec §4.12) and the four default schedules registered
// empty.
func NewWorld(config ...WorldConfig) (World, error) {
	cfg := DefaultWorldConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.EntityUpdateTiming == "" {
		cfg.EntityUpdateTiming = FlushAfter
	}

	schema := table.Factory.NewSchema()
	entryIndex := table.Factory.NewEntryIndex()
	components := newComponentRegistry(schema)
	onCreateTable := NewEventBus()

	registry, err := newTableRegistry(schema, entryIndex, cfg.TableEvents, components, onCreateTable)
	if err != nil {
		return nil, err
	}
	manager := newEntityManager(registry, components, entryIndex)

	w := &worldImpl{
		config:        cfg,
		schema:        schema,
		entryIndex:    entryIndex,
		components:    components,
		registry:      registry,
		manager:       manager,
		resources:     newResourceRegistry(),
		onStart:       NewEventBus(),
		onStop:        NewEventBus(),
		onCreateTable: onCreateTable,
		schedules: map[any]*Schedule{
			Startup:    NewSchedule(),
			PreUpdate:  NewSchedule(),
			Update:     NewSchedule(),
			PostUpdate: NewSchedule(),
		},
	}
	return w, nil
}

func (w *worldImpl) Entities() *EntityManager          { return w.manager }
func (w *worldImpl) Resources() *ResourceRegistry       { return w.resources }
func (w *worldImpl) Components() *componentRegistry     { return w.components }
func (w *worldImpl) Config() WorldConfig                { return w.config }

func (w *worldImpl) Events(topic string) *EventBus {
	switch topic {
	case "start":
		return w.onStart
	case "stop":
		return w.onStop
	case "createTable":
		return w.onCreateTable
	default:
		return nil
	}
}

func (w *worldImpl) Schedule(key any) (*Schedule, error) {
	s, ok := w.schedules[key]
	if !ok {
		return nil, fail(UnknownScheduleError{Key: key})
	}
	return s, nil
}

func (w *worldImpl) AddSchedule(key any, s *Schedule) {
	w.schedules[key] = s
}

func (w *worldImpl) AddPlugin(fn func(World) error) error {
	return fn(w)
}

func (w *worldImpl) Query(filter Filter) *Query {
	return newQuery(w, filter)
}

// Run implements spec §4.12 `run`: Startup fires once on the first call;
// every call, the first included, then runs PreUpdate -> Update ->
// PostUpdate. Flush
// timing around each schedule follows the configured EntityUpdateTiming.
func (w *worldImpl) Run() error {
	if !w.started {
		w.started = true
		w.onStart.Emit(w)
		if err := w.runSchedule(Startup); err != nil {
			return err
		}
	}
	for _, key := range []ScheduleKey{PreUpdate, Update, PostUpdate} {
		if err := w.runSchedule(key); err != nil {
			return err
		}
	}
	return nil
}

func (w *worldImpl) runSchedule(key ScheduleKey) error {
	s, err := w.Schedule(key)
	if err != nil {
		return err
	}
	if w.config.EntityUpdateTiming == FlushBefore {
		if err := w.manager.Flush(); err != nil {
			return err
		}
	}
	if err := s.Prepare(w); err != nil {
		return err
	}
	if err := s.Run(); err != nil {
		return err
	}
	if w.config.EntityUpdateTiming == FlushAfter {
		if err := w.manager.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// Stop emits the "stop" event; not part of the World interface since spec
// §4.12 does not specify when it fires beyond the event's existence (spec
// §6) — left for a host application's own shutdown sequence to call.
func (w *worldImpl) Stop() {
	w.onStop.Emit(w)
}
