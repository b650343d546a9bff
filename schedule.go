package ecs

// SystemFunc is a schedule entry's body, invoked with its pre-resolved
// argument tuple on every Run (spec §4.10 `systems[i](...args[i])`).
type SystemFunc func(args ...any) error

// ArgResolver resolves a system's argument tuple once per Prepare call
// (spec §4.10 `system.getSystemArguments?.(world) ?? []`). A system that
// needs no resolved arguments can leave this nil.
type ArgResolver func(World) ([]any, error)

// AsyncArgResolver is ArgResolver's goroutine-backed counterpart, for a
// system whose argument resolution must run in a goroutine and be joined
// before Prepare returns (spec §5's "await only in the async branch",
// realized the same way as resource.go's RegisterAsyncFactory).
type AsyncArgResolver func(World) ([]any, error)

// System is one schedule entry: a function plus the (optional) hook that
// computes its arguments. ID is the caller-supplied identity AddSystems/
// RemoveSystem/HasSystem dedup on — it must be unique within a schedule.
// A func code pointer cannot serve this role: every closure produced by the
// same func literal (e.g. systems built in a loop or a helper) shares one
// code pointer, which would fold them all into a single "system" as far as
// de-duplication is concerned.
type System struct {
	ID           string
	Fn           SystemFunc
	Resolve      ArgResolver
	ResolveAsync AsyncArgResolver
}

func systemKey(s System) string {
	return s.ID
}

// Schedule is an ordered list of systems with a parallel, pre-resolved
// argument list (C10 Schedule, spec §4.10).
type Schedule struct {
	systems []System
	args    [][]any
	index   map[string]int
}

// NewSchedule constructs an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{index: make(map[string]int)}
}

// AddSystems appends every system, rejecting any already present loudly
// (spec §4.10 `addSystems`).
func (s *Schedule) AddSystems(systems ...System) error {
	for _, sys := range systems {
		key := systemKey(sys)
		if _, ok := s.index[key]; ok {
			return fail(DuplicateSystemError{System: sys})
		}
		s.index[key] = len(s.systems)
		s.systems = append(s.systems, sys)
		s.args = append(s.args, nil)
	}
	return nil
}

// RemoveSystem deletes sys, rejecting a missing system loudly (spec §4.10
// `removeSystem`).
func (s *Schedule) RemoveSystem(sys System) error {
	key := systemKey(sys)
	i, ok := s.index[key]
	if !ok {
		return fail(UnknownSystemError{System: sys})
	}
	s.systems = append(s.systems[:i], s.systems[i+1:]...)
	s.args = append(s.args[:i], s.args[i+1:]...)
	delete(s.index, key)
	for k, idx := range s.index {
		if idx > i {
			s.index[k] = idx - 1
		}
	}
	return nil
}

// HasSystem reports whether sys is currently scheduled (spec §4.10
// `hasSystem`).
func (s *Schedule) HasSystem(sys System) bool {
	_, ok := s.index[systemKey(sys)]
	return ok
}

// Prepare resolves every system's argument tuple against world, storing the
// result for the next Run. Prepare is idempotent — a second call replaces
// every system's arguments (spec §4.10 `prepare`).
func (s *Schedule) Prepare(world World) error {
	for i, sys := range s.systems {
		switch {
		case sys.ResolveAsync != nil:
			type result struct {
				args []any
				err  error
			}
			ch := make(chan result, 1)
			go func(resolve AsyncArgResolver) {
				a, err := resolve(world)
				ch <- result{args: a, err: err}
			}(sys.ResolveAsync)
			res := <-ch
			if res.err != nil {
				return res.err
			}
			s.args[i] = res.args
		case sys.Resolve != nil:
			resolved, err := sys.Resolve(world)
			if err != nil {
				return err
			}
			s.args[i] = resolved
		default:
			s.args[i] = nil
		}
	}
	return nil
}

// Run invokes every system in order with its prepared arguments. A system
// error aborts Run immediately; subsequent systems do not execute (spec
// §4.10 `run`, spec §7 "System exception").
func (s *Schedule) Run() error {
	for i, sys := range s.systems {
		if err := sys.Fn(s.args[i]...); err != nil {
			return err
		}
	}
	return nil
}
