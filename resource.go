package ecs

import "reflect"

// ResourceFactory constructs a resource's value on first access, given the
// owning World (spec §4.9 `type.fromWorld(world)`). Go has no per-type
// static dispatch, so the hook is registered explicitly against T rather
// than discovered via reflection on the type itself.
type ResourceFactory func(World) (any, error)

type resourceEntry struct {
	value   any
	present bool
}

// ResourceRegistry is a type-keyed singleton store (C9 Resource Registry,
// spec §4.9), grounded on edwinsyarief-lazyecs's resources.go (a
// type-keyed slice with a free list) but simplified to a map, since this
// core never removes a resource type once registered — only replaces its
// value (`InsertResource`).
type ResourceRegistry struct {
	entries   map[reflect.Type]resourceEntry
	factories map[reflect.Type]ResourceFactory
}

func newResourceRegistry() *ResourceRegistry {
	return &ResourceRegistry{
		entries:   make(map[reflect.Type]resourceEntry),
		factories: make(map[reflect.Type]ResourceFactory),
	}
}

// resourceTypeOf resolves T's reflect.Type without needing a live value of
// T, so it also works for interface and pointer resource types.
func resourceTypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// RegisterFactory installs T's `fromWorld` hook (spec §4.9). A second
// registration for the same T replaces the first.
func RegisterFactory[T any](r *ResourceRegistry, factory func(World) (T, error)) {
	t := resourceTypeOf[T]()
	r.factories[t] = func(w World) (any, error) { return factory(w) }
}

// RegisterAsyncFactory installs an async `fromWorld` hook for T, run on a
// goroutine and joined before the value is returned — the concrete
// realization of spec §9's "await only in the async branch" for resource
// construction, since this implementation is otherwise fully synchronous.
func RegisterAsyncFactory[T any](r *ResourceRegistry, factory func(World) (T, error)) {
	t := resourceTypeOf[T]()
	r.factories[t] = func(w World) (any, error) {
		type result struct {
			value T
			err   error
		}
		ch := make(chan result, 1)
		go func() {
			v, err := factory(w)
			ch <- result{value: v, err: err}
		}()
		res := <-ch
		return res.value, res.err
	}
}

// InsertResource replaces any existing resource of T's type, or installs it
// for the first time (spec §4.9 `insertResource`).
func InsertResource[T any](r *ResourceRegistry, value T) {
	r.entries[resourceTypeOf[T]()] = resourceEntry{value: value, present: true}
}

// HasResource reports whether T's instance has already been constructed or
// inserted.
func HasResource[T any](r *ResourceRegistry) bool {
	e, ok := r.entries[resourceTypeOf[T]()]
	return ok && e.present
}

// GetResource returns T's stored instance, constructing it via its
// registered factory on first access (spec §4.9 `getResource<T>`). A
// missing factory, or a factory that returns nothing, is a hard
// MissingResourceFactoryError (spec §7) — resources are never silently
// substituted.
func GetResource[T any](r *ResourceRegistry, world World) (T, error) {
	var zero T
	t := resourceTypeOf[T]()
	if e, ok := r.entries[t]; ok && e.present {
		return e.value.(T), nil
	}
	factory, ok := r.factories[t]
	if !ok {
		return zero, fail(MissingResourceFactoryError{Type: t})
	}
	v, err := factory(world)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fail(MissingResourceFactoryError{Type: t})
	}
	r.entries[t] = resourceEntry{value: typed, present: true}
	return typed, nil
}
