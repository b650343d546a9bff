package ecs

import "github.com/TheBitDrifter/mask"

// maskPair is one disjunct of a Filter: an archetype matches the pair if it
// holds every bit in require and none of the bits in forbid (spec §4.8 C8
// Filter Algebra). Bits are kept as plain lists rather than pre-built
// mask.Mask values so that combining two pairs (And) never needs a
// bitwise-OR primitive the mask package does not expose — the final
// mask.Mask is only assembled, via Mark, at match time.
type maskPair struct {
	require []uint32
	forbid  []uint32
}

func (p maskPair) buildMasks() (require, forbid mask.Mask) {
	for _, bit := range p.require {
		require.Mark(bit)
	}
	for _, bit := range p.forbid {
		forbid.Mark(bit)
	}
	return
}

func (p maskPair) matches(m mask.Mask) bool {
	require, forbid := p.buildMasks()
	if !m.ContainsAll(require) {
		return false
	}
	if forbid.ContainsAny(m) {
		return false
	}
	return true
}

func (p maskPair) clone() maskPair {
	return maskPair{
		require: append([]uint32(nil), p.require...),
		forbid:  append([]uint32(nil), p.forbid...),
	}
}

// Filter is an immutable, composable predicate over archetype bitfields,
// built with With/Without/And/Or/Maybe (spec §4.8). Internally it is a
// disjunctive-normal-form list of (require, forbid) bit-list pairs — a
// table matches if ANY pair matches. The zero Filter matches every
// archetype.
type Filter struct {
	pairs []maskPair
}

func newFilter() Filter {
	return Filter{pairs: []maskPair{{}}}
}

// With builds a Filter requiring every listed component.
func With(registry *componentRegistry, components ...Component) Filter {
	return newFilter().With(registry, components...)
}

// Without builds a Filter forbidding every listed component.
func Without(registry *componentRegistry, components ...Component) Filter {
	return newFilter().Without(registry, components...)
}

// With returns a Filter equivalent to f AND require(components...).
func (f Filter) With(registry *componentRegistry, components ...Component) Filter {
	if len(f.pairs) == 0 {
		f = newFilter()
	}
	out := Filter{pairs: make([]maskPair, len(f.pairs))}
	for i, p := range f.pairs {
		np := p.clone()
		for _, c := range components {
			np.require = append(np.require, registry.bitFor(c))
		}
		out.pairs[i] = np
	}
	return out
}

// Without returns a Filter equivalent to f AND forbid(components...).
func (f Filter) Without(registry *componentRegistry, components ...Component) Filter {
	if len(f.pairs) == 0 {
		f = newFilter()
	}
	out := Filter{pairs: make([]maskPair, len(f.pairs))}
	for i, p := range f.pairs {
		np := p.clone()
		for _, c := range components {
			np.forbid = append(np.forbid, registry.bitFor(c))
		}
		out.pairs[i] = np
	}
	return out
}

// And returns the conjunction of f and g: the cross product of both pair
// lists, each combined pair's require/forbid bits being the union of its
// operands' (spec §4.8).
func (f Filter) And(g Filter) Filter {
	if len(f.pairs) == 0 {
		f = newFilter()
	}
	if len(g.pairs) == 0 {
		g = newFilter()
	}
	out := Filter{pairs: make([]maskPair, 0, len(f.pairs)*len(g.pairs))}
	for _, a := range f.pairs {
		for _, b := range g.pairs {
			np := a.clone()
			np.require = append(np.require, b.require...)
			np.forbid = append(np.forbid, b.forbid...)
			out.pairs = append(out.pairs, np)
		}
	}
	return out
}

// Or returns the disjunction of f and g: the union of both pair lists.
func (f Filter) Or(g Filter) Filter {
	return Filter{pairs: append(append([]maskPair(nil), f.pairs...), g.pairs...)}
}

// Maybe returns f unchanged — an optional component imposes no constraint
// on which archetypes match (spec §4.7/§4.8 "Maybe accessor"). It does not
// register the component, and Query exposes no per-row columns for it.
func (f Filter) Maybe(Component) Filter {
	return f
}

// satisfiable reports whether at least one disjunct's require and forbid
// bit lists are disjoint (spec §4.8's unsatisfiable-filter diagnostic).
func (f Filter) satisfiable() bool {
	for _, p := range f.pairs {
		overlap := false
		for _, r := range p.require {
			for _, fb := range p.forbid {
				if r == fb {
					overlap = true
				}
			}
		}
		if !overlap {
			return true
		}
	}
	return false
}

// matches reports whether m satisfies any disjunct of f.
func (f Filter) matches(m mask.Mask) bool {
	if len(f.pairs) == 0 {
		return true
	}
	for _, p := range f.pairs {
		if p.matches(m) {
			return true
		}
	}
	return false
}
