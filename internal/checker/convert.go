package checker

import (
	"fmt"
	"math/big"
)

// ConversionEntry describes how values convert into one target type.
// An entry either clamps to a numeric range (Min/Max set) or
// reinterprets the source bytes directly (Reinterpret set); never both.
type ConversionEntry struct {
	Target      *Type
	Sources     []*Type
	Min         *big.Rat // clamp lower bound; nil for reinterpretation
	Max         *big.Rat // clamp upper bound; nil for reinterpretation
	Reinterpret bool
}

// Accepts reports whether the entry converts from the given source type
func (e *ConversionEntry) Accepts(source *Type) bool {
	for _, s := range e.Sources {
		if s.Equal(source) {
			return true
		}
	}
	return false
}

// Clamp saturates v to the entry's declared bounds. The result is always
// within [Min, Max]; an in-range v is returned unchanged. Only valid for
// numeric entries.
func (e *ConversionEntry) Clamp(v *big.Rat) *big.Rat {
	if v.Cmp(e.Min) < 0 {
		return new(big.Rat).Set(e.Min)
	}
	if v.Cmp(e.Max) > 0 {
		return new(big.Rat).Set(e.Max)
	}
	return v
}

// Registry is the immutable conversion table, keyed by target type.
// It is built once and never mutated, so a single instance may be
// shared across concurrent compilations.
type Registry struct {
	entries map[string]*ConversionEntry
}

// NewRegistry builds a registry from the given entries
func NewRegistry(entries ...*ConversionEntry) *Registry {
	r := &Registry{entries: make(map[string]*ConversionEntry, len(entries))}
	for _, e := range entries {
		r.entries[e.Target.Name] = e
	}
	return r
}

// Lookup returns the conversion entry for the target type name
func (r *Registry) Lookup(target string) (*ConversionEntry, bool) {
	e, ok := r.entries[target]
	return e, ok
}

// defaultEntries is the fixed conversion table of the language.
// bool, bytes, and address are deliberately absent as targets: a
// conversion request naming them is an UnknownConversionError.
func defaultEntries() []*ConversionEntry {
	return []*ConversionEntry{
		{
			Target:  TypeInt128,
			Sources: []*Type{TypeUint256, TypeDecimal, TypeBytes32},
			Min:     TypeInt128.Min,
			Max:     TypeInt128.Max,
		},
		{
			Target:  TypeUint256,
			Sources: []*Type{TypeInt128, TypeDecimal, TypeBytes32, TypeAddress},
			Min:     TypeUint256.Min,
			Max:     TypeUint256.Max,
		},
		{
			Target:  TypeDecimal,
			Sources: []*Type{TypeInt128, TypeUint256},
			Min:     TypeDecimal.Min,
			Max:     TypeDecimal.Max,
		},
		{
			Target:      TypeBytes32,
			Sources:     []*Type{TypeInt128, TypeUint256, TypeAddress},
			Reinterpret: true,
		},
	}
}

// verifyRegistry checks a registry for completeness and consistency
// against the declared type set: every numeric type has an entry, every
// entry references declared types only, and clamp bounds stay within the
// target's own bounds.
func verifyRegistry(r *Registry) error {
	for _, t := range DeclaredTypes() {
		if t.Numeric {
			if _, ok := r.Lookup(t.Name); !ok {
				return fmt.Errorf("conversion registry has no entry for numeric type %s", t.Name)
			}
		}
	}

	for name, e := range r.entries {
		if ByName(name) == nil {
			return fmt.Errorf("conversion registry target %s is not a declared type", name)
		}
		for _, s := range e.Sources {
			if ByName(s.Name) == nil {
				return fmt.Errorf("conversion entry for %s accepts undeclared type %s", name, s.Name)
			}
			if s.Equal(e.Target) {
				return fmt.Errorf("conversion entry for %s accepts its own target type", name)
			}
		}
		if e.Reinterpret {
			if e.Min != nil || e.Max != nil {
				return fmt.Errorf("conversion entry for %s mixes reinterpretation with clamp bounds", name)
			}
			continue
		}
		if e.Min == nil || e.Max == nil {
			return fmt.Errorf("conversion entry for %s has no clamp bounds", name)
		}
		if e.Min.Cmp(e.Max) > 0 {
			return fmt.Errorf("conversion entry for %s has inverted bounds", name)
		}
		if e.Target.Numeric && (e.Min.Cmp(e.Target.Min) < 0 || e.Max.Cmp(e.Target.Max) > 0) {
			return fmt.Errorf("conversion entry for %s clamps outside the type's own bounds", name)
		}
	}
	return nil
}

var defaultRegistry = func() *Registry {
	r := NewRegistry(defaultEntries()...)
	if err := verifyRegistry(r); err != nil {
		panic(err)
	}
	return r
}()

// DefaultRegistry returns the shared built-in conversion table
func DefaultRegistry() *Registry {
	return defaultRegistry
}
