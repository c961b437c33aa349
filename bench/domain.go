package bench

import (
	"fmt"
	"math"
	"strings"
)

// floatRelTol is the relative tolerance applied to FloatDomain bounds.
const floatRelTol = 1e-9

// Config maps parameter names to values (int, float64, string or bool).
type Config map[string]any

// Fidels maps fidelity names to numeric values. Missing entries take the
// family default.
type Fidels map[string]any

// Domain is the declared set of valid values for one parameter.
// Implementations: FloatDomain, IntDomain, OrdinalDomain, CategoricalDomain.
type Domain interface {
	// Contains reports whether v is a member of the domain. Never clamps.
	Contains(v any) bool
	// Spec returns the serializable description of the domain.
	Spec() DomainSpec
	String() string
}

// FloatDomain is a continuous range with inclusive bounds.
type FloatDomain struct {
	Lower, Upper float64
	Log          bool
}

func (d FloatDomain) Contains(v any) bool {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	lo := d.Lower - floatRelTol*math.Max(1, math.Abs(d.Lower))
	hi := d.Upper + floatRelTol*math.Max(1, math.Abs(d.Upper))
	return f >= lo && f <= hi
}

func (d FloatDomain) Spec() DomainSpec {
	lo, hi := d.Lower, d.Upper
	return DomainSpec{Type: DomainFloat, Lower: &lo, Upper: &hi, Log: d.Log}
}

func (d FloatDomain) String() string {
	return fmt.Sprintf("Float[%g, %g]%s", d.Lower, d.Upper, logSuffix(d.Log))
}

// IntDomain is an integer range with inclusive bounds. Non-integral values
// are rejected.
type IntDomain struct {
	Lower, Upper int
	Log          bool
}

func (d IntDomain) Contains(v any) bool {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return false
	}
	return f >= float64(d.Lower) && f <= float64(d.Upper)
}

func (d IntDomain) Spec() DomainSpec {
	lo, hi := float64(d.Lower), float64(d.Upper)
	return DomainSpec{Type: DomainInt, Lower: &lo, Upper: &hi, Log: d.Log}
}

func (d IntDomain) String() string {
	return fmt.Sprintf("Int[%d, %d]%s", d.Lower, d.Upper, logSuffix(d.Log))
}

// OrdinalDomain is an ordered sequence of numeric values.
type OrdinalDomain struct {
	Seq []any
}

func (d OrdinalDomain) Contains(v any) bool {
	return indexOf(d.Seq, v) >= 0
}

func (d OrdinalDomain) Spec() DomainSpec {
	return DomainSpec{Type: DomainOrdinal, Values: append([]any(nil), d.Seq...)}
}

func (d OrdinalDomain) String() string {
	return "Ordinal" + formatValues(d.Seq)
}

// CategoricalDomain is an unordered set of allowed values.
type CategoricalDomain struct {
	Choices []any
}

func (d CategoricalDomain) Contains(v any) bool {
	return indexOf(d.Choices, v) >= 0
}

func (d CategoricalDomain) Spec() DomainSpec {
	return DomainSpec{Type: DomainCategorical, Values: append([]any(nil), d.Choices...)}
}

func (d CategoricalDomain) String() string {
	return "Categorical" + formatValues(d.Choices)
}

// ChoiceIndex returns the position of v in an ordinal or categorical domain.
// ok is false for range domains and for values outside the domain.
func ChoiceIndex(d Domain, v any) (idx int, ok bool) {
	switch dd := d.(type) {
	case OrdinalDomain:
		idx = indexOf(dd.Seq, v)
	case CategoricalDomain:
		idx = indexOf(dd.Choices, v)
	default:
		return -1, false
	}
	return idx, idx >= 0
}

// Param is one named entry of a Space.
type Param struct {
	Name   string
	Domain Domain
}

// Space is an ordered parameter space. The order is canonical: indexed-table
// keys are built by walking it front to back.
type Space []Param

// Lookup returns the domain declared for name.
func (s Space) Lookup(name string) (Domain, bool) {
	for _, p := range s {
		if p.Name == name {
			return p.Domain, true
		}
	}
	return nil, false
}

// Names returns parameter names in canonical order.
func (s Space) Names() []string {
	names := make([]string, len(s))
	for i, p := range s {
		names[i] = p.Name
	}
	return names
}

// ValidateConfig checks that cfg declares every parameter of the space, and
// nothing else, with in-domain values. Violations wrap ErrInvalidValue.
func (s Space) ValidateConfig(cfg Config) error {
	for name, v := range cfg {
		if _, ok := s.Lookup(name); !ok {
			return &DomainError{Param: name, Value: v, kind: ErrInvalidValue}
		}
	}
	for _, p := range s {
		v, ok := cfg[p.Name]
		if !ok {
			return fmt.Errorf("%w: missing parameter %q (domain %s)", ErrInvalidValue, p.Name, p.Domain)
		}
		if !p.Domain.Contains(v) {
			return &DomainError{Param: p.Name, Domain: p.Domain, Value: v, kind: ErrInvalidValue}
		}
	}
	return nil
}

// ValidateFidels checks every supplied fidelity against the space. Missing
// entries are allowed. Numeric range violations wrap ErrOutOfRange; ordinal
// and categorical violations wrap ErrInvalidValue.
func (s Space) ValidateFidels(fidels Fidels) error {
	for name, v := range fidels {
		d, ok := s.Lookup(name)
		if !ok {
			return &DomainError{Param: name, Value: v, kind: ErrInvalidValue}
		}
		if d.Contains(v) {
			continue
		}
		kind := ErrInvalidValue
		switch d.(type) {
		case FloatDomain, IntDomain:
			if _, numeric := toFloat(v); numeric {
				kind = ErrOutOfRange
			}
		}
		return &DomainError{Param: name, Domain: d, Value: v, kind: kind}
	}
	return nil
}

// toFloat converts any Go numeric value to float64. Booleans and strings are
// not numeric.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

// sameValue compares numerics by value (16 == 16.0) and strings / bools exactly.
func sameValue(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	return false
}

func indexOf(values []any, v any) int {
	for i, c := range values {
		if sameValue(c, v) {
			return i
		}
	}
	return -1
}

func formatValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func logSuffix(log bool) string {
	if log {
		return " (log)"
	}
	return ""
}
