package bench

import (
	"bytes"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// DomainType names a Domain implementation in YAML.
type DomainType string

const (
	DomainFloat       DomainType = "float"
	DomainInt         DomainType = "int"
	DomainOrdinal     DomainType = "ordinal"
	DomainCategorical DomainType = "categorical"
)

// DomainSpec is the YAML form of a named Domain.
type DomainSpec struct {
	Name   string     `yaml:"name,omitempty"`
	Type   DomainType `yaml:"type"`
	Lower  *float64   `yaml:"lower,omitempty"`
	Upper  *float64   `yaml:"upper,omitempty"`
	Log    bool       `yaml:"log,omitempty"`
	Values []any      `yaml:"values,omitempty"`
}

// Domain builds the Domain described by s.
func (s DomainSpec) Domain() (Domain, error) {
	switch s.Type {
	case DomainFloat, DomainInt:
		if s.Lower == nil || s.Upper == nil {
			return nil, fmt.Errorf("%s domain %q needs lower and upper", s.Type, s.Name)
		}
		lo, hi := *s.Lower, *s.Upper
		if lo > hi {
			return nil, fmt.Errorf("%s domain %q: lower %g > upper %g", s.Type, s.Name, lo, hi)
		}
		if s.Log && lo <= 0 {
			return nil, fmt.Errorf("%s domain %q: log scale needs lower > 0, got %g", s.Type, s.Name, lo)
		}
		if s.Type == DomainFloat {
			return FloatDomain{Lower: lo, Upper: hi, Log: s.Log}, nil
		}
		if lo != math.Trunc(lo) || hi != math.Trunc(hi) {
			return nil, fmt.Errorf("int domain %q has non-integral bounds [%g, %g]", s.Name, lo, hi)
		}
		return IntDomain{Lower: int(lo), Upper: int(hi), Log: s.Log}, nil
	case DomainOrdinal:
		if len(s.Values) == 0 {
			return nil, fmt.Errorf("ordinal domain %q has no values", s.Name)
		}
		for _, v := range s.Values {
			if _, ok := toFloat(v); !ok {
				return nil, fmt.Errorf("ordinal domain %q: value %v is not numeric", s.Name, v)
			}
		}
		return OrdinalDomain{Seq: append([]any(nil), s.Values...)}, nil
	case DomainCategorical:
		if len(s.Values) == 0 {
			return nil, fmt.Errorf("categorical domain %q has no values", s.Name)
		}
		return CategoricalDomain{Choices: append([]any(nil), s.Values...)}, nil
	}
	return nil, fmt.Errorf("unknown domain type %q for %q", s.Type, s.Name)
}

// Specs returns the YAML form of the space, in canonical order.
func (s Space) Specs() []DomainSpec {
	specs := make([]DomainSpec, len(s))
	for i, p := range s {
		specs[i] = p.Domain.Spec()
		specs[i].Name = p.Name
	}
	return specs
}

// ParseSpaces decodes a YAML document mapping space names to ordered lists of
// DomainSpec. Unknown fields are rejected.
func ParseSpaces(data []byte) (map[string]Space, error) {
	var raw map[string][]DomainSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing search spaces: %w", err)
	}
	spaces := make(map[string]Space, len(raw))
	for name, specs := range raw {
		space := make(Space, 0, len(specs))
		seen := make(map[string]bool, len(specs))
		for _, spec := range specs {
			if spec.Name == "" {
				return nil, fmt.Errorf("space %q: parameter without a name", name)
			}
			if seen[spec.Name] {
				return nil, fmt.Errorf("space %q: duplicate parameter %q", name, spec.Name)
			}
			seen[spec.Name] = true
			d, err := spec.Domain()
			if err != nil {
				return nil, fmt.Errorf("space %q: %w", name, err)
			}
			space = append(space, Param{Name: spec.Name, Domain: d})
		}
		spaces[name] = space
	}
	return spaces, nil
}

// MustParseSpace parses data and returns the named space, panicking on error.
// Intended for package-level initialization from embedded files.
func MustParseSpace(data []byte, name string) Space {
	spaces, err := ParseSpaces(data)
	if err != nil {
		panic(err)
	}
	space, ok := spaces[name]
	if !ok {
		panic(fmt.Sprintf("search space %q not defined", name))
	}
	return space
}

// AsFloat converts a numeric parameter value to float64.
func AsFloat(v any) (float64, bool) {
	return toFloat(v)
}

// AsInt converts an integral numeric parameter value to int.
func AsInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
