// Package tabular provides the in-memory lookup tables behind the
// table-backed benchmark families. A Table is loaded once, fully, and is
// read-only afterwards.
package tabular

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/chpobench/chpobench/bench"
)

// KeyFunc derives the lookup key of a configuration.
type KeyFunc func(space bench.Space, cfg bench.Config) (string, error)

// IndexKey concatenates, in canonical space order, the position of each
// configuration value within its parameter's choice list. Every parameter
// must be ordinal or categorical.
func IndexKey(space bench.Space, cfg bench.Config) (string, error) {
	var b strings.Builder
	for _, p := range space {
		idx, ok := bench.ChoiceIndex(p.Domain, cfg[p.Name])
		if !ok {
			return "", fmt.Errorf("%w: %q=%v has no index in %s", bench.ErrInvalidValue, p.Name, cfg[p.Name], p.Domain)
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String(), nil
}

// SerializedKey encodes the configuration, restricted to the declared
// parameters, as JSON with sorted keys. Ordinal and categorical values are
// replaced by their declared choice, so 16 and 16.0 encode the same.
func SerializedKey(space bench.Space, cfg bench.Config) (string, error) {
	restricted := make(map[string]any, len(space))
	for _, p := range space {
		v, ok := cfg[p.Name]
		if !ok {
			return "", fmt.Errorf("%w: missing parameter %q", bench.ErrInvalidValue, p.Name)
		}
		if idx, ok := bench.ChoiceIndex(p.Domain, v); ok {
			v = p.Domain.Spec().Values[idx]
		}
		restricted[p.Name] = v
	}
	// encoding/json sorts map keys.
	data, err := json.Marshal(restricted)
	if err != nil {
		return "", fmt.Errorf("%w: encode configuration: %v", bench.ErrInvalidValue, err)
	}
	return string(data), nil
}

// Table maps configuration keys to recorded entries.
type Table[E any] struct {
	name  string
	space bench.Space
	key   KeyFunc
	rows  map[string]E
}

// NewTable wraps rows, keyed by key over space. name is used in errors.
func NewTable[E any](name string, space bench.Space, key KeyFunc, rows map[string]E) *Table[E] {
	return &Table[E]{name: name, space: space, key: key, rows: rows}
}

// Lookup returns the entry recorded for cfg. A well-formed configuration
// missing from the table wraps bench.ErrNotFound.
func (t *Table[E]) Lookup(cfg bench.Config) (E, error) {
	var zero E
	k, err := t.key(t.space, cfg)
	if err != nil {
		return zero, err
	}
	entry, ok := t.rows[k]
	if !ok {
		return zero, fmt.Errorf("%w: %s does not have the config %v (key %s)", bench.ErrNotFound, t.name, cfg, k)
	}
	logrus.Debugf("%s lookup key %s", t.name, k)
	return entry, nil
}

// Len returns the number of recorded configurations.
func (t *Table[E]) Len() int {
	return len(t.rows)
}
