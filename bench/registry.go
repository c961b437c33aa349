package bench

import (
	"fmt"
	"sort"
)

// Backend maps a validated configuration and complete fidelity to the
// objectives recorded (or predicted) for it. Three strategies exist:
// indexed-table and serialized-key lookups (bench/tabular) and surrogate
// prediction (bench/jahs).
type Backend interface {
	// Query returns every objective the backend can supply for cfg at fidels,
	// using recorded run seed (ignored by backends without seed pools).
	// cfg and fidels have already passed domain validation; fidels carries
	// defaults for every fidelity the caller omitted.
	Query(cfg Config, fidels Fidels, seed int) (Objectives, error)
}

// OpenRequest carries what a Family needs to load its backing data.
type OpenRequest struct {
	DataPath    string
	Dataset     string
	MetricNames []string
}

// Family describes one benchmark family: its static name tables, spaces and
// how to open a backend for a dataset.
type Family struct {
	Name            string
	DatasetNames    []string
	ObjectiveNames  []string
	ConstraintNames []string
	ConfigSpace     Space
	FidelSpace      Space
	FidelDefaults   Fidels
	NumSeeds        int // recorded runs per configuration; 0 for surrogates
	Open            func(req OpenRequest) (Backend, error)
}

// families holds every registered Family. Written only from init().
var families = map[string]Family{}

// Register adds a family. Sub-packages call it from init(). Registering the
// same name twice panics.
func Register(f Family) {
	if f.Name == "" || f.Open == nil {
		panic("bench: Register needs a name and an Open func")
	}
	if _, dup := families[f.Name]; dup {
		panic(fmt.Sprintf("bench: family %q registered twice", f.Name))
	}
	families[f.Name] = f
}

// LookupFamily returns the registered family called name.
func LookupFamily(name string) (Family, bool) {
	f, ok := families[name]
	return f, ok
}

// Families returns the names of all registered families, sorted.
func Families() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
