// Package units converts between a closed set of length, mass and time units.
//
// The table is loaded from embedded YAML. Source entries give their factor
// either as to_base or per_base; Load folds both forms into a single
// Factor so conversion never has to guess a direction.
package units

import (
	"bytes"
	_ "embed"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed units.yaml
var defaultData []byte

// Dimension is a physical quantity with one canonical base unit.
type Dimension string

const (
	Length Dimension = "length"
	Mass   Dimension = "mass"
	Time   Dimension = "time"
)

// Unit is a resolved table entry. Factor is the number of base units in
// one of this unit.
type Unit struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Dimension Dimension `json:"dimension"`
	Factor    float64   `json:"factor"`
	Aliases   []string  `json:"aliases,omitempty"`
}

// IsBase reports whether u is the canonical unit of its dimension.
func (u Unit) IsBase() bool {
	return u.Factor == 1
}

type tableFile struct {
	Dimensions map[Dimension]string `yaml:"dimensions"`
	Units      []unitEntry          `yaml:"units"`
}

type unitEntry struct {
	Symbol    string    `yaml:"symbol"`
	Name      string    `yaml:"name"`
	Dimension Dimension `yaml:"dimension"`
	ToBase    float64   `yaml:"to_base"`
	PerBase   float64   `yaml:"per_base"`
	Aliases   []string  `yaml:"aliases"`
}

// Table is an immutable unit table. All methods are safe for concurrent use.
type Table struct {
	units []Unit
	bases map[Dimension]string
	index map[string]int // lowercased symbol or alias -> position in units
}

// Default returns the built-in table.
var Default = sync.OnceValue(func() *Table {
	t, err := Load(defaultData)
	if err != nil {
		panic(fmt.Sprintf("units: embedded table: %v", err))
	}
	return t
})

// Load parses a YAML unit table.
func Load(data []byte) (*Table, error) {
	var f tableFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse unit table: %w", err)
	}
	if len(f.Units) == 0 {
		return nil, fmt.Errorf("unit table has no units")
	}

	t := &Table{
		bases: make(map[Dimension]string, len(f.Dimensions)),
		index: make(map[string]int, len(f.Units)*3),
	}
	for dim, sym := range f.Dimensions {
		t.bases[dim] = strings.ToLower(sym)
	}

	for _, e := range f.Units {
		u, err := e.resolve()
		if err != nil {
			return nil, err
		}
		if _, ok := t.bases[u.Dimension]; !ok {
			return nil, fmt.Errorf("unit %q: unknown dimension %q", u.Symbol, u.Dimension)
		}
		t.units = append(t.units, u)
		pos := len(t.units) - 1
		for _, key := range append([]string{u.Symbol}, u.Aliases...) {
			if err := t.addKey(key, pos); err != nil {
				return nil, err
			}
		}
	}

	for dim, sym := range t.bases {
		i, ok := t.index[sym]
		if !ok {
			return nil, fmt.Errorf("dimension %q: base unit %q is not defined", dim, sym)
		}
		if u := t.units[i]; u.Dimension != dim || !u.IsBase() {
			return nil, fmt.Errorf("dimension %q: base unit %q must have factor 1", dim, sym)
		}
	}
	return t, nil
}

func (e unitEntry) resolve() (Unit, error) {
	sym := strings.ToLower(strings.TrimSpace(e.Symbol))
	if sym == "" {
		return Unit{}, fmt.Errorf("unit entry %q has no symbol", e.Name)
	}

	var factor float64
	switch {
	case e.ToBase != 0 && e.PerBase != 0:
		return Unit{}, fmt.Errorf("unit %q: set either to_base or per_base, not both", sym)
	case e.ToBase != 0:
		factor = e.ToBase
	case e.PerBase != 0:
		factor = 1 / e.PerBase
	default:
		return Unit{}, fmt.Errorf("unit %q: missing to_base or per_base", sym)
	}
	if factor <= 0 || math.IsInf(factor, 0) || math.IsNaN(factor) {
		return Unit{}, fmt.Errorf("unit %q: factor must be positive and finite", sym)
	}

	aliases := make([]string, 0, len(e.Aliases))
	for _, a := range e.Aliases {
		aliases = append(aliases, strings.ToLower(strings.TrimSpace(a)))
	}
	return Unit{
		Symbol:    sym,
		Name:      e.Name,
		Dimension: e.Dimension,
		Factor:    factor,
		Aliases:   aliases,
	}, nil
}

func (t *Table) addKey(key string, pos int) error {
	if key == "" {
		return fmt.Errorf("unit %q: empty alias", t.units[pos].Symbol)
	}
	if prev, ok := t.index[key]; ok && prev != pos {
		return fmt.Errorf("alias %q maps to both %q and %q", key, t.units[prev].Symbol, t.units[pos].Symbol)
	}
	t.index[key] = pos
	return nil
}

// WithAliases returns a copy of t with extra alias -> symbol mappings.
// Targets may themselves be aliases. An alias that already names a
// different unit is rejected.
func (t *Table) WithAliases(aliases map[string]string) (*Table, error) {
	if len(aliases) == 0 {
		return t, nil
	}

	out := &Table{
		units: make([]Unit, len(t.units)),
		bases: t.bases,
		index: make(map[string]int, len(t.index)+len(aliases)),
	}
	for i, u := range t.units {
		u.Aliases = append([]string(nil), u.Aliases...)
		out.units[i] = u
	}
	for k, v := range t.index {
		out.index[k] = v
	}

	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		target, ok := t.lookup(aliases[k])
		if !ok {
			return nil, fmt.Errorf("alias %q: unknown unit %q", k, aliases[k])
		}
		alias := strings.ToLower(strings.TrimSpace(k))
		if err := out.addKey(alias, target); err != nil {
			return nil, err
		}
		out.units[target].Aliases = append(out.units[target].Aliases, alias)
	}
	return out, nil
}

// Units returns every unit in table order.
func (t *Table) Units() []Unit {
	out := make([]Unit, len(t.units))
	copy(out, t.units)
	return out
}

// Base returns the canonical unit of dim.
func (t *Table) Base(dim Dimension) (Unit, bool) {
	sym, ok := t.bases[dim]
	if !ok {
		return Unit{}, false
	}
	return t.units[t.index[sym]], true
}

// Resolve finds a unit by symbol or alias, case-insensitively. A name that
// is not known as written is retried without a trailing "s" and then
// without a trailing "es", so "ms" stays milliseconds while "inches" finds
// the inch.
func (t *Table) Resolve(name string) (Unit, bool) {
	i, ok := t.lookup(name)
	if !ok {
		return Unit{}, false
	}
	return t.units[i], true
}

func (t *Table) lookup(name string) (int, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return 0, false
	}
	if i, ok := t.index[key]; ok {
		return i, true
	}
	for _, suffix := range []string{"s", "es"} {
		stem, found := strings.CutSuffix(key, suffix)
		if !found || stem == "" {
			continue
		}
		if i, ok := t.index[stem]; ok {
			return i, true
		}
	}
	return 0, false
}
