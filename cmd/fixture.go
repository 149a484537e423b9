/*
Copyright © 2023 Glossopoeia
*/
package cmd

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/glossopoeia/subst/compiler/session"
	"github.com/glossopoeia/subst/compiler/substitution"
	"github.com/glossopoeia/subst/compiler/types"
	"github.com/glossopoeia/subst/compiler/util"
)

// A fixture describes one instantiation: the generic parameters declared by the item, the
// substitutions to apply, and the entities written in terms of those parameters.
type Fixture struct {
	Params   []string  `yaml:"params"`
	Regions  []string  `yaml:"regions"`
	At       *SpanSpec `yaml:"at"`
	Table    TableSpec `yaml:"table"`
	Entities []string  `yaml:"entities"`
}

type SpanSpec struct {
	File   string `yaml:"file"`
	Line   int    `yaml:"line"`
	Column int    `yaml:"column"`
}

// Table entries are concrete, so they are parsed with no parameters in scope.
type TableSpec struct {
	Self  string   `yaml:"self"`
	Types []string `yaml:"types"`

	// Either the scalar "erased" or a list of regions. Omitted means the phase default.
	Regions yaml.Node `yaml:"regions"`
}

func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading fixture")
	}
	return ParseFixture(data)
}

func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, errors.Wrap(err, "decoding fixture")
	}
	if len(fx.Entities) == 0 {
		return nil, errors.New("fixture has no entities")
	}
	if dups := duplicates(fx.Params); len(dups) > 0 {
		return nil, errors.Errorf("duplicate type parameters %v", dups)
	}
	if dups := duplicates(fx.Regions); len(dups) > 0 {
		return nil, errors.Errorf("duplicate region parameters %v", dups)
	}
	return &fx, nil
}

// Parameters are resolved by position, so a repeated name would shadow its later indices.
func duplicates(names []string) []string {
	seen := make(map[string]int, len(names))
	for _, n := range names {
		seen[n]++
	}
	var dups []string
	for _, n := range util.SortedKeys(seen) {
		if seen[n] > 1 {
			dups = append(dups, n)
		}
	}
	return dups
}

func (fx *Fixture) Scope() types.Scope {
	return types.Scope{Params: fx.Params, Regions: fx.Regions}
}

func (fx *Fixture) Span() *session.Span {
	if fx.At == nil {
		return nil
	}
	return &session.Span{File: fx.At.File, Line: fx.At.Line, Column: fx.At.Column}
}

// Build the substitutions described by the fixture. Region mode falls back to the phase
// default when the fixture does not give one.
func (fx *Fixture) Substs(phase string) (*substitution.Substs, error) {
	var self types.Type
	if fx.Table.Self != "" {
		t, err := types.Parse(fx.Table.Self, types.Scope{})
		if err != nil {
			return nil, errors.Wrap(err, "table self type")
		}
		self = t
	}

	tys := make([]types.Type, len(fx.Table.Types))
	for i, src := range fx.Table.Types {
		t, err := types.Parse(src, types.Scope{})
		if err != nil {
			return nil, errors.Wrapf(err, "table type %d", i)
		}
		tys[i] = t
	}

	regions, err := fx.regionSubsts(phase)
	if err != nil {
		return nil, err
	}
	return substitution.New(self, tys, regions), nil
}

func (fx *Fixture) regionSubsts(phase string) (substitution.RegionSubsts, error) {
	node := fx.Table.Regions
	switch node.Kind {
	case 0:
		if phase == PhaseTrans {
			return substitution.Erased(), nil
		}
		return substitution.Concrete(), nil
	case yaml.ScalarNode:
		if node.Value == "erased" {
			return substitution.Erased(), nil
		}
		return substitution.RegionSubsts{}, errors.Errorf("line %d: regions must be \"erased\" or a list, found %q", node.Line, node.Value)
	case yaml.SequenceNode:
		var srcs []string
		if err := node.Decode(&srcs); err != nil {
			return substitution.RegionSubsts{}, errors.Wrap(err, "table regions")
		}
		regions := make([]types.Region, len(srcs))
		for i, src := range srcs {
			r, err := types.ParseRegion(src, types.Scope{})
			if err != nil {
				return substitution.RegionSubsts{}, errors.Wrapf(err, "table region %d", i)
			}
			regions[i] = r
		}
		return substitution.Concrete(regions...), nil
	default:
		return substitution.RegionSubsts{}, errors.Errorf("line %d: regions must be \"erased\" or a list", node.Line)
	}
}

// An entity parsed from a fixture: a where-clause when it contains a colon, a type
// otherwise.
type Entity struct {
	Source    string
	Type      types.Type
	Predicate *types.Predicate
}

func (e Entity) String() string {
	if e.Predicate != nil {
		return e.Predicate.String()
	}
	return e.Type.String()
}

func (fx *Fixture) ParseEntities() ([]Entity, error) {
	scope := fx.Scope()
	res := make([]Entity, len(fx.Entities))
	for i, src := range fx.Entities {
		res[i].Source = src
		if strings.Contains(src, ":") {
			p, err := types.ParsePredicate(src, scope)
			if err != nil {
				return nil, errors.Wrapf(err, "entity %d", i)
			}
			res[i].Predicate = p
			continue
		}
		t, err := types.Parse(src, scope)
		if err != nil {
			return nil, errors.Wrapf(err, "entity %d", i)
		}
		res[i].Type = t
	}
	return res, nil
}
