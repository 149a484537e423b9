package substitution

import (
	"fmt"
	"strings"

	"github.com/glossopoeia/subst/compiler/types"
	"github.com/glossopoeia/subst/compiler/util"
)

// The values to use when substituting early-bound region parameters. Erased substitutions
// happen after region checking is complete, when every region parameter becomes 'static;
// concrete substitutions carry one region per declared region parameter.
type RegionSubsts struct {
	erased  bool
	regions []types.Region
}

func Erased() RegionSubsts {
	return RegionSubsts{erased: true}
}

func Concrete(regions ...types.Region) RegionSubsts {
	return RegionSubsts{regions: util.Clone(regions)}
}

func (r RegionSubsts) IsErased() bool {
	return r.erased
}

// A copy of the concrete regions, indexed by declaration order. Always empty when erased.
func (r RegionSubsts) Regions() []types.Region {
	return util.Clone(r.regions)
}

func (r RegionSubsts) String() string {
	if r.erased {
		return "erased"
	}
	parts := util.MapSlice(r.regions, types.Region.String)
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

// Substs holds the concrete values for one instantiation of a polymorphic item:
//
//   - SelfTy is the type that `Self` maps to. It is nil unless the item is declared
//     relative to an implicit self type, e.g. a trait applied to an implementing type.
//   - Types are the type parameter values, indexed in the order the parameters were
//     declared.
//   - Regions are the early-bound region parameter values. Late-bound regions of function
//     signatures are substituted elsewhere.
//
// A Substs is never modified after construction and may be reused for any number of
// substitutions.
type Substs struct {
	SelfTy  types.Type
	Types   []types.Type
	Regions RegionSubsts
}

func New(self types.Type, tys []types.Type, regions RegionSubsts) *Substs {
	return &Substs{self, util.Clone(tys), regions}
}

// Substitutions for an item with no generic parameters, while regions still matter.
func Empty() *Substs {
	return &Substs{Regions: Concrete()}
}

// Substitutions for an item with no generic parameters, once regions are being erased.
func ErasedEmpty() *Substs {
	return &Substs{Regions: Erased()}
}

// Whether applying the substitutions is guaranteed to change nothing. Erased substitutions
// are never a no-op, since erasure canonicalizes regions that callers may rely on.
func (s *Substs) IsNoop() bool {
	regionsNoop := !s.Regions.erased && len(s.Regions.regions) == 0
	return len(s.Types) == 0 && regionsNoop && s.SelfTy == nil
}

// The self type. Only call this where the self type is known to be present.
func (s *Substs) Self() types.Type {
	if s.SelfTy == nil {
		panic("substitution: self type requested from substitutions that have none")
	}
	return s.SelfTy
}

func (s *Substs) String() string {
	self := "none"
	if s.SelfTy != nil {
		self = s.SelfTy.String()
	}
	tys := util.MapSlice(s.Types, types.Type.String)
	return fmt.Sprintf("{self: %s, types: [%s], regions: %s}", self, strings.Join(tys, ", "), s.Regions)
}
