package fold

import (
	"testing"

	"github.com/glossopoeia/subst/compiler/types"
)

// Replaces every `int` with `uint` and every free region with 'static, counting visits.
type widen struct {
	tys  int
	regs int
}

func (w *widen) FoldType(t types.Type) types.Type {
	w.tys++
	if con, ok := t.(*types.Con); ok && con.Name == "int" {
		return types.Uint
	}
	return SuperFoldType(w, t)
}

func (w *widen) FoldRegion(r types.Region) types.Region {
	w.regs++
	if _, ok := r.(types.ReFree); ok {
		return types.ReStatic{}
	}
	return SuperFoldRegion(w, r)
}

type toUnit struct{}

func (toUnit) FoldType(t types.Type) types.Type       { return types.Unit }
func (toUnit) FoldRegion(r types.Region) types.Region { return r }

var scope = types.Scope{Params: []string{"T"}, Regions: []string{"a"}}

func TestSuperFoldType(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		exp  string
	}{
		{"Leaf", "bool", "bool"},
		{"Param", "T", "T"},
		{"App", "Map<'x, int, T>", "Map<'static, uint, T>"},
		{"Ref", "&'x mut int", "&'static mut uint"},
		{"EarlyUntouched", "&'a int", "&'a uint"},
		{"Ptr", "*const int", "*const uint"},
		{"Array", "[[int]; 2]", "[[uint]; 2]"},
		{"Tuple", "(int, Self, ())", "(uint, Self, ())"},
		{"Func", "for<'r> fn(&'r int, ...) -> int", "for<'r> fn(&'r uint, ...) -> uint"},
		{"Trait", "dyn Add<int> + 'x", "dyn Add<uint> + 'static"},
		{"TraitNoBound", "dyn Add<int>", "dyn Add<uint>"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := Fold(&widen{}, types.MustParse(tc.src, scope))
			if res.String() != tc.exp {
				t.Errorf("Expected %s, got %s instead", tc.exp, res)
			}
		})
	}
}

func TestFoldVisitsEveryNode(t *testing.T) {
	w := &widen{}
	Fold(w, types.MustParse("fn(&'x int, Vec<'a, T>) -> bool", scope))
	// fn, &int, int, Vec, T, bool
	if w.tys != 6 {
		t.Errorf("Expected 6 type visits, got %d", w.tys)
	}
	if w.regs != 2 {
		t.Errorf("Expected 2 region visits, got %d", w.regs)
	}
}

func TestFoldEntities(t *testing.T) {
	w := &widen{}

	sig := types.MustParse("fn(int) -> T", scope).(*types.Func).Sig
	if res := Fold(w, sig); res.String() != "fn(uint) -> T" {
		t.Errorf("Unexpected signature %s", res)
	}

	ref := types.NewTraitRef("From", []types.Type{types.Int})
	if res := Fold(w, ref); res.String() != "From<uint>" {
		t.Errorf("Unexpected trait ref %s", res)
	}

	pred, _ := types.ParsePredicate("int: Into<T>", scope)
	if res := Fold(w, pred); res.String() != "uint: Into<T>" {
		t.Errorf("Unexpected predicate %s", res)
	}

	g := &types.Generics{Params: []string{"T"}, Predicates: []*types.Predicate{pred}}
	if res := Fold(w, g); res.String() != "<T> where uint: Into<T>" {
		t.Errorf("Unexpected generics %s", res)
	}

	ts := Fold(w, []types.Type{types.Int, types.Bool})
	if !types.EqualTypes(ts, []types.Type{types.Uint, types.Bool}) {
		t.Errorf("Unexpected types %v", ts)
	}

	rs := Fold(w, []types.Region{types.ReFree{Name: "x"}, types.ReEarlyBound{Index: 0, Name: "a"}})
	if !types.EqualRegions(rs, []types.Region{types.ReStatic{}, types.ReEarlyBound{Index: 0, Name: "a"}}) {
		t.Errorf("Unexpected regions %v", rs)
	}

	var r types.Region = types.ReFree{Name: "y"}
	if res := Fold(w, r); res != (types.ReStatic{}) {
		t.Errorf("Unexpected region %v", res)
	}
}

func TestFoldConcreteTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected folding a concrete shape into another shape to panic")
		}
	}()
	Fold(toUnit{}, types.NewCon("int"))
}

func TestFoldUnknownEntityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected folding an unsupported entity to panic")
		}
	}()
	Fold(&widen{}, 42)
}
