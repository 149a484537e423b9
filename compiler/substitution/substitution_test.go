package substitution

import (
	"testing"

	"github.com/glossopoeia/subst/compiler/types"
)

func TestIsNoop(t *testing.T) {
	testCases := []struct {
		name   string
		substs *Substs
		exp    bool
	}{
		{"Empty", Empty(), true},
		{"ErasedEmpty", ErasedEmpty(), false},
		{"NewEmpty", New(nil, nil, Concrete()), true},
		{"Types", New(nil, []types.Type{types.Int}, Concrete()), false},
		{"Self", New(types.String, nil, Concrete()), false},
		{"Regions", New(nil, nil, Concrete(types.ReStatic{})), false},
		{"ErasedWithTypes", New(nil, []types.Type{types.Int}, Erased()), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if res := tc.substs.IsNoop(); res != tc.exp {
				t.Errorf("Expected IsNoop() = %v for %s, got %v instead", tc.exp, tc.substs, res)
			}
		})
	}
}

func TestSelf(t *testing.T) {
	s := New(types.String, nil, Erased())
	if !types.Equal(s.Self(), types.String) {
		t.Errorf("Expected self type string, got %s", s.Self())
	}
}

func TestSelfMissingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected Self() to panic when the self type is absent")
		}
	}()
	Empty().Self()
}

func TestNewCopiesInputs(t *testing.T) {
	tys := []types.Type{types.Int}
	regions := []types.Region{types.ReStatic{}}
	s := New(nil, tys, Concrete(regions...))
	tys[0] = types.Bool
	regions[0] = types.ReFree{Name: "x"}

	if !types.Equal(s.Types[0], types.Int) {
		t.Errorf("Expected table types to be unaffected by caller mutation")
	}
	if s.Regions.Regions()[0] != (types.ReStatic{}) {
		t.Errorf("Expected table regions to be unaffected by caller mutation")
	}
}

func TestRegionsReturnsCopy(t *testing.T) {
	s := New(nil, nil, Concrete(types.ReStatic{}))
	s.Regions.Regions()[0] = types.ReFree{Name: "x"}

	if res := s.Regions.String(); res != "['static]" {
		t.Errorf("Expected ['static], got %s instead", res)
	}
}

func TestString(t *testing.T) {
	s := New(types.String, []types.Type{types.Int, types.Bool}, Concrete(types.ReStatic{}, types.ReFree{Name: "b"}))
	exp := "{self: string, types: [int, bool], regions: ['static, 'b]}"
	if s.String() != exp {
		t.Errorf("Expected %q, got %q instead", exp, s.String())
	}
	if res := ErasedEmpty().String(); res != "{self: none, types: [], regions: erased}" {
		t.Errorf("Unexpected rendering %q", res)
	}
}
