package types

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	scope := Scope{Params: []string{"T", "U"}, Regions: []string{"a", "b"}}

	data := []string{
		"int",
		"T",
		"Self",
		"{error}",
		"Vec<T>",
		"HashMap<string, Vec<U>>",
		"Cell<'a, 'b, T>",
		"&'a mut T",
		"&int",
		"&'static str",
		"*const Self",
		"*mut [T; 8]",
		"[U]",
		"()",
		"(T,)",
		"(T, U, Self)",
		"fn(T, Self) -> U",
		"fn()",
		"fn(int, ...) -> int",
		"for<'r, 's> fn(&'r T, &'s U) -> &'a int",
		"dyn Iterator<T>",
		"dyn Fn<(T,)> + 'a",
	}

	for _, src := range data {
		t.Run(src, func(t *testing.T) {
			ty, err := Parse(src, scope)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if ty.String() != src {
				t.Errorf("Expected %q, got %q instead", src, ty.String())
			}
			again := MustParse(ty.String(), scope)
			if !Equal(ty, again) {
				t.Errorf("Expected %s to survive a round trip", ty)
			}
		})
	}
}

func TestParseResolution(t *testing.T) {
	scope := Scope{Params: []string{"T", "U"}, Regions: []string{"a"}}

	ty := MustParse("for<'a> fn(&'a U, &'a T) -> Box<'a, T>", scope)
	sig := ty.(*Func).Sig
	first := sig.Inputs[0].(*Ref)
	if _, ok := first.Region.(ReLateBound); !ok {
		t.Errorf("Expected binder to shadow the early-bound 'a, got %#v", first.Region)
	}
	if p := first.Elem.(*Param); p.Index != 1 {
		t.Errorf("Expected U to have index 1, got %d", p.Index)
	}

	outer := MustParse("fn(&'a T) -> for<'r> fn(&'r T, &'a T)", scope)
	inner := outer.(*Func).Sig.Output.(*Func).Sig
	if r := inner.Inputs[0].(*Ref).Region; r != (ReLateBound{0, 0, "r"}) {
		t.Errorf("Expected innermost late-bound region, got %#v", r)
	}
	if r := inner.Inputs[1].(*Ref).Region; r != (ReEarlyBound{0, "a"}) {
		t.Errorf("Expected early-bound region, got %#v", r)
	}
	if r := MustParse("&'z int", scope).(*Ref).Region; r != (ReFree{"z"}) {
		t.Errorf("Expected free region, got %#v", r)
	}
	if tup, ok := MustParse("(T)", scope).(*Param); !ok || tup.Index != 0 {
		t.Errorf("Expected parenthesised type to be the type itself")
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		pos  int
	}{
		{"Empty", "", 0},
		{"Trailing", "int int", 4},
		{"Unclosed", "Vec<T", 5},
		{"BadPointer", "*T", 1},
		{"BadArray", "[int; x]", 6},
		{"LoneRegion", "'a", 0},
		{"MissingBound", "dyn Eq +", 8},
		{"MultiByteSymbol", "Vec<→>", 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src, Scope{Params: []string{"T"}})
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Expected a ParseError, got %v", err)
			}
			if perr.Pos != tc.pos {
				t.Errorf("Expected error at %d, got %d (%v)", tc.pos, perr.Pos, perr)
			}
		})
	}
}

func TestParseUnicode(t *testing.T) {
	res, err := Parse("Vec<é, 'λ T>", Scope{Params: []string{"T"}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.String() != "Vec<'λ, é, T>" {
		t.Errorf("Expected Vec<'λ, é, T>, got %s instead", res)
	}

	_, err = Parse("Vec<→>", Scope{})
	if err == nil || !strings.Contains(err.Error(), `found "→"`) {
		t.Errorf("Expected the error to quote the whole rune, got %v", err)
	}
}

func TestParsePredicate(t *testing.T) {
	scope := Scope{Params: []string{"T"}}
	pred, err := ParsePredicate("T: PartialEq<Self>", scope)
	if err != nil {
		t.Fatal(err)
	}
	if pred.String() != "T: PartialEq<Self>" {
		t.Errorf("Unexpected predicate %s", pred)
	}
	if !pred.Flags().Has(HasParams | HasSelf) {
		t.Errorf("Expected predicate flags to include its parts")
	}
	if _, err := ParsePredicate("T PartialEq", scope); err == nil {
		t.Errorf("Expected missing colon to fail")
	}
}

func TestParseRegion(t *testing.T) {
	scope := Scope{Regions: []string{"a", "b"}}
	testCases := []struct {
		src string
		exp Region
	}{
		{"'static", ReStatic{}},
		{"'b", ReEarlyBound{1, "b"}},
		{"'x", ReFree{"x"}},
		{"'_", ReFree{}},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			r, err := ParseRegion(tc.src, scope)
			if err != nil {
				t.Fatal(err)
			}
			if r != tc.exp {
				t.Errorf("Expected %#v, got %#v instead", tc.exp, r)
			}
		})
	}
	if _, err := ParseRegion("int", scope); err == nil {
		t.Errorf("Expected a type to be rejected as a region")
	}
	if _, err := ParseRegion("'a 'b", scope); err == nil {
		t.Errorf("Expected trailing input to be rejected")
	}
}
