package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Apply f to each element, preserving order. A nil slice maps to a nil slice so that
// rebuilt values keep the shape of the originals.
func MapSlice[T any, V any](ls []T, f func(T) V) []V {
	if ls == nil {
		return nil
	}
	res := make([]V, len(ls))
	for i, e := range ls {
		res[i] = f(e)
	}
	return res
}

// The keys of the map in ascending order, for deterministic output.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// A copy of the slice that shares no backing array with the original.
func Clone[T any](ls []T) []T {
	if ls == nil {
		return nil
	}
	return slices.Clone(ls)
}
